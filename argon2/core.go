package argon2

import (
	"encoding/binary"
	"sync"

	"github.com/hasbyte1/go-passhash/blake2b"
)

// InitialHash derives the 64-byte seed H0 that binds every parameter of
// the derivation. All numeric fields are absorbed as little-endian 32-bit
// values; the variable-length inputs are each preceded by their own
// length, including when empty.
func InitialHash(c *Config, password []byte) [blake2b.Size]byte {
	d := blake2b.New512()
	writeUint32(d, uint32(c.Threads))
	writeUint32(d, c.KeyLen)
	writeUint32(d, c.Memory)
	writeUint32(d, c.Time)
	writeUint32(d, c.version())
	writeUint32(d, uint32(c.Variant))
	writeUint32(d, uint32(len(password)))
	d.Write(password)
	writeUint32(d, uint32(len(c.Salt)))
	d.Write(c.Salt)
	writeUint32(d, uint32(len(c.Secret)))
	d.Write(c.Secret)
	writeUint32(d, uint32(len(c.AssociatedData)))
	d.Write(c.AssociatedData)

	var h0 [blake2b.Size]byte
	d.Sum(h0[:0])
	return h0
}

func writeUint32(d *blake2b.Digest, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	d.Write(b[:])
}

// InitialBlocks expands the seed hash into the first two blocks of each
// lane: block j of lane l is BLAKE2b-Long(1024, h0 ‖ LE32(j) ‖ LE32(l)).
func InitialBlocks(h0 *[blake2b.Size]byte, lanes uint32) [][2]Block {
	var in [blake2b.Size + 8]byte
	var raw [BlockSize]byte
	copy(in[:], h0[:])

	out := make([][2]Block, lanes)
	for lane := uint32(0); lane < lanes; lane++ {
		binary.LittleEndian.PutUint32(in[blake2b.Size+4:], lane)
		for col := uint32(0); col < 2; col++ {
			binary.LittleEndian.PutUint32(in[blake2b.Size:], col)
			blake2b.Long(raw[:], in[:])
			out[lane][col].setBytes(raw[:])
		}
	}
	return out
}

// DataIndependent reports whether block references for the given pass and
// segment come from the counter-seeded address stream instead of from
// block contents. It is a pure function of its arguments: Argon2i is
// always independent, Argon2d never, and Argon2id switches after the
// first half of the first pass.
func DataIndependent(v Variant, pass, segment uint32) bool {
	switch v {
	case Argon2i:
		return true
	case Argon2id:
		return pass == 0 && segment < syncPoints/2
	default:
		return false
	}
}

// matrix is the working state of one derivation: the memory blocks in
// lane-major order plus the fixed geometry derived from the Config.
type matrix struct {
	blocks  []Block
	lanes   uint32
	laneLen uint32 // columns per lane
	segLen  uint32 // columns per segment
	passes  uint32
	variant Variant
}

// fill runs every pass over the matrix. Lanes are filled concurrently
// within a segment; the WaitGroup forms the full barrier that keeps any
// lane from reading a block another lane is still writing.
func (m *matrix) fill() {
	for pass := uint32(0); pass < m.passes; pass++ {
		for slice := uint32(0); slice < syncPoints; slice++ {
			if m.lanes == 1 {
				m.fillSegment(pass, slice, 0)
				continue
			}
			var wg sync.WaitGroup
			for lane := uint32(0); lane < m.lanes; lane++ {
				wg.Add(1)
				go func(lane uint32) {
					defer wg.Done()
					m.fillSegment(pass, slice, lane)
				}(lane)
			}
			wg.Wait()
		}
	}
}

// fillSegment computes every block of one (pass, slice, lane) segment in
// column order. Each block is G(previous block, reference block); the
// reference is selected by two 32-bit words drawn either from the
// previous block itself or from a generated address block, depending on
// the variant's addressing mode for this position.
func (m *matrix) fillSegment(pass, slice, lane uint32) {
	var addresses, in, zero Block

	independent := DataIndependent(m.variant, pass, slice)
	if independent {
		in[0] = uint64(pass)
		in[1] = uint64(lane)
		in[2] = uint64(slice)
		in[3] = uint64(len(m.blocks))
		in[4] = uint64(m.passes)
		in[5] = uint64(m.variant)
	}

	index := uint32(0)
	if pass == 0 && slice == 0 {
		// Blocks 0 and 1 were produced by InitialBlocks.
		index = 2
		if independent {
			in[6]++
			FillBlock(&in, &zero, &addresses, false)
			FillBlock(&addresses, &zero, &addresses, false)
		}
	}

	offset := lane*m.laneLen + slice*m.segLen + index
	for ; index < m.segLen; index, offset = index+1, offset+1 {
		prev := offset - 1
		if index == 0 && slice == 0 {
			// Wrap to the last column of the same lane (passes ≥ 1).
			prev += m.laneLen
		}

		var rand uint64
		if independent {
			if index%blockWords == 0 {
				in[6]++
				FillBlock(&in, &zero, &addresses, false)
				FillBlock(&addresses, &zero, &addresses, false)
			}
			rand = addresses[index%blockWords]
		} else {
			rand = m.blocks[prev][0]
		}

		ref := m.refBlock(rand, pass, slice, lane, index)
		// The accumulating XOR is also correct on pass 0: every block is
		// zero before its first write.
		FillBlock(&m.blocks[prev], &m.blocks[ref], &m.blocks[offset], true)
	}
}

// refBlock maps the 64-bit selector drawn for position (pass, slice,
// lane, index) to the global index of the reference block. The low word
// J1 picks within the visible window with a quadratic bias toward
// recently written blocks; the high word J2 picks the lane, forced to the
// current lane while the very first segment is still filling.
func (m *matrix) refBlock(rand uint64, pass, slice, lane, index uint32) uint32 {
	refLane := uint32(rand>>32) % m.lanes
	if pass == 0 && slice == 0 {
		refLane = lane
	}

	// visible is the number of candidate blocks; start is where the
	// window begins within the reference lane.
	visible, start := 3*m.segLen, ((slice+1)%syncPoints)*m.segLen
	if lane == refLane {
		visible += index
	}
	if pass == 0 {
		visible, start = slice*m.segLen, 0
		if slice == 0 || lane == refLane {
			visible += index
		}
	}
	if index == 0 || lane == refLane {
		// The immediately preceding block is never a valid reference.
		visible--
	}

	// Quadratic remap of J1: squaring skews the distribution toward
	// high values, which after the subtraction below favors the most
	// recently written end of the window.
	j1 := rand & 0xFFFFFFFF
	x := (j1 * j1) >> 32
	y := (uint64(visible) * x) >> 32
	z := uint64(visible) - 1 - y

	return refLane*m.laneLen + uint32((uint64(start)+z)%uint64(m.laneLen))
}

// extract XORs the last column of every lane into a single block and
// hashes it down to the derived key.
func (m *matrix) extract(keyLen uint32) []byte {
	final := m.blocks[m.laneLen-1]
	for lane := uint32(1); lane < m.lanes; lane++ {
		final.xor(&m.blocks[lane*m.laneLen+m.laneLen-1])
	}
	out := make([]byte, keyLen)
	blake2b.Long(out, final.appendBytes(make([]byte, 0, BlockSize)))
	return out
}
