package blake2b

import (
	"encoding/binary"
	"errors"
)

const (
	// BlockSize is the BLAKE2b compression block size in bytes.
	BlockSize = 128

	// Size is the maximum (and default) digest size in bytes.
	Size = 64

	// MaxKeyLen is the maximum key length in bytes for keyed hashing.
	MaxKeyLen = 64
)

// Sentinel errors returned by [New] and [Sum].
//
// Use [errors.Is] for comparisons.
var (
	// ErrInvalidSize is returned when the requested digest size is 0 or
	// larger than [Size].
	ErrInvalidSize = errors.New("blake2b: digest size must be between 1 and 64 bytes")

	// ErrKeyTooLong is returned when the supplied key exceeds [MaxKeyLen].
	ErrKeyTooLong = errors.New("blake2b: key must not exceed 64 bytes")
)

// iv is the BLAKE2b initialization vector (RFC 7693 §2.6).
var iv = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b,
	0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f,
	0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

// Digest is the incremental BLAKE2b hashing state.
//
// A Digest absorbs input through [Digest.Write] in arbitrary chunks; the
// final digest is identical regardless of how the input was split. After
// [Digest.Sum] the state is spent — further Write or Sum calls panic
// rather than silently producing a wrong digest.
//
// A Digest must not be shared between goroutines.
type Digest struct {
	h      [8]uint64       // chained state words
	t0, t1 uint64          // 128-bit byte counter, t1 carries on t0 overflow
	buf    [BlockSize]byte // pending input; holds the final block at Sum time
	n      int             // bytes buffered in buf
	size   int             // configured digest size, 1..64
	done   bool            // set once Sum has run
}

// New returns a Digest producing size bytes of output (1 to [Size]).
// A non-empty key of up to [MaxKeyLen] bytes switches the hash into keyed
// (MAC) mode: the key is zero-padded to a full block and absorbed before
// any caller data.
func New(size int, key []byte) (*Digest, error) {
	if size < 1 || size > Size {
		return nil, ErrInvalidSize
	}
	if len(key) > MaxKeyLen {
		return nil, ErrKeyTooLong
	}

	d := &Digest{size: size, h: iv}
	// XOR in the parameter block: digest length, key length, and
	// fanout=1, depth=1 for sequential hashing. The remaining parameter
	// words are zero.
	d.h[0] ^= uint64(size) | uint64(len(key))<<8 | 1<<16 | 1<<24

	if len(key) > 0 {
		var block [BlockSize]byte
		copy(block[:], key)
		d.Write(block[:])
	}
	return d, nil
}

// New512 returns a Digest producing the full 64-byte output, unkeyed.
func New512() *Digest {
	d, err := New(Size, nil)
	if err != nil {
		panic("blake2b: " + err.Error())
	}
	return d
}

// Sum computes a digest of data in one call. See [New] for the size and
// key constraints.
func Sum(data []byte, size int, key []byte) ([]byte, error) {
	d, err := New(size, key)
	if err != nil {
		return nil, err
	}
	d.Write(data)
	return d.Sum(nil), nil
}

// Sum512 computes the full 64-byte unkeyed digest of data.
func Sum512(data []byte) [Size]byte {
	var out [Size]byte
	d := New512()
	d.Write(data)
	d.Sum(out[:0])
	return out
}

// Size returns the configured digest size in bytes.
func (d *Digest) Size() int { return d.size }

// BlockSize returns the compression block size in bytes.
func (d *Digest) BlockSize() int { return BlockSize }

// Write absorbs p into the hash state. It never fails; the returned error
// is always nil. Write panics if called after [Digest.Sum].
func (d *Digest) Write(p []byte) (int, error) {
	if d.done {
		panic("blake2b: Write called after Sum")
	}
	written := len(p)

	// Top up a partially filled buffer first. A buffer that becomes
	// exactly full stays pending: it may turn out to be the final block,
	// which is compressed with the last-block flag at Sum time.
	if d.n > 0 {
		free := BlockSize - d.n
		if len(p) <= free {
			d.n += copy(d.buf[d.n:], p)
			return written, nil
		}
		copy(d.buf[d.n:], p[:free])
		d.count(BlockSize)
		d.compress(d.buf[:], 0)
		p = p[free:]
		d.n = 0
	}

	// Compress all full blocks except a trailing one.
	for len(p) > BlockSize {
		d.count(BlockSize)
		d.compress(p[:BlockSize], 0)
		p = p[BlockSize:]
	}
	d.n = copy(d.buf[:], p)
	return written, nil
}

// Sum finalizes the hash and appends the digest to b, returning the
// resulting slice. Sum consumes the Digest: calling Write or Sum again
// afterwards panics.
func (d *Digest) Sum(b []byte) []byte {
	if d.done {
		panic("blake2b: Sum called twice")
	}
	d.done = true

	// Count the pending bytes, zero-pad the final block, and compress it
	// with the all-ones last-block flag.
	d.count(uint64(d.n))
	for i := d.n; i < BlockSize; i++ {
		d.buf[i] = 0
	}
	d.compress(d.buf[:], ^uint64(0))

	var out [Size]byte
	for i, v := range d.h {
		binary.LittleEndian.PutUint64(out[i*8:], v)
	}
	return append(b, out[:d.size]...)
}

// count adds n to the 128-bit byte counter.
func (d *Digest) count(n uint64) {
	d.t0 += n
	if d.t0 < n {
		d.t1++
	}
}
