package blake2b

import "encoding/binary"

// Long fills out with the variable-length hash H' from the Argon2
// specification (§3.3), which stretches BLAKE2b beyond its 64-byte limit.
// Argon2 uses it to expand seed material into 1024-byte memory blocks and
// to derive the final key.
//
// The requested length is prepended to the input as a little-endian
// 32-bit value. For lengths up to 64 bytes the result is a single direct
// hash. Longer outputs are built from a chain of 64-byte digests
// V(k) = BLAKE2b-512(V(k-1)), emitting the first 32 bytes of each link;
// the final link is hashed down to exactly the remaining length and
// emitted whole. The chain length and truncation rule are fixed by the
// Argon2 specification and must not be changed.
func Long(out, in []byte) {
	if len(out) == 0 {
		return
	}
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(len(out)))

	if len(out) <= Size {
		d, err := New(len(out), nil)
		if err != nil {
			panic("blake2b: " + err.Error())
		}
		d.Write(prefix[:])
		d.Write(in)
		d.Sum(out[:0])
		return
	}

	d := New512()
	d.Write(prefix[:])
	d.Write(in)
	v := d.Sum(nil)
	copy(out, v[:32])
	pos := 32

	for len(out)-pos > Size {
		d = New512()
		d.Write(v)
		v = d.Sum(nil)
		copy(out[pos:], v[:32])
		pos += 32
	}

	d, err := New(len(out)-pos, nil)
	if err != nil {
		panic("blake2b: " + err.Error())
	}
	d.Write(v)
	d.Sum(out[:pos])
}
