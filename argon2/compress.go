package argon2

import "math/bits"

// FillBlock is the Argon2 compression function G. It combines blocks x
// and y into out: the 8×8-register view of x⊕y is permuted row-wise and
// then column-wise, and the result is XORed back with x⊕y. When applyXor
// is true the result is additionally XORed into out's existing contents,
// which is how passes after the first accumulate into the memory matrix.
//
// out may alias x or y; the inputs are read before out is written.
func FillBlock(x, y, out *Block, applyXor bool) {
	var r Block
	for i := range r {
		r[i] = x[i] ^ y[i]
	}
	z := r

	// Rows: each group of 16 consecutive words is one row of the
	// conceptual 8×8 matrix of 16-byte registers.
	var v [16]uint64
	for i := 0; i < blockWords; i += 16 {
		copy(v[:], z[i:i+16])
		permute(&v)
		copy(z[i:], v[:])
	}

	// Columns: words are gathered two at a time, one register per row.
	for i := 0; i < 16; i += 2 {
		for j := 0; j < 8; j++ {
			v[2*j] = z[16*j+i]
			v[2*j+1] = z[16*j+i+1]
		}
		permute(&v)
		for j := 0; j < 8; j++ {
			z[16*j+i] = v[2*j]
			z[16*j+i+1] = v[2*j+1]
		}
	}

	if applyXor {
		for i := range out {
			out[i] ^= r[i] ^ z[i]
		}
	} else {
		for i := range out {
			out[i] = r[i] ^ z[i]
		}
	}
}

// permute applies the Argon2 permutation P: the BLAKE2b round with the
// BlaMka multiplication, first down the columns and then across the
// diagonals of the 4×4 word layout.
func permute(v *[16]uint64) {
	quarter(v, 0, 4, 8, 12)
	quarter(v, 1, 5, 9, 13)
	quarter(v, 2, 6, 10, 14)
	quarter(v, 3, 7, 11, 15)
	quarter(v, 0, 5, 10, 15)
	quarter(v, 1, 6, 11, 12)
	quarter(v, 2, 7, 8, 13)
	quarter(v, 3, 4, 9, 14)
}

// quarter mixes four words with the same rotation schedule as BLAKE2b
// (32, 24, 16, 63) but with the addition replaced by BlaMka.
func quarter(v *[16]uint64, a, b, c, d int) {
	v[a] = blamka(v[a], v[b])
	v[d] = bits.RotateLeft64(v[d]^v[a], -32)
	v[c] = blamka(v[c], v[d])
	v[b] = bits.RotateLeft64(v[b]^v[c], -24)
	v[a] = blamka(v[a], v[b])
	v[d] = bits.RotateLeft64(v[d]^v[a], -16)
	v[c] = blamka(v[c], v[d])
	v[b] = bits.RotateLeft64(v[b]^v[c], -63)
}

// blamka is the multiplication-hardened addition a + b + 2·lo(a)·lo(b),
// where lo takes the low 32 bits. The multiply forces a longer dependency
// chain per step than plain addition, raising the cost of hardware
// attacks without changing the rotation structure.
func blamka(a, b uint64) uint64 {
	return a + b + 2*(a&0xFFFFFFFF)*(b&0xFFFFFFFF)
}
