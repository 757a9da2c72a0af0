// Package blake2b implements the BLAKE2b cryptographic hash function
// (RFC 7693) with support for keyed hashing and digest sizes between
// 1 and 64 bytes, plus the variable-length "H prime" construction from
// the Argon2 specification ([Long]).
//
// This package exists so the Argon2 engine in this module has a fully
// self-contained primitive; for general-purpose hashing outside this
// module, golang.org/x/crypto/blake2b is the conventional choice (and is
// used by the test suite here as a cross-check oracle).
//
// # Quick start
//
//	digest, err := blake2b.Sum([]byte("hello"), 32, nil)
//
// or incrementally:
//
//	d, err := blake2b.New(32, nil)
//	d.Write(part1)
//	d.Write(part2)
//	digest := d.Sum(nil)
//
// A [Digest] is single-use: once Sum has been called the state is spent,
// and further Write or Sum calls panic. Create a new Digest per message.
package blake2b
