// Package argon2 implements the Argon2 memory-hard key-derivation
// function (RFC 9106) in all three variants: Argon2d, Argon2i, and
// Argon2id. Unlike golang.org/x/crypto/argon2 it supports the optional
// secret-key and associated-data inputs, exposes Argon2d, and accepts an
// explicit version tag, which makes it suitable for verifying hashes
// produced by other complete implementations.
//
// The primary entry point is [Config.Key]:
//
//	cfg := argon2.Config{
//		Variant: argon2.Argon2id,
//		Memory:  64 * 1024, // KiB
//		Time:    3,
//		Threads: 2,
//		Salt:    salt,
//		KeyLen:  32,
//	}
//	key, err := cfg.Key(password)
//
// Most callers should not use this package directly: the hashing package
// in this module wraps it with salt generation, Unicode password
// preparation, and PHC string encoding.
//
// The intermediate pipeline stages ([InitialHash], [InitialBlocks],
// [FillBlock], [DataIndependent]) are exported as stable functions so the
// engine can be verified stage by stage against reference data without
// privileged access to internals.
//
// # Cost model
//
// An invocation allocates Memory KiB up front, fills it Time times, and
// releases it only when the derived key has been extracted. There is no
// cancellation: once started, a derivation runs to completion. That cost
// is the point of the algorithm; choose parameters accordingly.
package argon2
