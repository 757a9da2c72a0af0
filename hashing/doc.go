// Package hashing provides extensible password hashing over the Argon2
// engine in this repository.
//
// # Architecture
//
// The central abstraction is the [Hasher] interface. Four drivers ship
// with this package:
//
//   - [Argon2idHasher] — Argon2id (recommended default, RFC 9106 §4)
//   - [Argon2iHasher] — Argon2i (fully data-independent addressing)
//   - [Argon2dHasher] — Argon2d (fastest; only for trusted environments
//     where timing side channels are out of scope)
//   - [BcryptHasher] — bcrypt, kept for verifying and migrating stores
//     that predate Argon2
//
// All four implement [Hasher], so callers can depend on the interface
// rather than a concrete type.
//
// The [Manager] is a named driver registry and dispatcher. Register one
// or more [Hasher] implementations, designate a default driver, then
// delegate all hashing operations through the [Manager].
//
// For the common case of a single Argon2id-backed credential store, the
// package-level [Hash] and [Verify] functions skip the driver machinery
// entirely.
//
// # Quick start
//
//	m, err := hashing.NewDefaultManager() // Argon2id default, all drivers registered
//	if err != nil { log.Fatal(err) }
//
//	hash, _ := m.Make("my-secret-password")
//	ok, _   := m.Check("my-secret-password", hash) // true
//
// # Unicode handling
//
// Every driver normalizes passwords before hashing (see the password
// package), so the composed and decomposed spellings of the same text
// verify against each other regardless of which driver produced the
// stored hash.
//
// # Security defaults
//
//   - Argon2: m=64 MiB, t=3 iterations, p=2 threads, 32-byte key.
//     Exceeds OWASP ASVS Level 2 (m≥19 MiB, t≥2, p≥1).
//   - bcrypt: cost 12 (≈ 250 ms on modern hardware; exceeds OWASP
//     minimum of 10).
//
// # Cross-driver migration
//
// Call [Manager.NeedsRehash] on every successful login. It returns true
// when the stored hash was produced by a different driver or with weaker
// parameters than the current default. Re-hash and persist immediately:
//
//	ok, _ := m.CheckWithDetect(password, storedHash)
//	if ok {
//	    if needs, _ := m.NeedsRehash(storedHash); needs {
//	        newHash, _ := m.Make(password)
//	        persist(userID, newHash)
//	    }
//	}
//
// # Argon2 hash format
//
// Argon2 hashes are stored in the PHC string format:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<base64-salt>$<base64-hash>
//
// All parameters are self-contained in the string, so no external
// configuration is needed to verify a previously produced hash.
package hashing
