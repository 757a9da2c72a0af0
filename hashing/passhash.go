package hashing

import (
	"crypto/subtle"

	"github.com/hasbyte1/go-passhash/argon2"
	"github.com/hasbyte1/go-passhash/password"
	"github.com/hasbyte1/go-passhash/phc"
)

// Hash derives an Argon2id hash of password with the given costs and
// returns it as a PHC string.  memory is in KiB, exactly as it appears in
// the m= field of the output.  A fresh 16-byte random salt is drawn for
// every call; the derived key is 32 bytes.
//
// Use a [Manager] or the driver types directly when you need a different
// variant, key length, or salt length.
func Hash(plain string, time, memory uint32, threads uint8) (string, error) {
	h, err := NewArgon2idHasher(Argon2Options{
		Memory:  memory,
		Time:    time,
		Threads: threads,
		KeyLen:  DefaultArgon2KeyLen,
		SaltLen: DefaultArgon2SaltLen,
	})
	if err != nil {
		return "", err
	}
	return h.Make(plain)
}

// Verify checks password against a stored Argon2 PHC string of any
// variant.  It is written for untrusted stored input: a string that does
// not decode, names an unknown algorithm, or carries unusable parameters
// yields (false, false) rather than an error.
//
// needsRehash is true only when the password matched but the stored hash
// was produced with a variant, version, or cost different from the
// current defaults; the caller should re-hash with [Hash] and persist the
// result.
func Verify(plain, stored string) (ok, needsRehash bool) {
	p, valid := phc.Parse(stored)
	if !valid {
		return false, false
	}
	var variant argon2.Variant
	switch p.Algorithm {
	case "argon2d":
		variant = argon2.Argon2d
	case "argon2i":
		variant = argon2.Argon2i
	case "argon2id":
		variant = argon2.Argon2id
	default:
		return false, false
	}

	cfg := argon2.Config{
		Variant: variant,
		Version: p.Version,
		Memory:  p.Memory,
		Time:    p.Time,
		Threads: p.Threads,
		Salt:    p.Salt,
		KeyLen:  uint32(len(p.Output)),
	}
	key, err := cfg.Key(password.Prepare(plain))
	if err != nil {
		return false, false
	}
	if subtle.ConstantTimeCompare(key, p.Output) != 1 {
		return false, false
	}

	needsRehash = variant != argon2.Argon2id ||
		p.Version != argon2.Version ||
		p.Memory != DefaultArgon2Memory ||
		p.Time != DefaultArgon2Time ||
		p.Threads != DefaultArgon2Threads ||
		uint32(len(p.Output)) != DefaultArgon2KeyLen
	return true, needsRehash
}
