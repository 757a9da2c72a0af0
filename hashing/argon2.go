package hashing

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/hasbyte1/go-passhash/argon2"
	"github.com/hasbyte1/go-passhash/password"
	"github.com/hasbyte1/go-passhash/phc"
)

// ──────────────────────────────────────────────────────────────────────────────
// Options
// ──────────────────────────────────────────────────────────────────────────────

const (
	// DefaultArgon2Memory is the default memory cost in KiB (64 MiB).
	// OWASP ASVS Level 2 requires ≥ 19 MiB; 64 MiB is the standard production
	// recommendation for Argon2id.
	DefaultArgon2Memory uint32 = 64 * 1024

	// DefaultArgon2Time is the default number of iterations.
	DefaultArgon2Time uint32 = 3

	// DefaultArgon2Threads is the default degree of parallelism.
	DefaultArgon2Threads uint8 = 2

	// DefaultArgon2KeyLen is the default output key length in bytes.
	DefaultArgon2KeyLen uint32 = 32

	// DefaultArgon2SaltLen is the default random salt length in bytes.
	DefaultArgon2SaltLen uint32 = 16
)

// Argon2Options configures an Argon2 driver.
//
// All parameters are directly encoded into the output hash string (PHC format),
// so changing them only affects newly produced hashes; existing hashes remain
// verifiable as long as the hasher struct is present.
type Argon2Options struct {
	// Memory is the memory cost in KiB.
	// Minimum: 8 * Threads.  Default: [DefaultArgon2Memory] (64 MiB).
	Memory uint32

	// Time is the number of passes over memory (iterations).
	// Minimum: 1.  Default: [DefaultArgon2Time] (3).
	Time uint32

	// Threads is the degree of parallelism.
	// Minimum: 1.  Default: [DefaultArgon2Threads] (2).
	Threads uint8

	// KeyLen is the length of the derived key in bytes.
	// Default: [DefaultArgon2KeyLen] (32).
	KeyLen uint32

	// SaltLen is the length of the random salt in bytes.
	// Minimum: 8.  Default: [DefaultArgon2SaltLen] (16).
	SaltLen uint32
}

// DefaultArgon2Options returns Argon2Options with the recommended defaults.
// These exceed OWASP ASVS Level 2 requirements.
func DefaultArgon2Options() Argon2Options {
	return Argon2Options{
		Memory:  DefaultArgon2Memory,
		Time:    DefaultArgon2Time,
		Threads: DefaultArgon2Threads,
		KeyLen:  DefaultArgon2KeyLen,
		SaltLen: DefaultArgon2SaltLen,
	}
}

func validateArgon2Options(opts Argon2Options) error {
	if opts.Time < 1 {
		return fmt.Errorf("%w: argon2 time must be ≥ 1, got %d", ErrInvalidOption, opts.Time)
	}
	if opts.Threads < 1 {
		return fmt.Errorf("%w: argon2 threads must be ≥ 1, got %d", ErrInvalidOption, opts.Threads)
	}
	if opts.Memory < 8*uint32(opts.Threads) {
		return fmt.Errorf("%w: argon2 memory (%d KiB) must be ≥ 8×threads (%d KiB)",
			ErrInvalidOption, opts.Memory, 8*uint32(opts.Threads))
	}
	if opts.KeyLen < 4 {
		return fmt.Errorf("%w: argon2 key_len must be ≥ 4, got %d", ErrInvalidOption, opts.KeyLen)
	}
	if opts.SaltLen < 8 {
		return fmt.Errorf("%w: argon2 salt_len must be ≥ 8, got %d", ErrInvalidOption, opts.SaltLen)
	}
	return nil
}

// randomSalt returns n cryptographically random bytes.
func randomSalt(n uint32) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("hashing: argon2: failed to generate salt: %w", err)
	}
	return b, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Shared driver core
// ──────────────────────────────────────────────────────────────────────────────

// argon2Hasher implements [Hasher] for one Argon2 variant. The three
// exported driver types embed it; they differ only in the variant tag.
type argon2Hasher struct {
	variant argon2.Variant
	opts    Argon2Options
}

// Driver returns the name of the implemented variant.
func (h *argon2Hasher) Driver() DriverName { return DriverName(h.variant.String()) }

// Options returns the current Argon2 parameter set.
func (h *argon2Hasher) Options() Argon2Options { return h.opts }

// Make hashes password with the configured variant and returns a
// PHC-formatted string.  A fresh random salt of the configured length is
// generated for each call.  The password is normalized first, so every
// Unicode spelling of the same text produces a verifiable hash.
func (h *argon2Hasher) Make(plain string) (string, error) {
	salt, err := randomSalt(h.opts.SaltLen)
	if err != nil {
		return "", err
	}
	cfg := argon2.Config{
		Variant: h.variant,
		Memory:  h.opts.Memory,
		Time:    h.opts.Time,
		Threads: h.opts.Threads,
		Salt:    salt,
		KeyLen:  h.opts.KeyLen,
	}
	key, err := cfg.Key(password.Prepare(plain))
	if err != nil {
		return "", fmt.Errorf("hashing: argon2: %w", err)
	}
	encoded := phc.Hash{
		Algorithm: h.variant.String(),
		Version:   argon2.Version,
		Memory:    h.opts.Memory,
		Time:      h.opts.Time,
		Threads:   h.opts.Threads,
		Salt:      salt,
		Output:    key,
	}
	return encoded.String(), nil
}

// Check verifies that password matches the PHC hash.  The parameters
// (memory, time, threads) are read from the hash string itself, so
// verification works correctly even when the hasher's options have
// changed.  A missing v= segment is treated as the current version.
func (h *argon2Hasher) Check(plain, hash string) (bool, error) {
	p, err := h.decode(hash)
	if err != nil {
		return false, err
	}
	cfg := argon2.Config{
		Variant: h.variant,
		Version: p.Version,
		Memory:  p.Memory,
		Time:    p.Time,
		Threads: p.Threads,
		Salt:    p.Salt,
		KeyLen:  uint32(len(p.Output)),
	}
	key, err := cfg.Key(password.Prepare(plain))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return subtle.ConstantTimeCompare(key, p.Output) == 1, nil
}

// NeedsRehash returns true if any parameter stored in hash differs from
// the hasher's current configuration, or if the hash predates the current
// Argon2 version.
func (h *argon2Hasher) NeedsRehash(hash string) (bool, error) {
	p, err := h.decode(hash)
	if err != nil {
		return false, err
	}
	return p.Version != argon2.Version ||
		p.Memory != h.opts.Memory ||
		p.Time != h.opts.Time ||
		p.Threads != h.opts.Threads ||
		uint32(len(p.Output)) != h.opts.KeyLen, nil
}

// Info parses the PHC string and returns the encoded parameters.
//
// Returned [HashInfo].Params:
//   - "version" → int
//   - "memory"  → uint32 (KiB)
//   - "time"    → uint32
//   - "threads" → uint8
//   - "key_len" → uint32
func (h *argon2Hasher) Info(hash string) (HashInfo, error) {
	p, err := h.decode(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Driver: h.Driver(),
		Params: map[string]any{
			"version": int(p.Version),
			"memory":  p.Memory,
			"time":    p.Time,
			"threads": p.Threads,
			"key_len": uint32(len(p.Output)),
		},
	}, nil
}

// decode parses hash and enforces that it belongs to this driver's variant.
func (h *argon2Hasher) decode(hash string) (phc.Hash, error) {
	p, ok := phc.Parse(hash)
	if !ok {
		return phc.Hash{}, fmt.Errorf("%w: not a PHC argon2 string", ErrInvalidHash)
	}
	if p.Algorithm != h.variant.String() {
		return phc.Hash{}, fmt.Errorf("%w: hash is %s, not %s",
			ErrAlgorithmMismatch, p.Algorithm, h.variant)
	}
	return p, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Exported drivers
// ──────────────────────────────────────────────────────────────────────────────

// Argon2dHasher hashes passwords using the Argon2d algorithm.
//
// Argon2d uses purely data-dependent memory access, which gives the best
// resistance to time-memory trade-off attacks but leaks an address trace
// through cache timing.  Use it only where attackers cannot observe
// timing, such as server-side key derivation on trusted hardware; for
// ordinary password storage prefer [Argon2idHasher].
//
// # Thread safety
//
// Argon2dHasher is immutable after construction and safe for concurrent use.
type Argon2dHasher struct {
	argon2Hasher
}

// NewArgon2dHasher constructs an Argon2dHasher with the given options.
// Use [DefaultArgon2Options] for recommended defaults.
func NewArgon2dHasher(opts Argon2Options) (*Argon2dHasher, error) {
	if err := validateArgon2Options(opts); err != nil {
		return nil, err
	}
	return &Argon2dHasher{argon2Hasher{variant: argon2.Argon2d, opts: opts}}, nil
}

// Argon2iHasher hashes passwords using the Argon2i algorithm.
//
// Argon2i uses data-independent memory access, making it resistant to
// side-channel attacks but slightly more vulnerable to time-memory trade-off
// attacks compared to Argon2id.  For most password-hashing use cases, prefer
// [Argon2idHasher].
//
// Output format: PHC string ($argon2i$v=19$m=…,t=…,p=…$<salt>$<hash>).
//
// # Thread safety
//
// Argon2iHasher is immutable after construction and safe for concurrent use.
type Argon2iHasher struct {
	argon2Hasher
}

// NewArgon2iHasher constructs an Argon2iHasher with the given options.
// Use [DefaultArgon2Options] for recommended defaults.
func NewArgon2iHasher(opts Argon2Options) (*Argon2iHasher, error) {
	if err := validateArgon2Options(opts); err != nil {
		return nil, err
	}
	return &Argon2iHasher{argon2Hasher{variant: argon2.Argon2i, opts: opts}}, nil
}

// Argon2idHasher hashes passwords using the Argon2id algorithm.
//
// Argon2id is a hybrid of Argon2i and Argon2d.  It provides resistance to
// both side-channel attacks (first half of the first pass) and time-memory
// trade-off attacks (everything after), making it the recommended choice
// for password hashing according to RFC 9106 and OWASP.
//
// Output format: PHC string ($argon2id$v=19$m=…,t=…,p=…$<salt>$<hash>).
//
// # Thread safety
//
// Argon2idHasher is immutable after construction and safe for concurrent use.
type Argon2idHasher struct {
	argon2Hasher
}

// NewArgon2idHasher constructs an Argon2idHasher with the given options.
// Use [DefaultArgon2Options] for recommended defaults.
func NewArgon2idHasher(opts Argon2Options) (*Argon2idHasher, error) {
	if err := validateArgon2Options(opts); err != nil {
		return nil, err
	}
	return &Argon2idHasher{argon2Hasher{variant: argon2.Argon2id, opts: opts}}, nil
}
