package argon2

import (
	"errors"
	"fmt"
)

// Version is the Argon2 specification version implemented by this
// package (0x13, i.e. 19), as encoded in the v= field of PHC strings.
const Version = 0x13

// Variant selects the Argon2 memory-addressing mode. The numeric values
// are fixed by the specification and are hashed into the seed, so they
// must never be reordered.
type Variant uint32

const (
	// Argon2d uses data-dependent addressing throughout: fastest and the
	// most resistant to time-memory trade-off attacks, but its memory
	// access pattern leaks through cache timing.
	Argon2d Variant = 0

	// Argon2i uses data-independent addressing throughout: the access
	// pattern is a public function of the position only.
	Argon2i Variant = 1

	// Argon2id is the RFC 9106 recommended hybrid: data-independent for
	// the first half of the first pass, data-dependent afterwards.
	Argon2id Variant = 2
)

// String returns the lowercase PHC algorithm token for the variant.
func (v Variant) String() string {
	switch v {
	case Argon2d:
		return "argon2d"
	case Argon2i:
		return "argon2i"
	case Argon2id:
		return "argon2id"
	default:
		return fmt.Sprintf("argon2(%d)", uint32(v))
	}
}

func (v Variant) valid() bool { return v <= Argon2id }

// ErrInvalidConfig is returned by [Config.Validate] (and therefore
// [Config.Key]) when a parameter falls outside the allowed range. It is
// always raised before any memory is allocated.
var ErrInvalidConfig = errors.New("argon2: invalid configuration")

// Config holds all inputs to a derivation except the password itself.
// A Config is read-only once a derivation starts; the same Config may be
// used for any number of concurrent derivations.
type Config struct {
	// Variant selects Argon2d, Argon2i, or Argon2id.
	Variant Variant

	// Version is the algorithm version tag hashed into the seed.
	// The zero value means the current version ([Version], 19); no other
	// version is accepted since earlier drafts fill memory differently.
	Version uint32

	// Memory is the memory cost in KiB (one KiB per block).
	// Minimum: 8 × Threads. The block count is rounded down to a
	// multiple of 4 × Threads, as the specification requires.
	Memory uint32

	// Time is the number of passes over memory. Minimum: 1.
	Time uint32

	// Threads is the lane count (degree of parallelism). Minimum: 1.
	Threads uint8

	// Salt is the per-derivation nonce. Minimum 8 bytes.
	Salt []byte

	// Secret is an optional pepper hashed into the seed. It is not
	// stored in the PHC string, so verification requires the same value
	// out of band.
	Secret []byte

	// AssociatedData is optional context hashed into the seed (for
	// example a user ID), with the same out-of-band caveat as Secret.
	AssociatedData []byte

	// KeyLen is the derived key length in bytes. Minimum: 4.
	KeyLen uint32
}

// Validate checks the configuration against the limits above. It is
// called by [Config.Key] before any allocation happens.
func (c *Config) Validate() error {
	if !c.Variant.valid() {
		return fmt.Errorf("%w: unknown variant %d", ErrInvalidConfig, uint32(c.Variant))
	}
	if c.Version != 0 && c.Version != Version {
		return fmt.Errorf("%w: unsupported version %d (only %d)", ErrInvalidConfig, c.Version, Version)
	}
	if c.Time < 1 {
		return fmt.Errorf("%w: time must be ≥ 1, got %d", ErrInvalidConfig, c.Time)
	}
	if c.Threads < 1 {
		return fmt.Errorf("%w: threads must be ≥ 1, got %d", ErrInvalidConfig, c.Threads)
	}
	if min := 8 * uint32(c.Threads); c.Memory < min {
		return fmt.Errorf("%w: memory (%d KiB) must be ≥ 8×threads (%d KiB)", ErrInvalidConfig, c.Memory, min)
	}
	if len(c.Salt) < 8 {
		return fmt.Errorf("%w: salt must be ≥ 8 bytes, got %d", ErrInvalidConfig, len(c.Salt))
	}
	if c.KeyLen < 4 {
		return fmt.Errorf("%w: key length must be ≥ 4, got %d", ErrInvalidConfig, c.KeyLen)
	}
	return nil
}

// version resolves the zero-value default.
func (c *Config) version() uint32 {
	if c.Version == 0 {
		return Version
	}
	return c.Version
}

// blockCount returns the effective number of memory blocks after the
// mandatory round-down to a multiple of 4 × Threads.
func (c *Config) blockCount() uint32 {
	blocks := c.Memory
	return blocks - blocks%(4*uint32(c.Threads))
}
