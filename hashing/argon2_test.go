package hashing_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/hasbyte1/go-passhash/hashing"
)

// fastArgon2Opts returns minimal Argon2 parameters for unit tests.
// These are intentionally weak — do NOT use in production.
func fastArgon2Opts() hashing.Argon2Options {
	return hashing.Argon2Options{
		Memory:  8 * 2, // 8 × Threads minimum
		Time:    1,
		Threads: 2,
		KeyLen:  16,
		SaltLen: 8,
	}
}

func newTestArgon2dHasher(t *testing.T) *hashing.Argon2dHasher {
	t.Helper()
	h, err := hashing.NewArgon2dHasher(fastArgon2Opts())
	if err != nil {
		t.Fatalf("NewArgon2dHasher: %v", err)
	}
	return h
}

func newTestArgon2iHasher(t *testing.T) *hashing.Argon2iHasher {
	t.Helper()
	h, err := hashing.NewArgon2iHasher(fastArgon2Opts())
	if err != nil {
		t.Fatalf("NewArgon2iHasher: %v", err)
	}
	return h
}

func newTestArgon2idHasher(t *testing.T) *hashing.Argon2idHasher {
	t.Helper()
	h, err := hashing.NewArgon2idHasher(fastArgon2Opts())
	if err != nil {
		t.Fatalf("NewArgon2idHasher: %v", err)
	}
	return h
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructor validation
// ──────────────────────────────────────────────────────────────────────────────

func TestNewArgon2iHasher_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts hashing.Argon2Options
	}{
		{"time=0", hashing.Argon2Options{Memory: 64, Time: 0, Threads: 1, KeyLen: 16, SaltLen: 8}},
		{"threads=0", hashing.Argon2Options{Memory: 64, Time: 1, Threads: 0, KeyLen: 16, SaltLen: 8}},
		{"memory too low", hashing.Argon2Options{Memory: 1, Time: 1, Threads: 2, KeyLen: 16, SaltLen: 8}},
		{"key_len<4", hashing.Argon2Options{Memory: 64, Time: 1, Threads: 1, KeyLen: 3, SaltLen: 8}},
		{"salt_len<8", hashing.Argon2Options{Memory: 64, Time: 1, Threads: 1, KeyLen: 16, SaltLen: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hashing.NewArgon2iHasher(tt.opts)
			if !errors.Is(err, hashing.ErrInvalidOption) {
				t.Errorf("expected ErrInvalidOption, got %v", err)
			}
		})
	}
}

func TestNewArgon2HasherVariants_InvalidOptions(t *testing.T) {
	// Mirror one rejection case for the other two variants.
	opts := hashing.Argon2Options{Memory: 1, Time: 0, Threads: 0, KeyLen: 1, SaltLen: 1}
	if _, err := hashing.NewArgon2dHasher(opts); !errors.Is(err, hashing.ErrInvalidOption) {
		t.Errorf("argon2d: expected ErrInvalidOption, got %v", err)
	}
	if _, err := hashing.NewArgon2idHasher(opts); !errors.Is(err, hashing.ErrInvalidOption) {
		t.Errorf("argon2id: expected ErrInvalidOption, got %v", err)
	}
}

func TestDefaultArgon2Options(t *testing.T) {
	opts := hashing.DefaultArgon2Options()
	if opts.Memory != hashing.DefaultArgon2Memory {
		t.Errorf("Memory = %d, want %d", opts.Memory, hashing.DefaultArgon2Memory)
	}
	if opts.Time != hashing.DefaultArgon2Time {
		t.Errorf("Time = %d, want %d", opts.Time, hashing.DefaultArgon2Time)
	}
	if opts.Threads != hashing.DefaultArgon2Threads {
		t.Errorf("Threads = %d, want %d", opts.Threads, hashing.DefaultArgon2Threads)
	}
	if opts.KeyLen != hashing.DefaultArgon2KeyLen {
		t.Errorf("KeyLen = %d, want %d", opts.KeyLen, hashing.DefaultArgon2KeyLen)
	}
	if opts.SaltLen != hashing.DefaultArgon2SaltLen {
		t.Errorf("SaltLen = %d, want %d", opts.SaltLen, hashing.DefaultArgon2SaltLen)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Make / Check / NeedsRehash / Info — all variants
// ──────────────────────────────────────────────────────────────────────────────

// variantHashers returns one test hasher per Argon2 variant keyed by the
// expected PHC prefix.
func variantHashers(t *testing.T) map[string]hashing.Hasher {
	t.Helper()
	return map[string]hashing.Hasher{
		"$argon2d$":  newTestArgon2dHasher(t),
		"$argon2i$":  newTestArgon2iHasher(t),
		"$argon2id$": newTestArgon2idHasher(t),
	}
}

func TestArgon2Hashers_Make_PHCFormat(t *testing.T) {
	for prefix, h := range variantHashers(t) {
		hash, err := h.Make("password")
		if err != nil {
			t.Fatalf("%s Make: %v", h.Driver(), err)
		}
		if !strings.HasPrefix(hash, prefix) {
			t.Errorf("%s hash should start with %s, got %q", h.Driver(), prefix, hash)
		}
		if !strings.Contains(hash, "$v=19$") {
			t.Errorf("%s hash missing version segment: %q", h.Driver(), hash)
		}
	}
}

func TestArgon2Hashers_Make_UniqueHashes(t *testing.T) {
	for _, h := range variantHashers(t) {
		h1, _ := h.Make("same")
		h2, _ := h.Make("same")
		if h1 == h2 {
			t.Errorf("%s: two Make calls must produce different hashes (different salts)", h.Driver())
		}
	}
}

func TestArgon2Hashers_Check_CorrectPassword(t *testing.T) {
	for _, h := range variantHashers(t) {
		hash, _ := h.Make("secret")
		ok, err := h.Check("secret", hash)
		if err != nil || !ok {
			t.Fatalf("%s Check correct password: ok=%v err=%v", h.Driver(), ok, err)
		}
	}
}

func TestArgon2Hashers_Check_WrongPassword(t *testing.T) {
	for _, h := range variantHashers(t) {
		hash, _ := h.Make("correct")
		ok, err := h.Check("wrong", hash)
		if err != nil {
			t.Fatalf("%s Check: unexpected error %v", h.Driver(), err)
		}
		if ok {
			t.Errorf("%s Check returned true for wrong password", h.Driver())
		}
	}
}

func TestArgon2Hashers_Check_EmptyPassword(t *testing.T) {
	for _, h := range variantHashers(t) {
		hash, _ := h.Make("")
		ok, err := h.Check("", hash)
		if err != nil || !ok {
			t.Fatalf("%s empty password round-trip: ok=%v err=%v", h.Driver(), ok, err)
		}
	}
}

func TestArgon2Hashers_Check_InvalidHash(t *testing.T) {
	for _, h := range variantHashers(t) {
		if _, err := h.Check("pw", "not-a-hash"); !errors.Is(err, hashing.ErrInvalidHash) {
			t.Errorf("%s: expected ErrInvalidHash, got %v", h.Driver(), err)
		}
	}
}

// TestArgon2Hashers_Check_WrongVariant passes every variant's hash to
// every other variant's hasher.
func TestArgon2Hashers_Check_WrongVariant(t *testing.T) {
	hashers := variantHashers(t)
	for _, producer := range hashers {
		hash, _ := producer.Make("pw")
		for _, verifier := range hashers {
			if verifier.Driver() == producer.Driver() {
				continue
			}
			if _, err := verifier.Check("pw", hash); !errors.Is(err, hashing.ErrAlgorithmMismatch) {
				t.Errorf("%s checking a %s hash: expected ErrAlgorithmMismatch, got %v",
					verifier.Driver(), producer.Driver(), err)
			}
		}
	}
}

func TestArgon2Hashers_NeedsRehash_SameParams(t *testing.T) {
	for _, h := range variantHashers(t) {
		hash, _ := h.Make("pw")
		needs, err := h.NeedsRehash(hash)
		if err != nil || needs {
			t.Errorf("%s NeedsRehash same params: needs=%v err=%v", h.Driver(), needs, err)
		}
	}
}

func TestArgon2idHasher_NeedsRehash_DifferentMemory(t *testing.T) {
	opts := fastArgon2Opts()
	h1, _ := hashing.NewArgon2idHasher(opts)
	opts.Memory *= 2
	h2, _ := hashing.NewArgon2idHasher(opts)

	hash, _ := h1.Make("pw")
	needs, err := h2.NeedsRehash(hash)
	if err != nil || !needs {
		t.Errorf("expected NeedsRehash=true when memory differs: needs=%v err=%v", needs, err)
	}
}

func TestArgon2idHasher_NeedsRehash_DifferentTime(t *testing.T) {
	opts := fastArgon2Opts()
	h1, _ := hashing.NewArgon2idHasher(opts)
	opts.Time++
	h2, _ := hashing.NewArgon2idHasher(opts)

	hash, _ := h1.Make("pw")
	needs, err := h2.NeedsRehash(hash)
	if err != nil || !needs {
		t.Errorf("expected NeedsRehash=true when time differs: needs=%v err=%v", needs, err)
	}
}

func TestArgon2idHasher_NeedsRehash_DifferentKeyLen(t *testing.T) {
	opts := fastArgon2Opts()
	h1, _ := hashing.NewArgon2idHasher(opts)
	opts.KeyLen = 32
	h2, _ := hashing.NewArgon2idHasher(opts)

	hash, _ := h1.Make("pw")
	needs, err := h2.NeedsRehash(hash)
	if err != nil || !needs {
		t.Errorf("expected NeedsRehash=true when key_len differs: needs=%v err=%v", needs, err)
	}
}

// TestArgon2idHasher_NeedsRehash_MissingVersion treats a stored hash
// without a v= segment as outdated even when the costs match.
func TestArgon2idHasher_NeedsRehash_MissingVersion(t *testing.T) {
	h := newTestArgon2idHasher(t)
	needs, err := h.NeedsRehash("$argon2id$m=16,t=1,p=2$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA")
	if err != nil || !needs {
		t.Errorf("expected NeedsRehash=true for version-less hash: needs=%v err=%v", needs, err)
	}
}

func TestArgon2idHasher_Info(t *testing.T) {
	h := newTestArgon2idHasher(t)
	hash, _ := h.Make("pw")
	info, err := h.Info(hash)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Driver != hashing.DriverArgon2id {
		t.Errorf("Driver = %q, want %q", info.Driver, hashing.DriverArgon2id)
	}
	opts := fastArgon2Opts()
	if got := info.Params["memory"].(uint32); got != opts.Memory {
		t.Errorf("memory = %d, want %d", got, opts.Memory)
	}
	if got := info.Params["time"].(uint32); got != opts.Time {
		t.Errorf("time = %d, want %d", got, opts.Time)
	}
	if got := info.Params["threads"].(uint8); got != opts.Threads {
		t.Errorf("threads = %d, want %d", got, opts.Threads)
	}
	if got := info.Params["version"].(int); got != 19 {
		t.Errorf("version = %d, want 19", got)
	}
}

func TestArgon2idHasher_Info_WrongVariant(t *testing.T) {
	h := newTestArgon2idHasher(t)
	iH := newTestArgon2iHasher(t)
	hash, _ := iH.Make("pw")
	if _, err := h.Info(hash); !errors.Is(err, hashing.ErrAlgorithmMismatch) {
		t.Errorf("expected ErrAlgorithmMismatch, got %v", err)
	}
}

func TestArgon2Hashers_Driver(t *testing.T) {
	if d := newTestArgon2dHasher(t).Driver(); d != hashing.DriverArgon2d {
		t.Errorf("got %q, want %q", d, hashing.DriverArgon2d)
	}
	if d := newTestArgon2iHasher(t).Driver(); d != hashing.DriverArgon2i {
		t.Errorf("got %q, want %q", d, hashing.DriverArgon2i)
	}
	if d := newTestArgon2idHasher(t).Driver(); d != hashing.DriverArgon2id {
		t.Errorf("got %q, want %q", d, hashing.DriverArgon2id)
	}
}

func TestArgon2Hashers_SatisfyHasherInterface(t *testing.T) {
	var _ hashing.Hasher = newTestArgon2dHasher(t)
	var _ hashing.Hasher = newTestArgon2iHasher(t)
	var _ hashing.Hasher = newTestArgon2idHasher(t)
}

// ──────────────────────────────────────────────────────────────────────────────
// PHC round-trip / parameter upgrades
// ──────────────────────────────────────────────────────────────────────────────

// TestArgon2id_PHCRoundTrip_DifferentOptions verifies that a hash produced
// with arbitrary (but valid) options can be verified by a hasher with
// different options — simulating what happens when you increase work
// factors between deployments.
func TestArgon2id_PHCRoundTrip_DifferentOptions(t *testing.T) {
	optsA := fastArgon2Opts()
	optsB := fastArgon2Opts()
	optsB.Memory *= 4
	optsB.Time = 2

	hA, _ := hashing.NewArgon2idHasher(optsA)
	hB, _ := hashing.NewArgon2idHasher(optsB)

	hash, _ := hA.Make("hello")

	// hB must still be able to verify the old hash (reads params from the hash itself).
	ok, err := hB.Check("hello", hash)
	if err != nil || !ok {
		t.Fatalf("cross-option Check failed: ok=%v err=%v", ok, err)
	}

	// And NeedsRehash should return true.
	needs, err := hB.NeedsRehash(hash)
	if err != nil || !needs {
		t.Fatalf("NeedsRehash after option upgrade: needs=%v err=%v", needs, err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Unicode normalization
// ──────────────────────────────────────────────────────────────────────────────

// TestArgon2Hashers_UnicodeEquivalentSpellings hashes with one spelling
// of a password and verifies with another: combining-mark and ligature
// differences must not lock users out.
func TestArgon2Hashers_UnicodeEquivalentSpellings(t *testing.T) {
	const spellingA = "Äﬃn" // A + combining diaeresis + ffi ligature + n
	const spellingB = "Äffin"

	for _, h := range variantHashers(t) {
		hash, err := h.Make(spellingA)
		if err != nil {
			t.Fatalf("%s Make: %v", h.Driver(), err)
		}
		ok, err := h.Check(spellingB, hash)
		if err != nil || !ok {
			t.Errorf("%s: equivalent spelling did not verify: ok=%v err=%v", h.Driver(), ok, err)
		}
	}
}

// TestArgon2Hashers_FullwidthNotFolded is the counterpart: fullwidth text
// is a distinct password and must not verify against its ASCII folding.
func TestArgon2Hashers_FullwidthNotFolded(t *testing.T) {
	h := newTestArgon2idHasher(t)
	hash, _ := h.Make("Ｔｅｓｔ")
	ok, err := h.Check("Test", hash)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("fullwidth password verified against its ASCII form")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// DetectDriver
// ──────────────────────────────────────────────────────────────────────────────

func TestDetectDriver(t *testing.T) {
	dH := newTestArgon2dHasher(t)
	iH := newTestArgon2iHasher(t)
	idH := newTestArgon2idHasher(t)
	bcH := newTestBcryptHasher(t)

	hashD, _ := dH.Make("pw")
	hashI, _ := iH.Make("pw")
	hashID, _ := idH.Make("pw")
	hashBC, _ := bcH.Make("pw")

	tests := []struct {
		hash string
		want hashing.DriverName
	}{
		{hashD, hashing.DriverArgon2d},
		{hashI, hashing.DriverArgon2i},
		{hashID, hashing.DriverArgon2id},
		{hashBC, hashing.DriverBcrypt},
	}
	for _, tt := range tests {
		got, ok := hashing.DetectDriver(tt.hash)
		if !ok || got != tt.want {
			t.Errorf("DetectDriver(%q...) = (%q, %v), want (%q, true)", tt.hash[:10], got, ok, tt.want)
		}
	}
}

func TestDetectDriver_Unknown(t *testing.T) {
	_, ok := hashing.DetectDriver("some-random-string")
	if ok {
		t.Error("expected ok=false for unknown hash format")
	}
}
