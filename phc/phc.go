// Package phc encodes and decodes Argon2 hashes in the PHC string
// format:
//
//	$argon2id$v=19$m=65536,t=4,p=1$c2FsdA$aGFzaA
//
// Salt and output are base64 without padding. Parsing is tolerant of
// the cost parameters appearing in any order and of uppercase parameter
// keys, which some producers emit; String always renders the canonical
// lowercase m,t,p order.
package phc

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// Hash is a decoded PHC string. Version 0 means the string carried no
// v= segment; producers from the draft era omitted it.
type Hash struct {
	Algorithm string
	Version   uint32
	Memory    uint32
	Time      uint32
	Threads   uint8
	Salt      []byte
	Output    []byte
}

var b64 = base64.RawStdEncoding

// Parse decodes a PHC string. The boolean result reports whether s was
// well formed; no partial Hash is returned for malformed input.
func Parse(s string) (Hash, bool) {
	if !strings.HasPrefix(s, "$") {
		return Hash{}, false
	}
	parts := strings.Split(s[1:], "$")
	if len(parts) != 4 && len(parts) != 5 {
		return Hash{}, false
	}

	var h Hash
	switch parts[0] {
	case "argon2d", "argon2i", "argon2id":
		h.Algorithm = parts[0]
	default:
		return Hash{}, false
	}
	parts = parts[1:]

	if strings.HasPrefix(parts[0], "v=") {
		v, err := strconv.ParseUint(parts[0][2:], 10, 32)
		if err != nil {
			return Hash{}, false
		}
		h.Version = uint32(v)
		parts = parts[1:]
	}
	if len(parts) != 3 {
		return Hash{}, false
	}

	if !parseParams(parts[0], &h) {
		return Hash{}, false
	}

	var err error
	if h.Salt, err = b64.DecodeString(parts[1]); err != nil || len(h.Salt) == 0 {
		return Hash{}, false
	}
	if h.Output, err = b64.DecodeString(parts[2]); err != nil || len(h.Output) == 0 {
		return Hash{}, false
	}
	return h, true
}

// parseParams decodes the m=..,t=..,p=.. segment. All three parameters
// are required, each exactly once, in any order.
func parseParams(s string, h *Hash) bool {
	var seen [3]bool
	for _, param := range strings.Split(s, ",") {
		key, value, found := strings.Cut(param, "=")
		if !found || len(key) != 1 {
			return false
		}

		var slot int
		var bits int
		switch key[0] | 0x20 { // case-insensitive
		case 'm':
			slot, bits = 0, 32
		case 't':
			slot, bits = 1, 32
		case 'p':
			slot, bits = 2, 8
		default:
			return false
		}
		if seen[slot] {
			return false
		}
		seen[slot] = true

		n, err := strconv.ParseUint(value, 10, bits)
		if err != nil {
			return false
		}
		switch slot {
		case 0:
			h.Memory = uint32(n)
		case 1:
			h.Time = uint32(n)
		case 2:
			h.Threads = uint8(n)
		}
	}
	return seen[0] && seen[1] && seen[2]
}

// String renders the canonical form of h: the v= segment is always
// present, even for a draft-era Hash parsed without one.
func (h Hash) String() string {
	var b strings.Builder
	b.WriteByte('$')
	b.WriteString(h.Algorithm)
	fmt.Fprintf(&b, "$v=%d$m=%d,t=%d,p=%d", h.Version, h.Memory, h.Time, h.Threads)
	b.WriteByte('$')
	b.WriteString(b64.EncodeToString(h.Salt))
	b.WriteByte('$')
	b.WriteString(b64.EncodeToString(h.Output))
	return b.String()
}
