// Package password converts human-entered passwords into the canonical
// byte string fed to the key derivation.
//
// Different keyboards and input methods produce different Unicode
// spellings of the same visible text. Prepare folds those spellings
// together with a restricted NFKC normalization so a password typed on
// one device verifies on another, then encodes the result as UTF-8 with
// a trailing NUL terminator.
package password

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Runes in the halfwidth and fullwidth forms block keep their identity:
// plain NFKC would fold fullwidth letters onto ASCII, silently equating
// passwords that users consider distinct.
const exemptLo, exemptHi = '＀', '￯'

func exempt(r rune) bool {
	return r >= exemptLo && r <= exemptHi
}

// Normalize folds the Unicode spellings of a password together. Runs of
// text outside the halfwidth/fullwidth forms block are folded with NFKC;
// runes inside the block pass through untouched. Space separators other
// than U+0020 become a plain space.
//
// Normalize is idempotent: normalizing its own output is a no-op.
func Normalize(s string) string {
	return string(normalize(make([]byte, 0, len(s)), s))
}

// Prepare normalizes a password with [Normalize] and encodes it for key
// derivation: UTF-8 with a single 0x00 terminator appended.
func Prepare(s string) []byte {
	return append(normalize(make([]byte, 0, len(s)+1), s), 0x00)
}

func normalize(out []byte, s string) []byte {
	// Normalize between exempt runes, never across them: an exempt rune
	// is a segment boundary so NFKC cannot compose with its neighbors.
	for len(s) > 0 {
		i := strings.IndexFunc(s, exempt)
		if i < 0 {
			out = appendNormalized(out, s)
			break
		}
		out = appendNormalized(out, s[:i])
		r, size := utf8.DecodeRuneInString(s[i:])
		out = utf8.AppendRune(out, r)
		s = s[i+size:]
	}
	return out
}

func appendNormalized(out []byte, segment string) []byte {
	for _, r := range norm.NFKC.String(segment) {
		if r != ' ' && unicode.Is(unicode.Zs, r) {
			r = ' '
		}
		out = utf8.AppendRune(out, r)
	}
	return out
}
