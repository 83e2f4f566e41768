package search

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DecodePolicy controls how invalid UTF-8 byte sequences in scanned files are
// handled. Decoding problems are tolerated per-character, never fatal.
type DecodePolicy int

const (
	// DecodeReplace substitutes each invalid byte with U+FFFD.
	DecodeReplace DecodePolicy = iota
	// DecodeSkip drops invalid bytes entirely.
	DecodeSkip
)

// ParseDecodePolicy maps the configuration strings "replace" and "skip" to a
// DecodePolicy.
func ParseDecodePolicy(s string) (DecodePolicy, error) {
	switch s {
	case "replace":
		return DecodeReplace, nil
	case "skip":
		return DecodeSkip, nil
	default:
		return DecodeReplace, fmt.Errorf("unknown decode policy %q (want replace or skip)", s)
	}
}

func (p DecodePolicy) String() string {
	if p == DecodeSkip {
		return "skip"
	}
	return "replace"
}

// decodeLine converts raw line bytes to a string under the given policy.
// Valid UTF-8 passes through untouched.
func decodeLine(b []byte, policy DecodePolicy) string {
	if utf8.Valid(b) {
		return string(b)
	}

	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			if policy == DecodeReplace {
				sb.WriteRune(utf8.RuneError)
			}
			b = b[1:]
			continue
		}
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}
