package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops what postgres text and ICS lines should never carry
// NUL, ASCII controls other than tab and line breaks, DEL, C1 controls and invalid UTF-8
// s is returned unchanged when it is already clean
func Sanitize(s string) string {
	if s == "" {
		return s
	}

	n := len(s)
	i := 0

	// scan to the first byte that needs work
	for i < n {
		b := s[i]
		if b < 0x20 {
			if b == '\n' || b == '\r' || b == '\t' {
				i++
				continue
			}
			break
		}
		if b == 0x7F {
			break
		}
		if b < 0x80 {
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		if r >= 0x80 && r <= 0x9F {
			break
		}
		i += size
	}
	if i == n {
		return s
	}

	var bldr strings.Builder
	bldr.Grow(n)
	bldr.WriteString(s[:i])

	for i < n {
		c := s[i]

		if c < 0x20 {
			if c == '\n' || c == '\r' || c == '\t' {
				bldr.WriteByte(c)
			}
			i++
			continue
		}
		if c == 0x7F {
			i++
			continue
		}
		if c < 0x80 {
			bldr.WriteByte(c)
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		if r >= 0x80 && r <= 0x9F {
			i += size
			continue
		}
		bldr.WriteString(s[i : i+size])
		i += size
	}

	return bldr.String()
}
