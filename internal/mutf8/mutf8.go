// Package mutf8 converts between Go strings and Java's modified UTF-8, the string
// encoding of the NBT wire format.
//
// Modified UTF-8 differs from standard UTF-8 in two ways: U+0000 is written as the
// two-byte sequence C0 80, and code points above U+FFFF are written as a UTF-16
// surrogate pair with each half encoded as a three-byte sequence.
package mutf8

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrInvalid reports a byte sequence that is not valid modified UTF-8.
var ErrInvalid = errors.New("invalid modified UTF-8")

// EncodedLen returns the number of bytes Append writes for s.
func EncodedLen(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r == 0:
			n += 2
		case r < 0x80:
			n++
		case r < 0x800:
			n += 2
		case r <= 0xFFFF:
			n += 3
		default:
			n += 6
		}
	}

	return n
}

// Append appends the modified UTF-8 form of s to dst. Invalid UTF-8 in s is
// replaced by U+FFFD.
func Append(dst []byte, s string) []byte {
	if isPlainASCII(s) {
		return append(dst, s...)
	}

	for _, r := range s {
		switch {
		case r == 0:
			dst = append(dst, 0xC0, 0x80)
		case r < 0x80:
			dst = append(dst, byte(r))
		case r < 0x800:
			dst = append(dst, 0xC0|byte(r>>6), 0x80|byte(r&0x3F))
		case r <= 0xFFFF:
			dst = append3(dst, r)
		default:
			hi, lo := utf16.EncodeRune(r)
			dst = append3(dst, hi)
			dst = append3(dst, lo)
		}
	}

	return dst
}

func append3(dst []byte, r rune) []byte {
	return append(dst, 0xE0|byte(r>>12), 0x80|byte((r>>6)&0x3F), 0x80|byte(r&0x3F))
}

// Decode converts modified UTF-8 bytes into a Go string.
//
// Standard four-byte UTF-8 sequences are accepted as well, since some writers emit
// them for supplementary characters. Unpaired surrogates decode to U+FFFD.
func Decode(b []byte) (string, error) {
	if isPlainASCIIBytes(b) {
		return string(b), nil
	}

	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c < 0x80:
			out = append(out, c)
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(b) || b[i+1]&0xC0 != 0x80 {
				return "", ErrInvalid
			}
			r := rune(c&0x1F)<<6 | rune(b[i+1]&0x3F)
			if r != 0 && r < 0x80 {
				return "", ErrInvalid
			}
			out = utf8.AppendRune(out, r)
			i += 2
		case c&0xF0 == 0xE0:
			r, ok := decode3(b, i)
			if !ok {
				return "", ErrInvalid
			}
			i += 3
			if utf16.IsSurrogate(r) {
				if r < 0xDC00 {
					if lo, ok := decode3(b, i); ok && lo >= 0xDC00 && lo <= 0xDFFF {
						r = utf16.DecodeRune(r, lo)
						i += 3
					} else {
						r = utf8.RuneError
					}
				} else {
					r = utf8.RuneError
				}
			}
			out = utf8.AppendRune(out, r)
		case c&0xF8 == 0xF0:
			r, size := utf8.DecodeRune(b[i:])
			if r == utf8.RuneError && size <= 1 {
				return "", ErrInvalid
			}
			out = utf8.AppendRune(out, r)
			i += size
		default:
			return "", ErrInvalid
		}
	}

	return string(out), nil
}

func decode3(b []byte, i int) (rune, bool) {
	if i+2 >= len(b) || b[i]&0xF0 != 0xE0 || b[i+1]&0xC0 != 0x80 || b[i+2]&0xC0 != 0x80 {
		return 0, false
	}

	r := rune(b[i]&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
	if r < 0x800 {
		return 0, false
	}

	return r, true
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c == 0 || c >= 0x80 {
			return false
		}
	}

	return true
}

func isPlainASCIIBytes(b []byte) bool {
	for _, c := range b {
		if c == 0 || c >= 0x80 {
			return false
		}
	}

	return true
}
