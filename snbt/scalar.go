package snbt

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/arloliu/nbt/tag"
)

// isBareRune reports whether r may appear in an unquoted key or value.
func isBareRune(r rune) bool {
	switch r {
	case '_', '-', '.', '+':
		return true
	}

	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isBare(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isBareRune(r) {
			return false
		}
	}

	return true
}

// scalar interprets an unquoted value token. Tokens that are neither numbers nor
// booleans are Strings.
func scalar(tok string) tag.Tag {
	if v, ok := number(tok); ok {
		return v
	}

	switch strings.ToLower(tok) {
	case "true":
		return tag.Bool(true)
	case "false":
		return tag.Bool(false)
	}

	return tag.String(tok)
}

// splitSuffix separates a trailing type letter, returned in lower case.
func splitSuffix(tok string) (string, byte) {
	if tok == "" {
		return tok, 0
	}

	switch c := tok[len(tok)-1]; c {
	case 'b', 'B', 's', 'S', 'l', 'L', 'f', 'F', 'd', 'D':
		return tok[:len(tok)-1], c | 0x20
	}

	return tok, 0
}

// number parses a numeric literal. The suffix selects the kind; without one, integers
// are Int and literals with a fraction or exponent are Double.
func number(tok string) (tag.Tag, bool) {
	body, suffix := splitSuffix(tok)

	switch suffix {
	case 'b':
		n, ok := parseInt(body, 8)
		return tag.Byte(int8(n)), ok
	case 's':
		n, ok := parseInt(body, 16)
		return tag.Short(int16(n)), ok
	case 'l':
		n, ok := parseInt(body, 64)
		return tag.Long(n), ok
	case 'f':
		f, ok := parseFloat(body, 32)
		return tag.Float(float32(f)), ok
	case 'd':
		f, ok := parseFloat(body, 64)
		return tag.Double(f), ok
	}

	if isInteger(tok) {
		n, ok := parseInt(tok, 32)
		return tag.Int(int32(n)), ok
	}
	if isDecimal(tok) {
		f, ok := parseFloat(tok, 64)
		return tag.Double(f), ok
	}

	return nil, false
}

func parseInt(s string, bits int) (int64, bool) {
	if !isInteger(s) {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, bits)

	return n, err == nil
}

func parseFloat(s string, bits int) (float64, bool) {
	switch s {
	case "NaN":
		return math.NaN(), true
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	if !isInteger(s) && !isDecimal(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, bits)

	return f, err == nil
}

// isInteger matches [+-]?[0-9]+.
func isInteger(s string) bool {
	s = trimSign(s)

	return s != "" && asciiDigits(s) == len(s)
}

// isDecimal matches a literal with a fraction or an exponent: [+-]? digits, then
// .digits or . or an exponent, with at least one digit in the mantissa.
func isDecimal(s string) bool {
	s = trimSign(s)

	intPart := asciiDigits(s)
	s = s[intPart:]

	fracPart, hasDot := 0, false
	if s != "" && s[0] == '.' {
		hasDot = true
		fracPart = asciiDigits(s[1:])
		s = s[1+fracPart:]
	}
	if intPart+fracPart == 0 {
		return false
	}

	hasExp := false
	if s != "" && (s[0] == 'e' || s[0] == 'E') {
		e := trimSign(s[1:])
		n := asciiDigits(e)
		if n == 0 {
			return false
		}
		hasExp = true
		s = e[n:]
	}

	return s == "" && (hasDot || hasExp)
}

func trimSign(s string) string {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		return s[1:]
	}

	return s
}

func asciiDigits(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}

	return i
}
