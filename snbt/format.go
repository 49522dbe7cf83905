package snbt

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/arloliu/nbt/tag"
)

const indentUnit = "    "

// Format renders t as SNBT text.
//
// Compact output has no whitespace. Pretty output puts each compound entry and each
// element of a list of containers on its own line, indented four spaces per level;
// lists of scalars and typed arrays stay on one line. In both modes Parse(Format(t))
// is structurally equal to t.
//
// Nil and End tags render as the empty string.
func Format(t tag.Tag, pretty bool) string {
	w := writer{pretty: pretty}
	w.value(t, 0)

	return w.sb.String()
}

// FormatCompact is Format(t, false).
func FormatCompact(t tag.Tag) string {
	return Format(t, false)
}

// FormatPretty is Format(t, true).
func FormatPretty(t tag.Tag) string {
	return Format(t, true)
}

type writer struct {
	sb     strings.Builder
	pretty bool
}

func (w *writer) newline(level int) {
	w.sb.WriteByte('\n')
	for range level {
		w.sb.WriteString(indentUnit)
	}
}

func (w *writer) sep() {
	w.sb.WriteByte(',')
	if w.pretty {
		w.sb.WriteByte(' ')
	}
}

func (w *writer) value(t tag.Tag, level int) {
	switch v := t.(type) {
	case tag.Byte:
		w.sb.WriteString(strconv.FormatInt(int64(v), 10))
		w.sb.WriteByte('b')
	case tag.Short:
		w.sb.WriteString(strconv.FormatInt(int64(v), 10))
		w.sb.WriteByte('s')
	case tag.Int:
		w.sb.WriteString(strconv.FormatInt(int64(v), 10))
	case tag.Long:
		w.sb.WriteString(strconv.FormatInt(int64(v), 10))
		w.sb.WriteByte('L')
	case tag.Float:
		w.sb.WriteString(formatFloat(float64(v), 32))
		w.sb.WriteByte('f')
	case tag.Double:
		w.sb.WriteString(formatFloat(float64(v), 64))
		w.sb.WriteByte('d')
	case tag.String:
		w.sb.WriteString(quoteValue(string(v)))
	case tag.ByteArray:
		w.sb.WriteString("[B;")
		for i, b := range v {
			w.arraySep(i)
			w.sb.WriteString(strconv.FormatInt(int64(b), 10))
			w.sb.WriteByte('b')
		}
		w.sb.WriteByte(']')
	case tag.IntArray:
		w.sb.WriteString("[I;")
		for i, n := range v {
			w.arraySep(i)
			w.sb.WriteString(strconv.FormatInt(int64(n), 10))
		}
		w.sb.WriteByte(']')
	case tag.LongArray:
		w.sb.WriteString("[L;")
		for i, n := range v {
			w.arraySep(i)
			w.sb.WriteString(strconv.FormatInt(n, 10))
			w.sb.WriteByte('L')
		}
		w.sb.WriteByte(']')
	case *tag.List:
		if v != nil {
			w.list(v, level)
		}
	case *tag.Compound:
		if v != nil {
			w.compound(v, level)
		}
	}
}

func (w *writer) arraySep(i int) {
	switch {
	case i > 0:
		w.sep()
	case w.pretty:
		w.sb.WriteByte(' ')
	}
}

func (w *writer) list(l *tag.List, level int) {
	elem := l.ElemType()
	multiline := w.pretty && l.Len() > 0 && (elem == tag.TypeCompound || elem == tag.TypeList)

	w.sb.WriteByte('[')
	for i, item := range l.All() {
		switch {
		case multiline:
			if i > 0 {
				w.sb.WriteByte(',')
			}
			w.newline(level + 1)
		case i > 0:
			w.sep()
		}
		w.value(item, level+1)
	}
	if multiline {
		w.newline(level)
	}
	w.sb.WriteByte(']')
}

func (w *writer) compound(c *tag.Compound, level int) {
	w.sb.WriteByte('{')
	first := true
	for name, v := range c.All() {
		if !first {
			w.sb.WriteByte(',')
		}
		first = false

		if w.pretty {
			w.newline(level + 1)
		}
		w.sb.WriteString(quoteKey(name))
		w.sb.WriteByte(':')
		if w.pretty {
			w.sb.WriteByte(' ')
		}
		w.value(v, level+1)
	}
	if w.pretty && !first {
		w.newline(level)
	}
	w.sb.WriteByte('}')
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	return strconv.FormatFloat(f, 'g', -1, bits)
}

// quoteValue writes s bare when the bare token parses back to the same String.
func quoteValue(s string) string {
	if isBare(s) {
		if v, ok := scalar(s).(tag.String); ok && string(v) == s {
			return s
		}
	}

	return quote(s)
}

// quoteKey writes keys bare whenever the characters allow it; keys are never
// interpreted as numbers.
func quoteKey(s string) string {
	if isBare(s) {
		return s
	}

	return quote(s)
}

// quote wraps s in double quotes, or single quotes when s contains a double quote but
// no single quote.
func quote(s string) string {
	q := byte('"')
	if strings.IndexByte(s, '"') >= 0 && strings.IndexByte(s, '\'') < 0 {
		q = '\''
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte(q)
	for _, r := range s {
		switch r {
		case rune(q):
			sb.WriteByte('\\')
			sb.WriteByte(q)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if unicode.IsControl(r) {
				sb.WriteString(`\u`)
				hex := strconv.FormatUint(uint64(r), 16)
				sb.WriteString(strings.Repeat("0", 4-len(hex)))
				sb.WriteString(hex)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte(q)

	return sb.String()
}
