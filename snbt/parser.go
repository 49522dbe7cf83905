package snbt

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/tag"
)

// MaxDepth is the deepest container nesting Parse accepts.
const MaxDepth = 512

// Parse parses SNBT text into a tag.
//
// Grammar:
//   - compound: { key: value, ... } with bare or quoted keys
//   - list: [ value, ... ] whose elements all share one kind
//   - typed arrays: [B; ...], [I; ...], [L; ...]
//   - strings: single or double quoted with \\ \" \' \n \t \r \b \f \uXXXX escapes,
//     or bare tokens that are not numbers or booleans
//   - numbers: an optional suffix b, s, l, f or d selects the kind; otherwise
//     integers are Int and literals with a fraction or exponent are Double
//   - true and false are Byte 1 and 0
//
// Whitespace may appear between tokens and a trailing comma is accepted before a
// closing bracket.
//
// Returns a *SyntaxError, which matches errs.ErrSyntax, for invalid text.
func Parse(text string) (tag.Tag, error) {
	p := &parser{src: text}

	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("empty input")
	}

	v, err := p.value()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q after value", p.peekRune())
	}

	return v, nil
}

type parser struct {
	src   string
	pos   int
	depth int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}

	return p.src[p.pos]
}

func (p *parser) peekRune() rune {
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

func (p *parser) errorf(format string, args ...any) error {
	return newSyntaxError(p.src, p.pos, format, args...)
}

func (p *parser) errorAt(off int, format string, args ...any) error {
	return newSyntaxError(p.src, off, format, args...)
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) expect(c byte) error {
	if p.eof() {
		return p.errorf("expected %q, found end of input", c)
	}
	if p.src[p.pos] != c {
		return p.errorf("expected %q, found %q", c, p.peekRune())
	}
	p.pos++

	return nil
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > MaxDepth {
		return p.errorf("nesting deeper than %d", MaxDepth)
	}

	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) value() (tag.Tag, error) {
	switch c := p.peek(); c {
	case '{':
		return p.compound()
	case '[':
		return p.listOrArray()
	case '"', '\'':
		s, err := p.quoted()
		if err != nil {
			return nil, err
		}

		return tag.String(s), nil
	}

	tok := p.bare()
	if tok == "" {
		if p.eof() {
			return nil, p.errorf("expected value, found end of input")
		}

		return nil, p.errorf("unexpected %q", p.peekRune())
	}

	return scalar(tok), nil
}

// bare consumes an unquoted token, possibly empty.
func (p *parser) bare() string {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !isBareRune(r) {
			break
		}
		p.pos += size
	}

	return p.src[start:p.pos]
}

func (p *parser) key() (string, error) {
	if c := p.peek(); c == '"' || c == '\'' {
		return p.quoted()
	}

	k := p.bare()
	if k == "" {
		if p.eof() {
			return "", p.errorf("expected key, found end of input")
		}

		return "", p.errorf("expected key, found %q", p.peekRune())
	}

	return k, nil
}

func (p *parser) compound() (tag.Tag, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	p.pos++ // {
	c := tag.NewCompound()
	for {
		p.skipSpace()
		if p.peek() == '}' {
			p.pos++
			return c, nil
		}

		k, err := p.key()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		p.skipSpace()

		v, err := p.value()
		if err != nil {
			return nil, err
		}
		c.Put(k, v)

		if err := p.separator('}'); err != nil {
			return nil, err
		}
	}
}

// separator consumes the ',' after an element, or leaves the closing bracket for the
// caller's loop.
func (p *parser) separator(closing byte) error {
	p.skipSpace()
	switch {
	case p.eof():
		return p.errorf("expected ',' or %q, found end of input", closing)
	case p.src[p.pos] == ',':
		p.pos++
		return nil
	case p.src[p.pos] == closing:
		return nil
	default:
		return p.errorf("expected ',' or %q, found %q", closing, p.peekRune())
	}
}

func (p *parser) listOrArray() (tag.Tag, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	p.pos++ // [
	p.skipSpace()

	if kind := p.peek(); kind == 'B' || kind == 'I' || kind == 'L' {
		save := p.pos
		p.pos++
		p.skipSpace()
		if p.peek() == ';' {
			p.pos++
			return p.array(kind)
		}
		p.pos = save
	}

	l := tag.NewListCap(0)
	for {
		p.skipSpace()
		if p.peek() == ']' {
			p.pos++
			return l, nil
		}

		start := p.pos
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		if err := l.Append(v); err != nil {
			if errors.Is(err, errs.ErrListTypeMismatch) {
				return nil, p.errorAt(start, "list of %s cannot hold %s", l.ElemType(), v.Type())
			}

			return nil, p.errorAt(start, "%v", err)
		}

		if err := p.separator(']'); err != nil {
			return nil, err
		}
	}
}

// array parses the elements of a typed array after the "X;" prefix.
func (p *parser) array(kind byte) (tag.Tag, error) {
	var (
		bytes []int8
		ints  []int32
		longs []int64
	)

	for {
		p.skipSpace()
		if p.peek() == ']' {
			p.pos++
			break
		}

		start := p.pos
		tok := p.bare()
		if tok == "" {
			if p.eof() {
				return nil, p.errorf("expected array element, found end of input")
			}

			return nil, p.errorf("expected array element, found %q", p.peekRune())
		}

		n, err := p.arrayElement(kind, tok, start)
		if err != nil {
			return nil, err
		}
		switch kind {
		case 'B':
			bytes = append(bytes, int8(n))
		case 'I':
			ints = append(ints, int32(n))
		default:
			longs = append(longs, n)
		}

		if err := p.separator(']'); err != nil {
			return nil, err
		}
	}

	switch kind {
	case 'B':
		return tag.ByteArray(nonNil(bytes)), nil
	case 'I':
		return tag.IntArray(nonNil(ints)), nil
	default:
		return tag.LongArray(nonNil(longs)), nil
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}

// arrayElement parses one integer of a typed array. A suffix, when present, must
// name the array's element kind.
func (p *parser) arrayElement(kind byte, tok string, start int) (int64, error) {
	body, suffix := splitSuffix(tok)

	bits := 64
	switch kind {
	case 'B':
		bits = 8
		if suffix != 0 && suffix != 'b' {
			return 0, p.errorAt(start, "byte array element %q has the wrong suffix", tok)
		}
	case 'I':
		bits = 32
		if suffix != 0 {
			return 0, p.errorAt(start, "int array element %q has a suffix", tok)
		}
	case 'L':
		if suffix != 0 && suffix != 'l' {
			return 0, p.errorAt(start, "long array element %q has the wrong suffix", tok)
		}
	}

	if !isInteger(body) {
		return 0, p.errorAt(start, "array element %q is not an integer", tok)
	}

	n, err := strconv.ParseInt(body, 10, bits)
	if err != nil {
		return 0, p.errorAt(start, "array element %q overflows %d bits", tok, bits)
	}

	return n, nil
}

// quoted parses a single or double quoted string starting at the opening quote.
func (p *parser) quoted() (string, error) {
	start := p.pos
	q := p.src[p.pos]
	p.pos++

	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errorAt(start, "unterminated string")
		}

		c := p.src[p.pos]
		switch {
		case c == q:
			p.pos++
			return sb.String(), nil
		case c == '\\':
			if err := p.escape(&sb); err != nil {
				return "", err
			}
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
}

func (p *parser) escape(sb *strings.Builder) error {
	start := p.pos
	p.pos++ // backslash
	if p.eof() {
		return p.errorAt(start, "unterminated escape")
	}

	c := p.src[p.pos]
	p.pos++
	switch c {
	case '\\', '"', '\'':
		sb.WriteByte(c)
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'u':
		r, err := p.hex4(start)
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) && strings.HasPrefix(p.src[p.pos:], `\u`) {
			save := p.pos
			p.pos += 2
			lo, err := p.hex4(save)
			if err != nil {
				return err
			}
			if pair := utf16.DecodeRune(r, lo); pair != utf8.RuneError {
				r = pair
			} else {
				p.pos = save
			}
		}
		sb.WriteRune(r)
	default:
		return p.errorAt(start, "invalid escape \\%c", c)
	}

	return nil
}

func (p *parser) hex4(start int) (rune, error) {
	if len(p.src)-p.pos < 4 {
		return 0, p.errorAt(start, "truncated \\u escape")
	}

	n, err := strconv.ParseUint(p.src[p.pos:p.pos+4], 16, 16)
	if err != nil {
		return 0, p.errorAt(start, "invalid \\u escape %q", p.src[p.pos:p.pos+4])
	}
	p.pos += 4

	return rune(n), nil
}
