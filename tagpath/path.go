package tagpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/nbt/errs"
)

// Segment is one dotted component of a path: a compound key optionally followed by
// list indexes.
//
//	"inventory"       → Segment{Name: "inventory"}
//	"inventory[0]"    → Segment{Name: "inventory", Indexes: []int{0}}
//	"grid[1][2]"      → Segment{Name: "grid", Indexes: []int{1, 2}}
type Segment struct {
	Name    string
	Indexes []int
}

// Path is a parsed path expression.
type Path []Segment

// Parse parses a path expression.
//
// Syntax:
//   - segments are separated by '.'
//   - a segment name is bare (any characters except . [ ] ") or double quoted,
//     with \" and \\ escapes inside quotes
//   - a name may be followed by any number of [n] list indexes, n >= 0
//
// Examples:
//   - "Data.Player.inventory[0].tag.display.Name"
//   - "\"minecraft:stats\".used"
//   - "grid[1][2]"
//
// Returns errs.ErrInvalidPath if the expression is empty or malformed.
func Parse(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty path", errs.ErrInvalidPath)
	}

	var p Path
	i := 0
	for {
		seg, next, err := parseSegment(s, i)
		if err != nil {
			return nil, err
		}
		p = append(p, seg)
		i = next

		if i == len(s) {
			return p, nil
		}
		if s[i] != '.' {
			return nil, fmt.Errorf("%w: unexpected %q at offset %d in %q", errs.ErrInvalidPath, s[i], i, s)
		}
		i++
	}
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return p
}

func parseSegment(s string, i int) (Segment, int, error) {
	var seg Segment

	if i < len(s) && s[i] == '"' {
		name, next, err := parseQuoted(s, i)
		if err != nil {
			return seg, 0, err
		}
		seg.Name, i = name, next
	} else {
		start := i
		for i < len(s) && !isSpecial(s[i]) {
			i++
		}
		if i == start {
			return seg, 0, fmt.Errorf("%w: empty segment at offset %d in %q", errs.ErrInvalidPath, start, s)
		}
		seg.Name = s[start:i]
	}

	for i < len(s) && s[i] == '[' {
		end := strings.IndexByte(s[i:], ']')
		if end < 0 {
			return seg, 0, fmt.Errorf("%w: unterminated index at offset %d in %q", errs.ErrInvalidPath, i, s)
		}
		digits := s[i+1 : i+end]
		idx, err := strconv.Atoi(digits)
		if err != nil || idx < 0 || digits == "" || digits[0] == '+' {
			return seg, 0, fmt.Errorf("%w: bad index %q in %q", errs.ErrInvalidPath, digits, s)
		}
		seg.Indexes = append(seg.Indexes, idx)
		i += end + 1
	}

	return seg, i, nil
}

func parseQuoted(s string, i int) (string, int, error) {
	var sb strings.Builder
	for j := i + 1; j < len(s); j++ {
		switch c := s[j]; c {
		case '\\':
			if j+1 >= len(s) || (s[j+1] != '"' && s[j+1] != '\\') {
				return "", 0, fmt.Errorf("%w: bad escape at offset %d in %q", errs.ErrInvalidPath, j, s)
			}
			sb.WriteByte(s[j+1])
			j++
		case '"':
			return sb.String(), j + 1, nil
		default:
			sb.WriteByte(c)
		}
	}

	return "", 0, fmt.Errorf("%w: unterminated quote in %q", errs.ErrInvalidPath, s)
}

func isSpecial(c byte) bool {
	return c == '.' || c == '[' || c == ']' || c == '"'
}

// String returns the canonical text form of the path. Names that cannot be written
// bare are quoted.
func (p Path) String() string {
	var sb strings.Builder
	for i, seg := range p {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.String())
	}

	return sb.String()
}

// String returns the text form of one segment. Names made only of ASCII letters,
// digits, '_', '-' and '+' are written bare; every other name is quoted.
func (s Segment) String() string {
	var sb strings.Builder
	if !isBareName(s.Name) {
		sb.WriteByte('"')
		sb.WriteString(strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s.Name))
		sb.WriteByte('"')
	} else {
		sb.WriteString(s.Name)
	}
	for _, idx := range s.Indexes {
		fmt.Fprintf(&sb, "[%d]", idx)
	}

	return sb.String()
}

func isBareName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '-', c == '+':
		default:
			return false
		}
	}

	return true
}

// Parent returns the path without its last segment, nil for single-segment paths.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}

	return p[:len(p)-1]
}

// Last returns the final segment. It panics on an empty path.
func (p Path) Last() Segment {
	return p[len(p)-1]
}
