package tagpath

import (
	"fmt"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/tag"
)

// Get resolves path against root.
//
// Parameters:
//   - root: Compound to start from
//   - path: Path expression, see Parse
//
// Returns:
//   - tag.Tag: The value at path
//   - error: errs.ErrInvalidPath for a malformed expression, errs.ErrPathNotFound when
//     a key is missing, errs.ErrTypeMismatch when a segment addresses into a value of
//     the wrong kind, and errs.ErrIndexOutOfRange (which also matches ErrPathNotFound)
//     for a list index beyond the end
func Get(root *tag.Compound, path string) (tag.Tag, error) {
	p, err := Parse(path)
	if err != nil {
		return nil, err
	}

	return p.Get(root)
}

// Get resolves p against root. See the package-level Get for the error contract.
func (p Path) Get(root *tag.Compound) (tag.Tag, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: empty path", errs.ErrInvalidPath)
	}
	if root == nil {
		return nil, fmt.Errorf("%w: %q in a nil compound", errs.ErrPathNotFound, p.String())
	}

	var cur tag.Tag = root
	for i, seg := range p {
		next, err := step(cur, seg, p[:i+1])
		if err != nil {
			return nil, err
		}
		cur = next
	}

	return cur, nil
}

// step resolves one segment: the named child of a compound, then each index in turn.
func step(cur tag.Tag, seg Segment, at Path) (tag.Tag, error) {
	c, ok := cur.(*tag.Compound)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %s, not Compound", errs.ErrTypeMismatch, at.Parent().String(), typeOf(cur))
	}

	child, ok := c.Get(seg.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrPathNotFound, at.String())
	}

	for _, idx := range seg.Indexes {
		next, err := index(child, idx, at)
		if err != nil {
			return nil, err
		}
		child = next
	}

	return child, nil
}

func index(v tag.Tag, idx int, at Path) (tag.Tag, error) {
	l, ok := v.(*tag.List)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %s, not List", errs.ErrTypeMismatch, at.String(), typeOf(v))
	}

	item, ok := l.At(idx)
	if !ok {
		return nil, fmt.Errorf("%w: %w: %q index %d, length %d",
			errs.ErrPathNotFound, errs.ErrIndexOutOfRange, at.String(), idx, l.Len())
	}

	return item, nil
}

func typeOf(v tag.Tag) string {
	if v == nil {
		return "nil"
	}

	return v.Type().String()
}

// Lookup resolves path, collapsing every failure to ok == false.
func Lookup(root *tag.Compound, path string) (tag.Tag, bool) {
	v, err := Get(root, path)
	if err != nil {
		return nil, false
	}

	return v, true
}

// GetString returns the String at path.
func GetString(root *tag.Compound, path string) (string, bool) {
	v, ok := Lookup(root, path)
	if !ok {
		return "", false
	}

	return tag.AsString(v)
}

// GetNumber returns the numeric value at path widened to float64.
func GetNumber(root *tag.Compound, path string) (float64, bool) {
	v, ok := Lookup(root, path)
	if !ok {
		return 0, false
	}

	return tag.AsNumber(v)
}

// GetInt returns the integral value at path widened to int64. Float and Double
// values are truncated toward zero.
func GetInt(root *tag.Compound, path string) (int64, bool) {
	v, ok := Lookup(root, path)
	if !ok {
		return 0, false
	}

	return tag.AsInt(v)
}

// GetMany resolves every path independently. Paths that do not resolve are absent
// from the result.
func GetMany(root *tag.Compound, paths []string) map[string]tag.Tag {
	out := make(map[string]tag.Tag, len(paths))
	for _, path := range paths {
		if v, ok := Lookup(root, path); ok {
			out[path] = v
		}
	}

	return out
}
