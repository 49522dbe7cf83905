package tagpath

import (
	"fmt"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/tag"
)

// Set stores value at path.
//
// Intermediate containers are never created: every segment before the last must
// already resolve, otherwise errs.ErrPathNotFound is returned. When the final segment
// has no index, the key is upserted in its parent compound regardless of the previous
// value's kind. When it ends in an index, the addressed list element is replaced and
// the value must match the list's element type.
func Set(root *tag.Compound, path string, value tag.Tag) error {
	p, err := Parse(path)
	if err != nil {
		return err
	}

	return p.Set(root, value)
}

// Set stores value at p. See the package-level Set.
func (p Path) Set(root *tag.Compound, value tag.Tag) error {
	if value == nil {
		return fmt.Errorf("%w: nil value for %q", errs.ErrMalformedInput, p.String())
	}

	parent, err := p.parentCompound(root)
	if err != nil {
		return err
	}

	last := p.Last()
	if len(last.Indexes) == 0 {
		parent.Put(last.Name, value)
		return nil
	}

	l, idx, err := p.targetList(parent)
	if err != nil {
		return err
	}

	if err := l.Set(idx, value); err != nil {
		return fmt.Errorf("set %q: %w", p.String(), err)
	}

	return nil
}

// Delete removes the value at path. A trailing index removes that list element.
func Delete(root *tag.Compound, path string) error {
	p, err := Parse(path)
	if err != nil {
		return err
	}

	return p.Delete(root)
}

// Delete removes the value at p. See the package-level Delete.
func (p Path) Delete(root *tag.Compound) error {
	parent, err := p.parentCompound(root)
	if err != nil {
		return err
	}

	last := p.Last()
	if len(last.Indexes) == 0 {
		if !parent.Delete(last.Name) {
			return fmt.Errorf("%w: %q", errs.ErrPathNotFound, p.String())
		}

		return nil
	}

	l, idx, err := p.targetList(parent)
	if err != nil {
		return err
	}

	if !l.Remove(idx) {
		return fmt.Errorf("%w: %w: %q index %d, length %d",
			errs.ErrPathNotFound, errs.ErrIndexOutOfRange, p.String(), idx, l.Len())
	}

	return nil
}

// ModifyListItem upserts key = value inside the compound at listPath[index].
//
// Returns errs.ErrTypeMismatch when listPath is not a List or the element is not a
// Compound, and errs.ErrIndexOutOfRange when index is beyond the list.
func ModifyListItem(root *tag.Compound, listPath string, index int, key string, value tag.Tag) error {
	v, err := Get(root, listPath)
	if err != nil {
		return err
	}

	l, ok := v.(*tag.List)
	if !ok {
		return fmt.Errorf("%w: %q is %s, not List", errs.ErrTypeMismatch, listPath, typeOf(v))
	}

	item, ok := l.At(index)
	if !ok {
		return fmt.Errorf("%w: %w: %q index %d, length %d",
			errs.ErrPathNotFound, errs.ErrIndexOutOfRange, listPath, index, l.Len())
	}

	c, ok := item.(*tag.Compound)
	if !ok {
		return fmt.Errorf("%w: %s[%d] is %s, not Compound", errs.ErrTypeMismatch, listPath, index, typeOf(item))
	}

	if value == nil {
		return fmt.Errorf("%w: nil value for %q", errs.ErrMalformedInput, key)
	}
	c.Put(key, value)

	return nil
}

// parentCompound resolves every segment but the last and returns the compound that
// holds the last segment's name.
func (p Path) parentCompound(root *tag.Compound) (*tag.Compound, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: empty path", errs.ErrInvalidPath)
	}

	if root == nil {
		return nil, fmt.Errorf("%w: %q in a nil compound", errs.ErrPathNotFound, p.String())
	}

	parentPath := p.Parent()
	if len(parentPath) == 0 {
		return root, nil
	}

	v, err := parentPath.Get(root)
	if err != nil {
		return nil, err
	}

	c, ok := v.(*tag.Compound)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %s, not Compound", errs.ErrTypeMismatch, parentPath.String(), typeOf(v))
	}

	return c, nil
}

// targetList resolves the last segment up to its final index and returns the list
// that index addresses.
func (p Path) targetList(parent *tag.Compound) (*tag.List, int, error) {
	last := p.Last()
	head := Segment{Name: last.Name, Indexes: last.Indexes[:len(last.Indexes)-1]}

	v, err := step(parent, head, p)
	if err != nil {
		return nil, 0, err
	}

	l, ok := v.(*tag.List)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q is %s, not List", errs.ErrTypeMismatch, p.String(), typeOf(v))
	}

	return l, last.Indexes[len(last.Indexes)-1], nil
}
