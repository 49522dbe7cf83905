package tag

import (
	"fmt"
	"iter"

	"github.com/arloliu/nbt/errs"
)

// List is an ordered sequence of tags sharing one element type.
//
// The element type is fixed by the first element added. An empty list reports
// TypeEnd as its element type, and removing the last element resets it.
type List struct {
	elemType Type
	items    []Tag
}

// NewList creates a list holding items.
//
// Returns errs.ErrListTypeMismatch if the items do not all share one type, or
// errs.ErrMalformedInput for nil or End items.
func NewList(items ...Tag) (*List, error) {
	l := &List{items: make([]Tag, 0, len(items))}
	for _, item := range items {
		if err := l.Append(item); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// MustList is like NewList but panics on error. It is intended for literals in tests
// and examples.
func MustList(items ...Tag) *List {
	l, err := NewList(items...)
	if err != nil {
		panic(err)
	}

	return l
}

// ElemType returns the element type, TypeEnd for an empty list.
func (l *List) ElemType() Type {
	if len(l.items) == 0 {
		return TypeEnd
	}

	return l.elemType
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.items)
}

// At returns the element at index i, or nil and false when i is out of range.
func (l *List) At(i int) (Tag, bool) {
	if i < 0 || i >= len(l.items) {
		return nil, false
	}

	return l.items[i], true
}

// Append adds v to the end of the list.
func (l *List) Append(v Tag) error {
	if err := l.check(v); err != nil {
		return err
	}

	if len(l.items) == 0 {
		l.elemType = v.Type()
	}
	l.items = append(l.items, v)

	return nil
}

// Set replaces the element at index i. The new value must have the list's element type.
func (l *List) Set(i int, v Tag) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: %w: index %d, length %d", errs.ErrPathNotFound, errs.ErrIndexOutOfRange, i, len(l.items))
	}

	if err := l.check(v); err != nil {
		return err
	}

	l.items[i] = v

	return nil
}

// Remove deletes the element at index i and reports whether it existed.
func (l *List) Remove(i int) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}

	l.items = append(l.items[:i], l.items[i+1:]...)
	if len(l.items) == 0 {
		l.elemType = TypeEnd
	}

	return true
}

// All iterates over index and element pairs in order.
func (l *List) All() iter.Seq2[int, Tag] {
	return func(yield func(int, Tag) bool) {
		for i, item := range l.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

func (l *List) check(v Tag) error {
	if v == nil {
		return fmt.Errorf("%w: nil list element", errs.ErrMalformedInput)
	}

	if v.Type() == TypeEnd {
		return fmt.Errorf("%w: End cannot be a list element", errs.ErrMalformedInput)
	}

	if len(l.items) > 0 && v.Type() != l.elemType {
		return fmt.Errorf("%w: list holds %s, got %s", errs.ErrListTypeMismatch, l.elemType, v.Type())
	}

	return nil
}

// NewListCap returns an empty list whose backing storage can hold n elements.
func NewListCap(n int) *List {
	return &List{items: make([]Tag, 0, n)}
}

// AppendDecoded appends v, which the caller guarantees is of type elemType.
// Decoders use it after validating the element id once for the whole list.
func (l *List) AppendDecoded(elemType Type, v Tag) {
	l.elemType = elemType
	l.items = append(l.items, v)
}
