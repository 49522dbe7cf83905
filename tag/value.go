package tag

import (
	"math"
	"slices"
)

// IsNumeric reports whether t is Byte, Short, Int, Long, Float or Double.
func IsNumeric(t Tag) bool {
	switch t.(type) {
	case Byte, Short, Int, Long, Float, Double:
		return true
	default:
		return false
	}
}

// IsCompound reports whether t is a Compound.
func IsCompound(t Tag) bool {
	_, ok := t.(*Compound)
	return ok
}

// IsList reports whether t is a List.
func IsList(t Tag) bool {
	_, ok := t.(*List)
	return ok
}

// AsNumber converts a numeric tag to float64. It returns 0 and false for nil and
// non-numeric tags.
func AsNumber(t Tag) (float64, bool) {
	switch v := t.(type) {
	case Byte:
		return float64(v), true
	case Short:
		return float64(v), true
	case Int:
		return float64(v), true
	case Long:
		return float64(v), true
	case Float:
		return float64(v), true
	case Double:
		return float64(v), true
	default:
		return 0, false
	}
}

// AsInt converts an integral tag to int64. Floats are truncated toward zero.
func AsInt(t Tag) (int64, bool) {
	switch v := t.(type) {
	case Byte:
		return int64(v), true
	case Short:
		return int64(v), true
	case Int:
		return int64(v), true
	case Long:
		return int64(v), true
	case Float:
		return int64(v), true
	case Double:
		return int64(v), true
	default:
		return 0, false
	}
}

// AsString returns the text of a String tag. It returns "" and false otherwise.
func AsString(t Tag) (string, bool) {
	s, ok := t.(String)
	return string(s), ok
}

// Equal reports whether a and b are structurally equal.
//
// Lists compare element by element in order. Compounds compare key sets and values,
// ignoring entry order. Floating point values compare by bit pattern, so NaN equals
// NaN with the same payload.
func Equal(a, b Tag) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.Type() != b.Type() {
		return false
	}

	switch x := a.(type) {
	case End:
		return true
	case Byte:
		return x == b.(Byte)
	case Short:
		return x == b.(Short)
	case Int:
		return x == b.(Int)
	case Long:
		return x == b.(Long)
	case Float:
		return math.Float32bits(float32(x)) == math.Float32bits(float32(b.(Float)))
	case Double:
		return math.Float64bits(float64(x)) == math.Float64bits(float64(b.(Double)))
	case String:
		return x == b.(String)
	case ByteArray:
		return slices.Equal(x, b.(ByteArray))
	case IntArray:
		return slices.Equal(x, b.(IntArray))
	case LongArray:
		return slices.Equal(x, b.(LongArray))
	case *List:
		return listEqual(x, b.(*List))
	case *Compound:
		return compoundEqual(x, b.(*Compound))
	default:
		return false
	}
}

func listEqual(a, b *List) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Len() != b.Len() || a.ElemType() != b.ElemType() {
		return false
	}

	for i := range a.items {
		if !Equal(a.items[i], b.items[i]) {
			return false
		}
	}

	return true
}

func compoundEqual(a, b *Compound) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Len() != b.Len() {
		return false
	}

	for _, e := range a.entries {
		other, ok := b.Get(e.Name)
		if !ok || !Equal(e.Value, other) {
			return false
		}
	}

	return true
}

// Clone returns a deep copy of t.
func Clone(t Tag) Tag {
	switch v := t.(type) {
	case ByteArray:
		return slices.Clone(v)
	case IntArray:
		return slices.Clone(v)
	case LongArray:
		return slices.Clone(v)
	case *List:
		out := NewListCap(v.Len())
		for _, item := range v.items {
			out.AppendDecoded(v.elemType, Clone(item))
		}

		return out
	case *Compound:
		out := NewCompoundCap(v.Len())
		for _, e := range v.entries {
			out.Put(e.Name, Clone(e.Value))
		}

		return out
	default:
		// scalars are values
		return t
	}
}
