// Package tag implements the NBT tag value model.
//
// A Tag is one of exactly twelve kinds. The set is closed: Tag carries an unexported
// method, so only the types declared in this package satisfy it, and every switch
// over a Tag can enumerate all kinds.
//
//	root := tag.NewCompound()
//	root.Put("name", tag.String("Steve"))
//	root.Put("health", tag.Float(20))
//
//	scores, _ := tag.NewList(tag.Int(1), tag.Int(2), tag.Int(3))
//	root.Put("scores", scores)
//
// Containers own their children exclusively: a List or Compound never shares a child
// with another container, and there are no back references.
package tag

// Type is the numeric id of a tag kind as written on the wire.
type Type uint8

const (
	TypeEnd       Type = 0
	TypeByte      Type = 1
	TypeShort     Type = 2
	TypeInt       Type = 3
	TypeLong      Type = 4
	TypeFloat     Type = 5
	TypeDouble    Type = 6
	TypeByteArray Type = 7
	TypeString    Type = 8
	TypeList      Type = 9
	TypeCompound  Type = 10
	TypeIntArray  Type = 11
	TypeLongArray Type = 12
)

var typeNames = [...]string{
	TypeEnd:       "End",
	TypeByte:      "Byte",
	TypeShort:     "Short",
	TypeInt:       "Int",
	TypeLong:      "Long",
	TypeFloat:     "Float",
	TypeDouble:    "Double",
	TypeByteArray: "ByteArray",
	TypeString:    "String",
	TypeList:      "List",
	TypeCompound:  "Compound",
	TypeIntArray:  "IntArray",
	TypeLongArray: "LongArray",
}

// Valid reports whether t is one of the twelve known ids (End included).
func (t Type) Valid() bool {
	return t <= TypeLongArray
}

func (t Type) String() string {
	if !t.Valid() {
		return "Unknown"
	}

	return typeNames[t]
}

// Tag is a single typed node in an NBT tree.
type Tag interface {
	// Type returns the kind id of the tag.
	Type() Type

	tag()
}

type (
	// End marks the end of a compound body. It never appears as a compound value.
	End struct{}

	Byte   int8
	Short  int16
	Int    int32
	Long   int64
	Float  float32
	Double float64
	String string

	ByteArray []int8
	IntArray  []int32
	LongArray []int64
)

func (End) Type() Type       { return TypeEnd }
func (Byte) Type() Type      { return TypeByte }
func (Short) Type() Type     { return TypeShort }
func (Int) Type() Type       { return TypeInt }
func (Long) Type() Type      { return TypeLong }
func (Float) Type() Type     { return TypeFloat }
func (Double) Type() Type    { return TypeDouble }
func (ByteArray) Type() Type { return TypeByteArray }
func (String) Type() Type    { return TypeString }
func (*List) Type() Type     { return TypeList }
func (*Compound) Type() Type { return TypeCompound }
func (IntArray) Type() Type  { return TypeIntArray }
func (LongArray) Type() Type { return TypeLongArray }

func (End) tag()       {}
func (Byte) tag()      {}
func (Short) tag()     {}
func (Int) tag()       {}
func (Long) tag()      {}
func (Float) tag()     {}
func (Double) tag()    {}
func (ByteArray) tag() {}
func (String) tag()    {}
func (*List) tag()     {}
func (*Compound) tag() {}
func (IntArray) tag()  {}
func (LongArray) tag() {}

// Bool returns Byte(1) for true and Byte(0) for false.
func Bool(v bool) Byte {
	if v {
		return 1
	}

	return 0
}
