package codec

import (
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/tag"
)

// Document is a decoded NBT file: the root compound, its name and the compression
// envelope it was read from.
//
// Encode writes Compression back out, so a decoded document re-encodes with the same
// envelope unless the caller changes it.
type Document struct {
	Name        string
	Root        *tag.Compound
	Compression format.CompressionType
}

// NewDocument returns a document with an empty root compound.
func NewDocument(name string, compression format.CompressionType) *Document {
	return &Document{
		Name:        name,
		Root:        tag.NewCompound(),
		Compression: compression,
	}
}
