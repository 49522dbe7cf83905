// Package nbt reads, edits and writes Named Binary Tag data: the typed, nested binary
// format Minecraft uses for worlds, player data and items.
//
// # Core Features
//
//   - Binary codec for Java Edition (big-endian) and Bedrock Edition (little-endian)
//   - Automatic detection of gzip, zlib, Zstandard and LZ4 envelopes
//   - Selective decoding that skips everything outside a set of paths
//   - Path queries and updates such as "Inventory[0].tag.display.Name"
//   - SNBT, the text form used by commands, in compact and pretty layouts
//   - Region files: 32×32 grids of independently compressed chunks
//
// # Basic Usage
//
// Reading a value from a compressed file:
//
//	doc, err := nbt.Decode(data)
//	if err != nil {
//	    return err
//	}
//	name, ok := nbt.GetAt(doc, "Inventory[0].tag.display.Name")
//
// Editing it and writing the file back with its original compression:
//
//	nbt.SetAt(doc, "Inventory[0].Count", tag.Byte(64))
//	out, err := nbt.Encode(doc)
//
// Reading only what is needed from a large file:
//
//	doc, err := nbt.DecodeSelective(data, []string{"Data.LevelName", "Data.Time"})
//
// # Package Structure
//
// This package provides convenient top-level wrappers for the most common use cases.
// For advanced usage and fine-grained control, use the codec, tagpath, snbt and region
// packages directly.
package nbt

import (
	"github.com/arloliu/nbt/codec"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/region"
	"github.com/arloliu/nbt/snbt"
	"github.com/arloliu/nbt/tag"
	"github.com/arloliu/nbt/tagpath"
)

// NewDocument returns an empty document that encodes with the given compression.
//
// Example:
//
//	doc := nbt.NewDocument("", format.CompressionGzip)
//	doc.Root.Put("DataVersion", tag.Int(3700))
func NewDocument(name string, compression format.CompressionType) *codec.Document {
	return codec.NewDocument(name, compression)
}

// Decode decodes a binary NBT file, detecting its compression from the leading bytes.
//
// The returned document remembers the detected compression, so Encode writes it back
// in the same envelope.
//
// Available options:
//   - codec.WithBigEndian() / codec.WithLittleEndian()
//   - codec.WithMaxDepth(n)
//
// Returns an error wrapping errs.ErrMalformedInput for truncated or corrupt input.
func Decode(data []byte, opts ...codec.Option) (*codec.Document, error) {
	return codec.Decode(data, opts...)
}

// DecodeSelective decodes only the values addressed by paths and their ancestors.
// Compound entries outside every path are skipped without being materialized.
//
// Example:
//
//	doc, err := nbt.DecodeSelective(data, []string{"Data.Player.Pos"})
func DecodeSelective(data []byte, paths []string, opts ...codec.Option) (*codec.Document, error) {
	return codec.DecodeSelective(data, paths, opts...)
}

// Encode encodes doc and wraps it in doc.Compression.
func Encode(doc *codec.Document, opts ...codec.Option) ([]byte, error) {
	return codec.Encode(doc, opts...)
}

// GetAt returns the value at path in doc. The second result is false when the path is
// invalid, missing or crosses a value of the wrong kind; use tagpath.Get to tell those
// apart.
func GetAt(doc *codec.Document, path string) (tag.Tag, bool) {
	if doc == nil {
		return nil, false
	}

	return tagpath.Lookup(doc.Root, path)
}

// SetAt stores value at path in doc and reports whether it succeeded. The parent of
// the target must already exist; use tagpath.Set for the error detail.
func SetAt(doc *codec.Document, path string, value tag.Tag) bool {
	if doc == nil {
		return false
	}

	return tagpath.Set(doc.Root, path, value) == nil
}

// ReadRegion decodes every occupied chunk of a region file. Empty slots are absent from
// the result.
//
// Available options:
//   - region.WithSkipCorrupt()
//   - region.WithLogger(logger)
//   - region.WithCodecOptions(opts...)
func ReadRegion(data []byte, opts ...region.Option) (map[region.Pos]*codec.Document, error) {
	return region.ReadDocuments(data, opts...)
}

// WriteRegion builds a region file from documents keyed by chunk position.
//
// Available options:
//   - region.WithScheme(format.SchemeGzip|SchemeZlib|SchemeNone|SchemeLZ4)
func WriteRegion(docs map[region.Pos]*codec.Document, opts ...region.Option) ([]byte, error) {
	return region.WriteDocuments(docs, opts...)
}

// ParseSNBT parses SNBT text into a tag. Errors are *snbt.SyntaxError values carrying
// the line and column.
func ParseSNBT(text string) (tag.Tag, error) {
	return snbt.Parse(text)
}

// FormatSNBT renders t as SNBT, indented when pretty is set.
func FormatSNBT(t tag.Tag, pretty bool) string {
	return snbt.Format(t, pretty)
}
