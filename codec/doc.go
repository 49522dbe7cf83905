// Package codec reads and writes binary NBT documents.
//
// A document is a root Compound tag with a name, optionally wrapped in a compression
// envelope. Decode detects the envelope from the leading magic bytes; Encode writes the
// envelope recorded in Document.Compression:
//
//	doc, err := codec.Decode(data)
//	if err != nil {
//	    return err
//	}
//	doc.Root.Put("LastPlayed", tag.Long(time.Now().UnixMilli()))
//	out, err := codec.Encode(doc)
//
// # Wire Layout
//
// Every named tag is a type id byte, a uint16 length-prefixed modified UTF-8 name and
// a payload. Compounds end at a type id 0 byte. Lists carry one element type id and an
// int32 count. Java Edition writes numbers big-endian, Bedrock Edition little-endian;
// select the latter with WithLittleEndian.
//
// # Selective Decoding
//
// DecodeSelective, or Decode with WithFilter, materializes only the addressed paths:
//
//	doc, err := codec.DecodeSelective(data, []string{"Data.Player.Name", "Data.Player.inventory[0].id"})
//
// Skipped subtrees are walked without allocation. Lists on a selected path keep their
// length, so indexes resolve the same way they do against a full decode.
//
// # Limits
//
// Lengths are checked against the remaining input before any allocation, and nesting
// deeper than DefaultMaxDepth (see WithMaxDepth) is rejected, so corrupt or hostile
// input fails with errs.ErrMalformedInput instead of exhausting memory or stack.
//
// # Thread Safety
//
// Decode and Encode share no state between calls. A Document must not be mutated while
// it is being encoded.
package codec
