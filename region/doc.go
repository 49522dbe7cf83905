// Package region reads and writes region files: 32×32 grids of independently
// compressed NBT chunks.
//
// # File Layout
//
// A region file starts with two 4 KiB tables. Slot i = x + z*32 of the first table
// holds a big-endian uint32 whose top 3 bytes are the chunk's sector offset and whose
// low byte is its sector count; zero means the slot is empty. The same slot of the
// second table holds the chunk's modification time in Unix seconds.
//
// Each chunk starts at offset*4096 with a big-endian uint32 length, then one scheme
// byte, then length-1 bytes of compressed raw NBT:
//
//	1  gzip
//	2  zlib
//	3  uncompressed
//	4  LZ4
//
// A scheme with the 0x80 bit set marks a chunk stored in a separate file; those are
// reported as errs.ErrUnsupportedCompression.
//
// # Usage
//
//	r, err := region.Read(data)
//	c, ok := r.Chunk(3, 7)
//	if ok {
//	    doc, err := c.Document()
//	    // edit doc.Root ...
//	}
//	out, err := r.Write()
//
// Chunks are decoded on first access. Write re-encodes only the chunks whose document
// was loaded, so untouched chunks keep their exact bytes. Sector space is allocated
// append-only in slot order, which also compacts any gaps the input had.
//
// DecodeAll decodes all chunks in parallel; cancellation is observed between chunks.
package region
