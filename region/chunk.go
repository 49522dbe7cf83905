package region

import (
	"fmt"
	"time"

	"github.com/arloliu/nbt/codec"
	"github.com/arloliu/nbt/compress"
	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
)

// Chunk is one occupied region slot.
//
// A chunk read from a file keeps its compressed payload and decodes it on the first
// Document call. The decoded document is cached; Region.Write encodes the cached
// document again, so changes made to it are written out.
//
// A Chunk is not safe for concurrent use.
type Chunk struct {
	Pos       Pos
	Timestamp uint32 // seconds since the Unix epoch
	Scheme    format.RegionScheme

	payload []byte
	doc     *codec.Document
}

// NewChunk returns a chunk holding doc, compressed with scheme when written.
//
// Returns errs.ErrInvalidCoordinates for a position outside the region and
// errs.ErrUnsupportedCompression for a scheme without a codec.
func NewChunk(pos Pos, doc *codec.Document, scheme format.RegionScheme, timestamp uint32) (*Chunk, error) {
	if !pos.Valid() {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCoordinates, pos)
	}
	if _, ok := scheme.Compression(); !ok {
		return nil, fmt.Errorf("%w: region scheme %d", errs.ErrUnsupportedCompression, uint8(scheme))
	}
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("%w: chunk %s has no document", errs.ErrMalformedInput, pos)
	}

	return &Chunk{Pos: pos, Timestamp: timestamp, Scheme: scheme, doc: doc}, nil
}

// ModTime returns Timestamp as a time.
func (c *Chunk) ModTime() time.Time {
	return time.Unix(int64(c.Timestamp), 0)
}

// Payload returns the compressed payload as stored in the file, nil for chunks
// created in memory.
func (c *Chunk) Payload() []byte {
	return c.payload
}

// Document decodes the chunk and caches the result for later calls. opts apply to the
// first decode only.
//
// A decode with a codec.WithFilter option is returned without being cached, so a
// partial document is never written back in place of the full chunk.
func (c *Chunk) Document(opts ...codec.Option) (*codec.Document, error) {
	if c.doc != nil {
		return c.doc, nil
	}

	ct, ok := c.Scheme.Compression()
	if !ok {
		return nil, fmt.Errorf("%w: chunk %s scheme %d", errs.ErrUnsupportedCompression, c.Pos, uint8(c.Scheme))
	}

	raw, err := compress.Decompress(c.payload, ct)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", c.Pos, err)
	}

	doc, err := codec.DecodeRaw(raw, opts...)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", c.Pos, err)
	}
	doc.Compression = ct

	selective, err := codec.IsSelective(opts...)
	if err != nil {
		return nil, err
	}
	if !selective {
		c.doc = doc
	}

	return doc, nil
}

// SetDocument replaces the chunk contents. The chunk keeps its scheme.
func (c *Chunk) SetDocument(doc *codec.Document) {
	c.doc = doc
}

// encode returns the compressed payload to write: the cached document re-encoded
// when one is loaded, the original payload otherwise.
func (c *Chunk) encode(opts []codec.Option) ([]byte, error) {
	if c.doc == nil {
		if c.payload == nil {
			return nil, fmt.Errorf("%w: chunk %s has no document", errs.ErrMalformedInput, c.Pos)
		}

		return c.payload, nil
	}

	ct, ok := c.Scheme.Compression()
	if !ok {
		return nil, fmt.Errorf("%w: chunk %s scheme %d", errs.ErrUnsupportedCompression, c.Pos, uint8(c.Scheme))
	}

	raw, err := codec.EncodeRaw(c.doc, opts...)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", c.Pos, err)
	}

	return compress.Compress(raw, ct)
}
