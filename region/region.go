package region

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"time"

	"github.com/arloliu/nbt/codec"
	"github.com/arloliu/nbt/endian"
	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/internal/pool"
)

// chunkHeaderSize is the length field plus the scheme byte in front of each payload.
const chunkHeaderSize = 5

// Region is a 32×32 grid of chunk slots.
//
// A Region is not safe for concurrent use, except for DecodeAll which decodes
// distinct chunks in parallel.
type Region struct {
	chunks [SlotCount]*Chunk
	count  int
	cfg    *Config
}

// New returns an empty region.
func New(opts ...Option) (*Region, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return &Region{cfg: cfg}, nil
}

// FromChunks returns a region holding chunks. A later chunk replaces an earlier one
// at the same position.
func FromChunks(chunks []*Chunk, opts ...Option) (*Region, error) {
	r, err := New(opts...)
	if err != nil {
		return nil, err
	}

	for _, c := range chunks {
		if err := r.SetChunk(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Read parses a region file. Chunk payloads are copied out of data and decoded lazily
// by Chunk.Document or DecodeAll.
//
// Empty data is an empty region. Returns errs.ErrMalformedInput for a truncated header
// or a slot whose location or length does not fit the file, and
// errs.ErrUnsupportedCompression for an unknown scheme or an externally stored chunk.
// With WithSkipCorrupt the offending slots are logged and left empty instead.
func Read(data []byte, opts ...Option) (*Region, error) {
	r, err := New(opts...)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return r, nil
	}
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: region header needs %d bytes, have %d", errs.ErrMalformedInput, HeaderSize, len(data))
	}

	engine := endian.GetBigEndianEngine()
	for i := range SlotCount {
		loc := engine.Uint32(data[i*4:])
		if loc&0xff == 0 {
			continue
		}

		pos, _ := PosFromIndex(i)
		timestamp := engine.Uint32(data[SectorSize+i*4:])

		c, err := readChunk(data, pos, loc, timestamp)
		if err != nil {
			if !r.cfg.skipCorrupt {
				return nil, err
			}
			r.cfg.logger.Warn("skipping corrupt region slot",
				slog.String("pos", pos.String()),
				slog.Any("error", err),
			)

			continue
		}

		r.chunks[i] = c
		r.count++
	}

	r.cfg.logger.Debug("region read", slog.Int("chunks", r.count), slog.Int("bytes", len(data)))

	return r, nil
}

func readChunk(data []byte, pos Pos, loc, timestamp uint32) (*Chunk, error) {
	offset := int(loc >> 8)
	sectors := int(loc & 0xff)

	if offset < HeaderSize/SectorSize {
		return nil, fmt.Errorf("%w: chunk %s sector offset %d points into the header", errs.ErrMalformedInput, pos, offset)
	}

	start := offset * SectorSize
	if start+chunkHeaderSize > len(data) {
		return nil, fmt.Errorf("%w: chunk %s starts at %d beyond the file end %d", errs.ErrMalformedInput, pos, start, len(data))
	}

	engine := endian.GetBigEndianEngine()
	length := int(engine.Uint32(data[start:]))
	if length < 1 {
		return nil, fmt.Errorf("%w: chunk %s has zero length", errs.ErrMalformedInput, pos)
	}
	if length > len(data)-start-4 {
		return nil, fmt.Errorf("%w: chunk %s length %d runs past the file end", errs.ErrMalformedInput, pos, length)
	}
	if 4+length > sectors*SectorSize {
		return nil, fmt.Errorf("%w: chunk %s length %d exceeds its %d sectors", errs.ErrMalformedInput, pos, length, sectors)
	}

	scheme := format.RegionScheme(data[start+4])
	if scheme&format.SchemeExternalFlag != 0 {
		return nil, fmt.Errorf("%w: chunk %s is stored externally", errs.ErrUnsupportedCompression, pos)
	}
	if _, ok := scheme.Compression(); !ok {
		return nil, fmt.Errorf("%w: chunk %s scheme %d", errs.ErrUnsupportedCompression, pos, uint8(scheme))
	}

	return &Chunk{
		Pos:       pos,
		Timestamp: timestamp,
		Scheme:    scheme,
		payload:   slices.Clone(data[start+chunkHeaderSize : start+4+length]),
	}, nil
}

// Chunk returns the chunk at (x, z). The second result is false for an empty slot or
// coordinates outside the region.
func (r *Region) Chunk(x, z int) (*Chunk, bool) {
	i, err := SlotIndex(x, z)
	if err != nil || r.chunks[i] == nil {
		return nil, false
	}

	return r.chunks[i], true
}

// SetChunk stores c at c.Pos, replacing any chunk already there.
func (r *Region) SetChunk(c *Chunk) error {
	if c == nil {
		return fmt.Errorf("%w: nil chunk", errs.ErrMalformedInput)
	}
	if !c.Pos.Valid() {
		return fmt.Errorf("%w: %s", errs.ErrInvalidCoordinates, c.Pos)
	}

	i := c.Pos.Index()
	if r.chunks[i] == nil {
		r.count++
	}
	r.chunks[i] = c

	return nil
}

// SetDocument stores doc at (x, z) as a new chunk stamped with the current time and
// compressed with the configured scheme.
func (r *Region) SetDocument(x, z int, doc *codec.Document) error {
	c, err := NewChunk(Pos{X: x, Z: z}, doc, r.cfg.scheme, uint32(time.Now().Unix()))
	if err != nil {
		return err
	}

	return r.SetChunk(c)
}

// Remove empties slot (x, z) and returns the chunk it held.
func (r *Region) Remove(x, z int) (*Chunk, bool) {
	c, ok := r.Chunk(x, z)
	if !ok {
		return nil, false
	}

	r.chunks[c.Pos.Index()] = nil
	r.count--

	return c, true
}

// Positions returns the occupied positions in slot order.
func (r *Region) Positions() []Pos {
	out := make([]Pos, 0, r.count)
	for _, c := range r.chunks {
		if c != nil {
			out = append(out, c.Pos)
		}
	}

	return out
}

// Len returns the number of occupied slots.
func (r *Region) Len() int {
	return r.count
}

// All yields the occupied slots in slot order.
func (r *Region) All() iter.Seq2[Pos, *Chunk] {
	return func(yield func(Pos, *Chunk) bool) {
		for _, c := range r.chunks {
			if c != nil && !yield(c.Pos, c) {
				return
			}
		}
	}
}

// Write serializes the region.
//
// Sectors are allocated in slot order right after the header, and every payload is
// padded to a sector boundary. Chunks whose document was loaded are encoded again;
// the rest keep their original payload bytes.
//
// Returns errs.ErrValueTooLarge when a chunk needs more than MaxSectorCount sectors or
// the file outgrows the 3-byte sector offset.
func (r *Region) Write() ([]byte, error) {
	bb := pool.GetRegionBuffer()
	defer pool.PutRegionBuffer(bb)

	engine := endian.GetBigEndianEngine()
	bb.Grow(HeaderSize)
	bb.B = bb.B[:HeaderSize]
	clear(bb.B)

	for i, c := range r.chunks {
		if c == nil {
			continue
		}

		payload, err := c.encode(r.cfg.codecOpts)
		if err != nil {
			return nil, err
		}

		offset := bb.Len() / SectorSize
		size := chunkHeaderSize + len(payload)
		sectors := (size + SectorSize - 1) / SectorSize
		if sectors > MaxSectorCount {
			return nil, fmt.Errorf("%w: chunk %s needs %d sectors, limit %d", errs.ErrValueTooLarge, c.Pos, sectors, MaxSectorCount)
		}
		if offset+sectors > maxSectorOffset {
			return nil, fmt.Errorf("%w: region exceeds %d sectors", errs.ErrValueTooLarge, maxSectorOffset)
		}

		header := bb.Bytes()
		engine.PutUint32(header[i*4:], uint32(offset)<<8|uint32(sectors))
		engine.PutUint32(header[SectorSize+i*4:], c.Timestamp)

		bb.Grow(sectors * SectorSize)
		bb.B = engine.AppendUint32(bb.B, uint32(len(payload)+1))
		bb.B = append(bb.B, byte(c.Scheme))
		_, _ = bb.Write(payload)
		if pad := sectors*SectorSize - size; pad > 0 {
			_, _ = bb.Write(make([]byte, pad))
		}
	}

	r.cfg.logger.Debug("region written", slog.Int("chunks", r.count), slog.Int("sectors", bb.Len()/SectorSize))

	return bb.Detach(), nil
}
