package codec

import (
	"fmt"
	"math"

	"github.com/arloliu/nbt/compress"
	"github.com/arloliu/nbt/endian"
	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/internal/mutf8"
	"github.com/arloliu/nbt/tag"
)

// Decode parses an NBT document, detecting and removing its compression envelope first.
//
// Parameters:
//   - data: Gzip, zlib, zstd, LZ4 or uncompressed NBT bytes
//   - opts: Byte order, depth limit and filter options
//
// Returns:
//   - *Document: The decoded document with Compression set to the detected envelope
//   - error: errs.ErrMalformedInput for truncated or corrupt input; no partial
//     document is returned
func Decode(data []byte, opts ...Option) (*Document, error) {
	ct := compress.Detect(data)

	raw, err := compress.Decompress(data, ct)
	if err != nil {
		return nil, err
	}

	doc, err := DecodeRaw(raw, opts...)
	if err != nil {
		return nil, err
	}
	doc.Compression = ct

	return doc, nil
}

// DecodeSelective decodes only the values addressed by paths plus the containers on
// the way to them. Every other subtree is skipped without being materialized.
//
// For every path p in paths, resolving p against the result yields the same value,
// or the same kind of error, as resolving it against a full decode.
//
// Skipped entries are only checked for structure. Their names and String payloads
// are not validated as modified UTF-8, so input that Decode rejects with
// errs.ErrMalformedInput for a bad string encoding may still decode selectively when
// the bad string lies outside the selection.
func DecodeSelective(data []byte, paths []string, opts ...Option) (*Document, error) {
	f, err := NewFilter(paths...)
	if err != nil {
		return nil, err
	}

	return Decode(data, append(opts[:len(opts):len(opts)], WithFilter(f))...)
}

// DecodeRaw parses uncompressed NBT bytes. Trailing bytes after the root compound are
// ignored.
func DecodeRaw(raw []byte, opts ...Option) (*Document, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	d := decoder{data: raw, engine: cfg.engine, maxDepth: cfg.maxDepth}

	id, err := d.u8()
	if err != nil {
		return nil, err
	}
	if tag.Type(id) != tag.TypeCompound {
		return nil, fmt.Errorf("%w: root tag is %s, want Compound", errs.ErrMalformedInput, tag.Type(id))
	}

	name, err := d.str()
	if err != nil {
		return nil, err
	}

	var node *filterNode
	if cfg.filter != nil {
		node = cfg.filter.root
	}

	root, err := d.compound(1, node)
	if err != nil {
		return nil, err
	}

	return &Document{Name: name, Root: root}, nil
}

// decoder reads one document. Every read checks the remaining length first, so a
// corrupt length can never index past the buffer or drive a huge allocation.
type decoder struct {
	data     []byte
	off      int
	engine   endian.EndianEngine
	maxDepth int
}

func (d *decoder) remaining() int {
	return len(d.data) - d.off
}

func (d *decoder) need(n int) error {
	if n < 0 || n > d.remaining() {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", errs.ErrMalformedInput, n, d.off, d.remaining())
	}

	return nil
}

func (d *decoder) take(n int) ([]byte, error) {
	if err := d.need(n); err != nil {
		return nil, err
	}
	b := d.data[d.off : d.off+n]
	d.off += n

	return b, nil
}

func (d *decoder) skip(n int) error {
	if err := d.need(n); err != nil {
		return err
	}
	d.off += n

	return nil
}

func (d *decoder) u8() (byte, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	v := d.data[d.off]
	d.off++

	return v, nil
}

func (d *decoder) u16() (uint16, error) {
	b, err := d.take(2)
	if err != nil {
		return 0, err
	}

	return d.engine.Uint16(b), nil
}

func (d *decoder) u32() (uint32, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}

	return d.engine.Uint32(b), nil
}

func (d *decoder) u64() (uint64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}

	return d.engine.Uint64(b), nil
}

// strBytes reads a length-prefixed string without decoding it.
func (d *decoder) strBytes() ([]byte, error) {
	n, err := d.u16()
	if err != nil {
		return nil, err
	}

	return d.take(int(n))
}

func (d *decoder) str() (string, error) {
	b, err := d.strBytes()
	if err != nil {
		return "", err
	}

	s, err := mutf8.Decode(b)
	if err != nil {
		return "", fmt.Errorf("%w: string at offset %d: %w", errs.ErrMalformedInput, d.off-len(b), err)
	}

	return s, nil
}

// length reads an int32 element count and checks that count elements of at least
// minSize bytes each fit in the remaining input.
func (d *decoder) length(minSize int) (int, error) {
	v, err := d.u32()
	if err != nil {
		return 0, err
	}

	n := int(int32(v))
	if n < 0 {
		return 0, fmt.Errorf("%w: negative length %d at offset %d", errs.ErrMalformedInput, n, d.off-4)
	}
	if minSize > 0 && n > d.remaining()/minSize {
		return 0, fmt.Errorf("%w: length %d exceeds remaining %d bytes at offset %d",
			errs.ErrMalformedInput, n, d.remaining(), d.off-4)
	}

	return n, nil
}

func (d *decoder) typeID() (tag.Type, error) {
	b, err := d.u8()
	if err != nil {
		return 0, err
	}

	t := tag.Type(b)
	if !t.Valid() {
		return 0, fmt.Errorf("%w: unknown tag type %d at offset %d", errs.ErrMalformedInput, b, d.off-1)
	}

	return t, nil
}

func (d *decoder) checkDepth(depth int) error {
	if depth > d.maxDepth {
		return fmt.Errorf("%w: nesting deeper than %d at offset %d", errs.ErrMalformedInput, d.maxDepth, d.off)
	}

	return nil
}

// minPayload is the smallest encoded payload of each kind, used to bound list counts.
func minPayload(t tag.Type) int {
	switch t {
	case tag.TypeByte, tag.TypeCompound:
		return 1
	case tag.TypeShort, tag.TypeString:
		return 2
	case tag.TypeInt, tag.TypeFloat, tag.TypeByteArray, tag.TypeIntArray, tag.TypeLongArray:
		return 4
	case tag.TypeLong, tag.TypeDouble:
		return 8
	case tag.TypeList:
		return 5
	default:
		return 0
	}
}

// value decodes one payload of kind t. A nil node decodes the whole subtree; otherwise
// node steers a filtered decode of compounds and lists.
func (d *decoder) value(t tag.Type, depth int, node *filterNode) (tag.Tag, error) {
	if node != nil && node.terminal {
		node = nil
	}

	switch t {
	case tag.TypeByte:
		b, err := d.u8()
		return tag.Byte(int8(b)), err
	case tag.TypeShort:
		v, err := d.u16()
		return tag.Short(int16(v)), err
	case tag.TypeInt:
		v, err := d.u32()
		return tag.Int(int32(v)), err
	case tag.TypeLong:
		v, err := d.u64()
		return tag.Long(int64(v)), err
	case tag.TypeFloat:
		v, err := d.u32()
		return tag.Float(math.Float32frombits(v)), err
	case tag.TypeDouble:
		v, err := d.u64()
		return tag.Double(math.Float64frombits(v)), err
	case tag.TypeString:
		s, err := d.str()
		return tag.String(s), err
	case tag.TypeByteArray:
		return d.byteArray()
	case tag.TypeIntArray:
		return d.intArray()
	case tag.TypeLongArray:
		return d.longArray()
	case tag.TypeList:
		return d.list(depth, node)
	case tag.TypeCompound:
		return d.compound(depth, node)
	default:
		return nil, fmt.Errorf("%w: %s has no payload at offset %d", errs.ErrMalformedInput, t, d.off)
	}
}

func (d *decoder) byteArray() (tag.Tag, error) {
	n, err := d.length(1)
	if err != nil {
		return nil, err
	}
	b, err := d.take(n)
	if err != nil {
		return nil, err
	}

	out := make(tag.ByteArray, n)
	for i, c := range b {
		out[i] = int8(c)
	}

	return out, nil
}

func (d *decoder) intArray() (tag.Tag, error) {
	n, err := d.length(4)
	if err != nil {
		return nil, err
	}
	b, err := d.take(n * 4)
	if err != nil {
		return nil, err
	}

	out := make(tag.IntArray, n)
	for i := range out {
		out[i] = int32(d.engine.Uint32(b[i*4:]))
	}

	return out, nil
}

func (d *decoder) longArray() (tag.Tag, error) {
	n, err := d.length(8)
	if err != nil {
		return nil, err
	}
	b, err := d.take(n * 8)
	if err != nil {
		return nil, err
	}

	out := make(tag.LongArray, n)
	for i := range out {
		out[i] = int64(d.engine.Uint64(b[i*8:]))
	}

	return out, nil
}

func (d *decoder) listHeader() (tag.Type, int, error) {
	elem, err := d.typeID()
	if err != nil {
		return 0, 0, err
	}

	n, err := d.length(minPayload(elem))
	if err != nil {
		return 0, 0, err
	}
	if elem == tag.TypeEnd && n > 0 {
		return 0, 0, fmt.Errorf("%w: list of End with %d elements at offset %d", errs.ErrMalformedInput, n, d.off-5)
	}

	return elem, n, nil
}

// list decodes a list. With a node, elements the node does not select are kept as
// placeholders so list lengths and indexes match the full document: compound and
// list elements become empty containers, every other element is decoded as is.
func (d *decoder) list(depth int, node *filterNode) (*tag.List, error) {
	if err := d.checkDepth(depth); err != nil {
		return nil, err
	}

	elem, n, err := d.listHeader()
	if err != nil {
		return nil, err
	}

	l := tag.NewListCap(n)
	for i := range n {
		var sel *filterNode
		selected := node == nil
		if node != nil {
			sel = node.lookupIndex(i)
			selected = sel != nil
		}

		var v tag.Tag
		switch {
		case selected:
			v, err = d.value(elem, depth+1, sel)
		case elem == tag.TypeCompound:
			err = d.skipValue(elem, depth+1)
			v = tag.NewCompound()
		case elem == tag.TypeList:
			err = d.skipValue(elem, depth+1)
			v = tag.NewListCap(0)
		default:
			v, err = d.value(elem, depth+1, nil)
		}
		if err != nil {
			return nil, err
		}
		l.AppendDecoded(elem, v)
	}

	return l, nil
}

// compound decodes a compound body up to its End tag. With a node, entries the node
// does not select are skipped.
func (d *decoder) compound(depth int, node *filterNode) (*tag.Compound, error) {
	if err := d.checkDepth(depth); err != nil {
		return nil, err
	}

	c := tag.NewCompound()
	for {
		t, err := d.typeID()
		if err != nil {
			return nil, err
		}
		if t == tag.TypeEnd {
			return c, nil
		}

		key, err := d.strBytes()
		if err != nil {
			return nil, err
		}

		var sel *filterNode
		if node != nil {
			sel = node.lookupName(key)
			if sel == nil {
				if err := d.skipValue(t, depth+1); err != nil {
					return nil, err
				}

				continue
			}
		}

		name, err := mutf8.Decode(key)
		if err != nil {
			return nil, fmt.Errorf("%w: key at offset %d: %w", errs.ErrMalformedInput, d.off-len(key), err)
		}

		v, err := d.value(t, depth+1, sel)
		if err != nil {
			return nil, err
		}
		c.Put(name, v)
	}
}

// skipValue advances past one payload of kind t without materializing it.
func (d *decoder) skipValue(t tag.Type, depth int) error {
	switch t {
	case tag.TypeByte:
		return d.skip(1)
	case tag.TypeShort:
		return d.skip(2)
	case tag.TypeInt, tag.TypeFloat:
		return d.skip(4)
	case tag.TypeLong, tag.TypeDouble:
		return d.skip(8)
	case tag.TypeString:
		_, err := d.strBytes()
		return err
	case tag.TypeByteArray:
		n, err := d.length(1)
		if err != nil {
			return err
		}

		return d.skip(n)
	case tag.TypeIntArray:
		n, err := d.length(4)
		if err != nil {
			return err
		}

		return d.skip(n * 4)
	case tag.TypeLongArray:
		n, err := d.length(8)
		if err != nil {
			return err
		}

		return d.skip(n * 8)
	case tag.TypeList:
		return d.skipList(depth)
	case tag.TypeCompound:
		return d.skipCompound(depth)
	default:
		return fmt.Errorf("%w: %s has no payload at offset %d", errs.ErrMalformedInput, t, d.off)
	}
}

func (d *decoder) skipList(depth int) error {
	if err := d.checkDepth(depth); err != nil {
		return err
	}

	elem, n, err := d.listHeader()
	if err != nil {
		return err
	}

	switch elem {
	case tag.TypeEnd:
		return nil
	case tag.TypeByte, tag.TypeShort, tag.TypeInt, tag.TypeLong, tag.TypeFloat, tag.TypeDouble:
		return d.skip(n * minPayload(elem))
	}

	for range n {
		if err := d.skipValue(elem, depth+1); err != nil {
			return err
		}
	}

	return nil
}

func (d *decoder) skipCompound(depth int) error {
	if err := d.checkDepth(depth); err != nil {
		return err
	}

	for {
		t, err := d.typeID()
		if err != nil {
			return err
		}
		if t == tag.TypeEnd {
			return nil
		}
		if _, err := d.strBytes(); err != nil {
			return err
		}
		if err := d.skipValue(t, depth+1); err != nil {
			return err
		}
	}
}
