package codec

import (
	"fmt"
	"math"

	"github.com/arloliu/nbt/compress"
	"github.com/arloliu/nbt/endian"
	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/internal/mutf8"
	"github.com/arloliu/nbt/internal/pool"
	"github.com/arloliu/nbt/tag"
)

// Encode serializes doc and wraps it in doc.Compression.
//
// Encoding never mutates doc, and encoding the same document twice yields identical
// bytes.
//
// Returns:
//   - []byte: The encoded document
//   - error: errs.ErrListTypeMismatch for a list holding mixed kinds,
//     errs.ErrValueTooLarge for strings over 65535 encoded bytes,
//     errs.ErrMalformedInput for nil tags or nesting deeper than the depth limit,
//     errs.ErrUnsupportedCompression for an unknown compression type
func Encode(doc *Document, opts ...Option) ([]byte, error) {
	raw, err := EncodeRaw(doc, opts...)
	if err != nil {
		return nil, err
	}

	return compress.Compress(raw, doc.Compression)
}

// EncodeRaw serializes doc without a compression envelope, ignoring doc.Compression.
func EncodeRaw(doc *Document, opts ...Option) ([]byte, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("%w: document has no root compound", errs.ErrMalformedInput)
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	bb := pool.GetDocumentBuffer()
	defer pool.PutDocumentBuffer(bb)

	e := encoder{buf: bb.B, engine: cfg.engine, maxDepth: cfg.maxDepth}
	e.buf = append(e.buf, byte(tag.TypeCompound))
	if err := e.str(doc.Name); err != nil {
		return nil, err
	}
	if err := e.compound(doc.Root, 1); err != nil {
		return nil, err
	}
	bb.B = e.buf

	return bb.Detach(), nil
}

type encoder struct {
	buf      []byte
	engine   endian.EndianEngine
	maxDepth int
}

func (e *encoder) str(s string) error {
	n := mutf8.EncodedLen(s)
	if n > math.MaxUint16 {
		return fmt.Errorf("%w: string of %d encoded bytes exceeds 65535", errs.ErrValueTooLarge, n)
	}

	e.buf = e.engine.AppendUint16(e.buf, uint16(n))
	e.buf = mutf8.Append(e.buf, s)

	return nil
}

func (e *encoder) arrayLen(n int) error {
	if n > math.MaxInt32 {
		return fmt.Errorf("%w: array of %d elements", errs.ErrValueTooLarge, n)
	}
	e.buf = e.engine.AppendUint32(e.buf, uint32(n))

	return nil
}

func (e *encoder) checkDepth(depth int) error {
	if depth > e.maxDepth {
		return fmt.Errorf("%w: nesting deeper than %d", errs.ErrMalformedInput, e.maxDepth)
	}

	return nil
}

func (e *encoder) value(v tag.Tag, depth int) error {
	switch v := v.(type) {
	case tag.Byte:
		e.buf = append(e.buf, byte(v))
	case tag.Short:
		e.buf = e.engine.AppendUint16(e.buf, uint16(v))
	case tag.Int:
		e.buf = e.engine.AppendUint32(e.buf, uint32(v))
	case tag.Long:
		e.buf = e.engine.AppendUint64(e.buf, uint64(v))
	case tag.Float:
		e.buf = e.engine.AppendUint32(e.buf, math.Float32bits(float32(v)))
	case tag.Double:
		e.buf = e.engine.AppendUint64(e.buf, math.Float64bits(float64(v)))
	case tag.String:
		return e.str(string(v))
	case tag.ByteArray:
		if err := e.arrayLen(len(v)); err != nil {
			return err
		}
		for _, b := range v {
			e.buf = append(e.buf, byte(b))
		}
	case tag.IntArray:
		if err := e.arrayLen(len(v)); err != nil {
			return err
		}
		for _, x := range v {
			e.buf = e.engine.AppendUint32(e.buf, uint32(x))
		}
	case tag.LongArray:
		if err := e.arrayLen(len(v)); err != nil {
			return err
		}
		for _, x := range v {
			e.buf = e.engine.AppendUint64(e.buf, uint64(x))
		}
	case *tag.List:
		if v == nil {
			return fmt.Errorf("%w: nil list", errs.ErrMalformedInput)
		}

		return e.list(v, depth)
	case *tag.Compound:
		if v == nil {
			return fmt.Errorf("%w: nil compound", errs.ErrMalformedInput)
		}

		return e.compound(v, depth)
	case nil:
		return fmt.Errorf("%w: nil tag", errs.ErrMalformedInput)
	default:
		return fmt.Errorf("%w: %s cannot be written as a value", errs.ErrMalformedInput, v.Type())
	}

	return nil
}

func (e *encoder) list(l *tag.List, depth int) error {
	if err := e.checkDepth(depth); err != nil {
		return err
	}

	elem := l.ElemType()
	e.buf = append(e.buf, byte(elem))
	if err := e.arrayLen(l.Len()); err != nil {
		return err
	}

	for i, item := range l.All() {
		if item == nil {
			return fmt.Errorf("%w: nil list element %d", errs.ErrMalformedInput, i)
		}
		if item.Type() != elem {
			return fmt.Errorf("%w: element %d is %s in a list of %s", errs.ErrListTypeMismatch, i, item.Type(), elem)
		}
		if err := e.value(item, depth+1); err != nil {
			return err
		}
	}

	return nil
}

func (e *encoder) compound(c *tag.Compound, depth int) error {
	if err := e.checkDepth(depth); err != nil {
		return err
	}

	for name, v := range c.All() {
		if v == nil || v.Type() == tag.TypeEnd {
			return fmt.Errorf("%w: entry %q has no value", errs.ErrMalformedInput, name)
		}

		e.buf = append(e.buf, byte(v.Type()))
		if err := e.str(name); err != nil {
			return err
		}
		if err := e.value(v, depth+1); err != nil {
			return err
		}
	}
	e.buf = append(e.buf, byte(tag.TypeEnd))

	return nil
}
