package codec

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/tag"
	"github.com/arloliu/nbt/tagpath"
)

// helloWorld is the smallest useful document: {foo: "Hello!"} with an empty root name.
var helloWorld = []byte{10, 0, 0, 8, 0, 3, 'f', 'o', 'o', 0, 6, 'H', 'e', 'l', 'l', 'o', '!', 0}

var tagComparer = cmp.Comparer(tag.Equal)

func requireSameDocument(t *testing.T, want, got *Document) {
	t.Helper()
	if diff := cmp.Diff(want, got, tagComparer); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s\nwant: %v\ngot:  %v", diff, want.Root, got.Root)
	}
}

// sampleDocument returns a document exercising every tag kind.
func sampleDocument() *Document {
	display := tag.NewCompound()
	display.Put("Name", tag.String("Rock"))
	itemTag := tag.NewCompound()
	itemTag.Put("display", display)

	stone := tag.NewCompound()
	stone.Put("id", tag.String("minecraft:stone"))
	stone.Put("Count", tag.Byte(64))
	stone.Put("tag", itemTag)

	dirt := tag.NewCompound()
	dirt.Put("id", tag.String("minecraft:dirt"))
	dirt.Put("Count", tag.Byte(3))

	player := tag.NewCompound()
	player.Put("Name", tag.String("Steve"))
	player.Put("Health", tag.Float(19.5))
	player.Put("XpSeed", tag.Int(-123456))
	player.Put("Uptime", tag.Long(math.MaxInt64))
	player.Put("Fire", tag.Short(-20))
	player.Put("Pos", tag.MustList(tag.Double(1.5), tag.Double(-64), tag.Double(math.NaN())))
	player.Put("inventory", tag.MustList(stone, dirt))
	player.Put("grid", tag.MustList(
		tag.MustList(tag.Int(1), tag.Int(2)),
		tag.MustList(tag.Int(3), tag.Int(4), tag.Int(5)),
	))
	player.Put("Empty", tag.MustList())
	player.Put("Motto", tag.String("nul\x00 and 😀 and é"))

	data := tag.NewCompound()
	data.Put("Player", player)
	data.Put("Bytes", tag.ByteArray{-128, 0, 127})
	data.Put("Ints", tag.IntArray{math.MinInt32, 0, math.MaxInt32})
	data.Put("Longs", tag.LongArray{math.MinInt64, 42})
	data.Put("Raining", tag.Bool(true))

	doc := NewDocument("level", format.CompressionNone)
	doc.Root.Put("Data", data)

	return doc
}

func TestDecode_HelloWorld(t *testing.T) {
	doc, err := Decode(helloWorld)
	require.NoError(t, err)
	require.Empty(t, doc.Name)
	require.Equal(t, format.CompressionNone, doc.Compression)
	require.Equal(t, 1, doc.Root.Len())
	require.Equal(t, "Hello!", doc.Root.GetString("foo"))

	v, err := tagpath.Get(doc.Root, "foo")
	require.NoError(t, err)
	require.Equal(t, tag.String("Hello!"), v)

	out, err := EncodeRaw(doc)
	require.NoError(t, err)
	require.Equal(t, helloWorld, out)
}

func TestDecodeSelective_HelloWorld(t *testing.T) {
	doc, err := DecodeSelective(helloWorld, []string{"foo"})
	require.NoError(t, err)

	v, err := tagpath.Get(doc.Root, "foo")
	require.NoError(t, err)
	require.Equal(t, tag.String("Hello!"), v)
}

func TestRoundTrip_IntList(t *testing.T) {
	doc := NewDocument("", format.CompressionNone)
	doc.Root.Put("nums", tag.MustList(tag.Int(1), tag.Int(2), tag.Int(3)))

	data, err := Encode(doc)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	l, ok := got.Root.GetList("nums")
	require.True(t, ok)
	require.Equal(t, tag.TypeInt, l.ElemType())

	var items []tag.Tag
	for _, v := range l.All() {
		items = append(items, v)
	}
	require.Equal(t, []tag.Tag{tag.Int(1), tag.Int(2), tag.Int(3)}, items)
}

func TestRoundTrip_AllCompressions(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionGzip,
		format.CompressionZlib,
		format.CompressionZstd,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			doc := sampleDocument()
			doc.Compression = ct

			data, err := Encode(doc)
			require.NoError(t, err)

			got, err := Decode(data)
			require.NoError(t, err)
			require.Equal(t, ct, got.Compression)
			requireSameDocument(t, doc, got)
		})
	}
}

func TestRoundTrip_LittleEndian(t *testing.T) {
	doc := sampleDocument()

	data, err := Encode(doc, WithLittleEndian())
	require.NoError(t, err)

	got, err := Decode(data, WithLittleEndian())
	require.NoError(t, err)
	requireSameDocument(t, doc, got)

	big, err := Encode(doc, WithBigEndian())
	require.NoError(t, err)
	require.NotEqual(t, big, data)
}

func TestDecode_LittleEndianLayout(t *testing.T) {
	raw := []byte{10, 0, 0, 3, 1, 0, 'x', 1, 0, 0, 0, 0}

	doc, err := DecodeRaw(raw, WithLittleEndian())
	require.NoError(t, err)
	v, ok := doc.Root.Get("x")
	require.True(t, ok)
	require.Equal(t, tag.Int(1), v)

	out, err := EncodeRaw(doc, WithLittleEndian())
	require.NoError(t, err)
	require.Equal(t, raw, out)

	// The same bytes read big-endian claim a 256-byte key.
	_, err = DecodeRaw(raw)
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestEncode_Deterministic(t *testing.T) {
	doc := sampleDocument()
	snapshot := tag.Clone(doc.Root)

	first, err := EncodeRaw(doc)
	require.NoError(t, err)
	second, err := EncodeRaw(doc)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.True(t, tag.Equal(snapshot, doc.Root), "encoding must not mutate the document")
}

func TestEncode_ModifiedUTF8(t *testing.T) {
	doc := NewDocument("", format.CompressionNone)
	doc.Root.Put("s", tag.String("\x00😀"))

	raw, err := EncodeRaw(doc)
	require.NoError(t, err)

	payload := []byte{0, 8, 0xC0, 0x80, 0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}
	require.True(t, bytes.Contains(raw, payload), "got % x", raw)
}

func TestEncode_Errors(t *testing.T) {
	t.Run("nil_document", func(t *testing.T) {
		_, err := Encode(nil)
		require.ErrorIs(t, err, errs.ErrMalformedInput)

		_, err = Encode(&Document{})
		require.ErrorIs(t, err, errs.ErrMalformedInput)
	})

	t.Run("mixed_list", func(t *testing.T) {
		l := tag.NewListCap(2)
		l.AppendDecoded(tag.TypeInt, tag.Int(1))
		l.AppendDecoded(tag.TypeInt, tag.String("two"))

		doc := NewDocument("", format.CompressionNone)
		doc.Root.Put("mixed", l)

		_, err := Encode(doc)
		require.ErrorIs(t, err, errs.ErrListTypeMismatch)
	})

	t.Run("string_too_long", func(t *testing.T) {
		doc := NewDocument("", format.CompressionNone)
		doc.Root.Put("big", tag.String(strings.Repeat("a", math.MaxUint16+1)))

		_, err := Encode(doc)
		require.ErrorIs(t, err, errs.ErrValueTooLarge)
	})

	t.Run("string_too_long_after_encoding", func(t *testing.T) {
		doc := NewDocument("", format.CompressionNone)
		doc.Root.Put("big", tag.String(strings.Repeat("é", math.MaxUint16/2+1)))

		_, err := Encode(doc)
		require.ErrorIs(t, err, errs.ErrValueTooLarge)
	})

	t.Run("cyclic", func(t *testing.T) {
		doc := NewDocument("", format.CompressionNone)
		doc.Root.Put("self", doc.Root)

		_, err := Encode(doc)
		require.ErrorIs(t, err, errs.ErrMalformedInput)
	})

	t.Run("unsupported_compression", func(t *testing.T) {
		doc := NewDocument("", format.CompressionType(77))

		_, err := Encode(doc)
		require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
	})
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"empty", nil},
		{"root_not_compound", []byte{8, 0, 0, 0, 0}},
		{"truncated_name", []byte{10, 0, 5, 'a'}},
		{"missing_end", []byte{10, 0, 0}},
		{"truncated_value", []byte{10, 0, 0, 3, 0, 1, 'a', 0, 0}},
		{"unknown_type", []byte{10, 0, 0, 99, 0, 1, 'a', 0}},
		{"negative_array_length", []byte{10, 0, 0, 7, 0, 1, 'a', 0xFF, 0xFF, 0xFF, 0xFF, 0}},
		{"array_longer_than_input", []byte{10, 0, 0, 11, 0, 1, 'a', 0, 0, 0, 10, 0}},
		{"list_of_end_not_empty", []byte{10, 0, 0, 9, 0, 1, 'a', 0, 0, 0, 0, 1, 0}},
		{"list_count_exceeds_input", []byte{10, 0, 0, 9, 0, 1, 'a', 3, 0x7F, 0xFF, 0xFF, 0xFF, 0}},
		{"list_unknown_element", []byte{10, 0, 0, 9, 0, 1, 'a', 13, 0, 0, 0, 0, 0}},
		{"invalid_string", []byte{10, 0, 0, 8, 0, 1, 'a', 0, 2, 0xC3, 0x41, 0}},
		{"invalid_key", []byte{10, 0, 0, 1, 0, 1, 0xFF, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeRaw(tt.raw)
			require.ErrorIs(t, err, errs.ErrMalformedInput)
			require.Nil(t, doc)

			_, err = Decode(tt.raw)
			require.Error(t, err)
		})
	}
}

func TestDecode_CorruptEnvelope(t *testing.T) {
	data, err := Encode(&Document{Root: sampleDocument().Root, Compression: format.CompressionGzip})
	require.NoError(t, err)

	_, err = Decode(data[:len(data)/2])
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestDecode_MaxDepth(t *testing.T) {
	nested := []byte{10, 0, 0, 10, 0, 1, 'a', 10, 0, 1, 'b', 0, 0, 0}

	_, err := DecodeRaw(nested)
	require.NoError(t, err)

	_, err = DecodeRaw(nested, WithMaxDepth(2))
	require.ErrorIs(t, err, errs.ErrMalformedInput)

	_, err = DecodeRaw(nested, WithMaxDepth(0))
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}

func TestDecode_DeepListsRejected(t *testing.T) {
	raw := []byte{10, 0, 0, 9, 0, 1, 'a'}
	for range DefaultMaxDepth + 10 {
		raw = append(raw, 9, 0, 0, 0, 1)
	}
	raw = append(raw, 0, 0, 0, 0, 0, 0)

	_, err := DecodeRaw(raw)
	require.ErrorIs(t, err, errs.ErrMalformedInput)

	f, err := NewFilter("b")
	require.NoError(t, err)
	_, err = DecodeRaw(raw, WithFilter(f))
	require.ErrorIs(t, err, errs.ErrMalformedInput, "skipping must enforce the depth limit too")
}

func TestDecodeSelective_Equivalence(t *testing.T) {
	data, err := Encode(sampleDocument())
	require.NoError(t, err)

	full, err := Decode(data)
	require.NoError(t, err)

	paths := []string{
		"Data.Player.Name",
		"Data.Player.Health",
		"Data.Player.Pos[2]",
		"Data.Player.inventory[0].id",
		"Data.Player.inventory[0].tag.display.Name",
		"Data.Player.inventory[1].tag.display.Name",
		"Data.Player.inventory[7]",
		"Data.Player.Name.first",
		"Data.Player.grid[1][2]",
		"Data.Player.grid[0]",
		"Data.Player.grid[0][5]",
		"Data.Player.Empty[0]",
		"Data.Ints",
		"Data.Ints[0]",
		"Data.Missing",
	}

	check := func(t *testing.T, sel *Document, path string) {
		t.Helper()
		want, wantErr := tagpath.Get(full.Root, path)
		got, gotErr := tagpath.Get(sel.Root, path)

		if wantErr == nil {
			require.NoError(t, gotErr, path)
			require.True(t, tag.Equal(want, got), "%s: want %v got %v", path, want, got)

			return
		}

		require.Error(t, gotErr, path)
		for _, kind := range []error{errs.ErrIndexOutOfRange, errs.ErrTypeMismatch, errs.ErrPathNotFound} {
			require.Equal(t, errors.Is(wantErr, kind), errors.Is(gotErr, kind), "%s: %v vs %v", path, wantErr, gotErr)
		}
	}

	t.Run("each", func(t *testing.T) {
		for _, path := range paths {
			sel, err := DecodeSelective(data, []string{path})
			require.NoError(t, err)
			check(t, sel, path)
		}
	})

	t.Run("all", func(t *testing.T) {
		sel, err := DecodeSelective(data, paths)
		require.NoError(t, err)
		for _, path := range paths {
			check(t, sel, path)
		}
	})
}

func TestDecodeSelective_SkipsUnselected(t *testing.T) {
	data, err := Encode(sampleDocument())
	require.NoError(t, err)

	doc, err := DecodeSelective(data, []string{"Data.Player.Name"})
	require.NoError(t, err)
	require.Equal(t, "level", doc.Name)

	require.Equal(t, []string{"Data"}, doc.Root.Keys())
	dataTag, _ := doc.Root.GetCompound("Data")
	require.Equal(t, []string{"Player"}, dataTag.Keys())
	player, _ := dataTag.GetCompound("Player")
	require.Equal(t, []string{"Name"}, player.Keys())
}

func TestDecodeSelective_ListPlaceholders(t *testing.T) {
	data, err := Encode(sampleDocument())
	require.NoError(t, err)

	doc, err := DecodeSelective(data, []string{"Data.Player.inventory[1].id", "Data.Player.grid[1][0]"})
	require.NoError(t, err)

	inv, err := tagpath.Get(doc.Root, "Data.Player.inventory")
	require.NoError(t, err)
	l := inv.(*tag.List)
	require.Equal(t, 2, l.Len())

	first, _ := l.At(0)
	require.Equal(t, 0, first.(*tag.Compound).Len())
	second, _ := l.At(1)
	require.Equal(t, []string{"id"}, second.(*tag.Compound).Keys())

	grid, err := tagpath.Get(doc.Root, "Data.Player.grid")
	require.NoError(t, err)
	rows := grid.(*tag.List)
	require.Equal(t, 2, rows.Len())
	row0, _ := rows.At(0)
	require.Equal(t, 0, row0.(*tag.List).Len())

	n, ok := tagpath.GetInt(doc.Root, "Data.Player.grid[1][2]")
	require.True(t, ok, "scalar list elements are kept")
	require.Equal(t, int64(5), n)
}

func TestDecodeSelective_TerminalSelectsSubtree(t *testing.T) {
	data, err := Encode(sampleDocument())
	require.NoError(t, err)

	full, err := Decode(data)
	require.NoError(t, err)

	doc, err := DecodeSelective(data, []string{"Data.Player", "Data.Player.Name"})
	require.NoError(t, err)

	want, err := tagpath.Get(full.Root, "Data.Player")
	require.NoError(t, err)
	got, err := tagpath.Get(doc.Root, "Data.Player")
	require.NoError(t, err)
	require.True(t, tag.Equal(want, got))
}

func TestDecodeSelective_SkippedStringsNotValidated(t *testing.T) {
	data := []byte{
		10, 0, 0,
		1, 0, 1, 0xFF, 5, // Byte with an invalid name
		8, 0, 1, 's', 0, 1, 0xFF, // String with an invalid payload
		1, 0, 1, 'a', 7,
		0,
	}

	_, err := Decode(data)
	require.ErrorIs(t, err, errs.ErrMalformedInput)

	doc, err := DecodeSelective(data, []string{"a"})
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, doc.Root.Keys())
	v, ok := doc.Root.Get("a")
	require.True(t, ok)
	require.Equal(t, tag.Byte(7), v)

	_, err = DecodeSelective(data, []string{"s"})
	require.ErrorIs(t, err, errs.ErrMalformedInput, "selected strings are still validated")
}

func TestDecodeSelective_EmptyFilter(t *testing.T) {
	doc, err := DecodeSelective(helloWorld, nil)
	require.NoError(t, err)
	require.Equal(t, 0, doc.Root.Len())
}

func TestNewFilter(t *testing.T) {
	f, err := NewFilter("a.b", `"x.y"[0]`)
	require.NoError(t, err)
	require.Equal(t, []string{"a.b", `"x.y"[0]`}, f.Paths())

	_, err = NewFilter("a..b")
	require.ErrorIs(t, err, errs.ErrInvalidPath)

	_, err = DecodeSelective(helloWorld, []string{"[0]"})
	require.ErrorIs(t, err, errs.ErrInvalidPath)
}

func TestFilter_NameLookup(t *testing.T) {
	f, err := NewFilter("alpha", "beta.gamma")
	require.NoError(t, err)

	require.NotNil(t, f.root.lookupName([]byte("alpha")))
	require.True(t, f.root.lookupName([]byte("alpha")).terminal)
	beta := f.root.lookupName([]byte("beta"))
	require.NotNil(t, beta)
	require.False(t, beta.terminal)
	require.NotNil(t, beta.lookupName([]byte("gamma")))
	require.Nil(t, f.root.lookupName([]byte("gamma")))
	require.Nil(t, f.root.lookupIndex(0))
}
