package nbt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/nbt/codec"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/region"
	"github.com/arloliu/nbt/tag"
)

// TestDecode_HelloWorld decodes the smallest useful document and reads it by path
func TestDecode_HelloWorld(t *testing.T) {
	data := []byte{10, 0, 0, 8, 0, 3, 'f', 'o', 'o', 0, 6, 'H', 'e', 'l', 'l', 'o', '!', 0}

	doc, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionNone, doc.Compression)
	require.Equal(t, 1, doc.Root.Len())

	v, ok := GetAt(doc, "foo")
	require.True(t, ok)
	require.Equal(t, tag.String("Hello!"), v)
}

// TestEncodeDecode_Compressions verifies documents round-trip through every envelope
func TestEncodeDecode_Compressions(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionGzip,
		format.CompressionZlib,
		format.CompressionZstd,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			doc := NewDocument("level", ct)
			data := tag.NewCompound()
			data.Put("LevelName", tag.String("world"))
			data.Put("Time", tag.Long(123456))
			doc.Root.Put("Data", data)

			out, err := Encode(doc)
			require.NoError(t, err)

			got, err := Decode(out)
			require.NoError(t, err)
			require.Equal(t, ct, got.Compression)
			require.Equal(t, "level", got.Name)
			require.True(t, tag.Equal(doc.Root, got.Root))
		})
	}
}

// TestSetAt verifies updates through the facade and the failure signal
func TestSetAt(t *testing.T) {
	doc := NewDocument("", format.CompressionNone)
	doc.Root.Put("Inventory", tag.MustList(tag.NewCompound()))

	require.True(t, SetAt(doc, "Inventory[0].Count", tag.Byte(64)))
	v, ok := GetAt(doc, "Inventory[0].Count")
	require.True(t, ok)
	require.Equal(t, tag.Byte(64), v)

	require.False(t, SetAt(doc, "Missing.Count", tag.Byte(1)))
	require.False(t, SetAt(doc, "Inventory[3]", tag.NewCompound()))
	require.False(t, SetAt(nil, "a", tag.Byte(1)))

	_, ok = GetAt(doc, "Inventory[1]")
	require.False(t, ok)
	_, ok = GetAt(nil, "a")
	require.False(t, ok)
}

// TestDecodeSelective verifies unselected entries are left out
func TestDecodeSelective(t *testing.T) {
	doc := NewDocument("", format.CompressionGzip)
	doc.Root.Put("keep", tag.Int(1))
	doc.Root.Put("drop", tag.IntArray{1, 2, 3})

	data, err := Encode(doc)
	require.NoError(t, err)

	got, err := DecodeSelective(data, []string{"keep"})
	require.NoError(t, err)
	require.Equal(t, []string{"keep"}, got.Root.Keys())
}

// TestRegion_Empty reads back a region written with no chunks
func TestRegion_Empty(t *testing.T) {
	data, err := WriteRegion(map[region.Pos]*codec.Document{})
	require.NoError(t, err)

	docs, err := ReadRegion(data)
	require.NoError(t, err)
	require.Empty(t, docs)
}

// TestRegion_RoundTrip writes and reads chunks through the facade
func TestRegion_RoundTrip(t *testing.T) {
	chunk := NewDocument("", format.CompressionZlib)
	chunk.Root.Put("xPos", tag.Int(4))

	data, err := WriteRegion(map[region.Pos]*codec.Document{{X: 4, Z: 2}: chunk})
	require.NoError(t, err)

	docs, err := ReadRegion(data)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.True(t, tag.Equal(chunk.Root, docs[region.Pos{X: 4, Z: 2}].Root))
}

// TestSNBT parses and formats through the facade
func TestSNBT(t *testing.T) {
	v, err := ParseSNBT(`{a:1b,b:"x",c:[1,2,3]}`)
	require.NoError(t, err)

	c, ok := v.(*tag.Compound)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b", "c"}, c.Keys())

	require.Equal(t, `{a:1b,b:x,c:[1,2,3]}`, FormatSNBT(v, false))

	_, err = ParseSNBT("{a:")
	require.Error(t, err)
}
