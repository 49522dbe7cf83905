package codec

import (
	"fmt"
	"testing"

	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/tag"
)

// generateChunkDocument builds a chunk-shaped document with the given number of
// block entities and one large long array, roughly what a region chunk holds.
func generateChunkDocument(entities int) *Document {
	doc := NewDocument("", format.CompressionZlib)

	level := tag.NewCompound()
	level.Put("xPos", tag.Int(3))
	level.Put("zPos", tag.Int(-7))
	level.Put("LastUpdate", tag.Long(123456789))
	level.Put("Status", tag.String("minecraft:full"))

	states := make(tag.LongArray, 4096)
	for i := range states {
		states[i] = int64(i) * 2654435761
	}
	level.Put("BlockStates", states)

	list := tag.NewListCap(entities)
	for i := range entities {
		e := tag.NewCompound()
		e.Put("id", tag.String("minecraft:chest"))
		e.Put("x", tag.Int(int32(i)))
		e.Put("y", tag.Int(64))
		e.Put("z", tag.Int(int32(-i)))
		e.Put("CustomName", tag.String(fmt.Sprintf("Chest #%d", i)))
		_ = list.Append(e)
	}
	level.Put("BlockEntities", list)

	doc.Root.Put("Level", level)

	return doc
}

func BenchmarkEncode(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		doc := generateChunkDocument(n)
		b.Run(fmt.Sprintf("entities_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := EncodeRaw(doc); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecode(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		raw, err := EncodeRaw(generateChunkDocument(n))
		if err != nil {
			b.Fatal(err)
		}

		b.Run(fmt.Sprintf("entities_%d", n), func(b *testing.B) {
			b.SetBytes(int64(len(raw)))
			b.ReportAllocs()
			for b.Loop() {
				if _, err := DecodeRaw(raw); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkDecodeSelective reads two scalars out of the same documents as
// BenchmarkDecode, skipping the block entities and the long array.
func BenchmarkDecodeSelective(b *testing.B) {
	f, err := NewFilter("Level.xPos", "Level.zPos")
	if err != nil {
		b.Fatal(err)
	}

	for _, n := range []int{10, 100, 1000} {
		raw, err := EncodeRaw(generateChunkDocument(n))
		if err != nil {
			b.Fatal(err)
		}

		b.Run(fmt.Sprintf("entities_%d", n), func(b *testing.B) {
			b.SetBytes(int64(len(raw)))
			b.ReportAllocs()
			for b.Loop() {
				if _, err := DecodeRaw(raw, WithFilter(f)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecode_Compressed(b *testing.B) {
	for _, ct := range []format.CompressionType{format.CompressionGzip, format.CompressionZlib, format.CompressionZstd, format.CompressionLZ4} {
		doc := generateChunkDocument(100)
		doc.Compression = ct
		data, err := Encode(doc)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(ct.String(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := Decode(data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
