package region

import (
	"context"
	"testing"

	"github.com/arloliu/nbt/codec"
	"github.com/arloliu/nbt/format"
)

func benchmarkRegion(b *testing.B, n int) []byte {
	b.Helper()
	docs := make(map[Pos]*codec.Document, n)
	for i := range n {
		p := Pos{X: i % Width, Z: i / Width}
		docs[p] = chunkDocument(p.X, p.Z)
	}

	data, err := WriteDocuments(docs, WithScheme(format.SchemeZlib))
	if err != nil {
		b.Fatal(err)
	}

	return data
}

func BenchmarkRead(b *testing.B) {
	data := benchmarkRegion(b, SlotCount)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()

	for b.Loop() {
		if _, err := Read(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReadDocuments(b *testing.B) {
	data := benchmarkRegion(b, 256)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()

	for b.Loop() {
		if _, err := ReadDocuments(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeAll(b *testing.B) {
	data := benchmarkRegion(b, 256)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()

	for b.Loop() {
		r, err := Read(data)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := r.DecodeAll(context.Background(), 0); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWrite_Untouched(b *testing.B) {
	r, err := Read(benchmarkRegion(b, SlotCount))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()

	for b.Loop() {
		if _, err := r.Write(); err != nil {
			b.Fatal(err)
		}
	}
}
