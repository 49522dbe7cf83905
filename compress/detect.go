package compress

import (
	"bytes"

	"github.com/arloliu/nbt/format"
)

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
)

// Detect sniffs the envelope of data from its leading bytes.
//
// Rules, in order:
//   - 0x1F 0x8B: gzip
//   - a zlib header pair (CM=8, CINFO<=7, no preset dictionary, FCHECK valid): zlib
//   - the Zstandard or LZ4 frame magic: Zstd or LZ4
//   - anything else: a raw tag stream
//
// A raw NBT stream starts with the Compound id 0x0A, which matches none of the rules.
func Detect(data []byte) format.CompressionType {
	if len(data) < 2 {
		return format.CompressionNone
	}

	if data[0] == 0x1F && data[1] == 0x8B {
		return format.CompressionGzip
	}

	if IsZlibHeader(data[0], data[1]) {
		return format.CompressionZlib
	}

	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(data, lz4Magic):
		return format.CompressionLZ4
	}

	return format.CompressionNone
}

// IsZlibHeader reports whether cmf and flg form a valid zlib stream header
// (RFC 1950 section 2.2) without a preset dictionary.
func IsZlibHeader(cmf, flg byte) bool {
	if cmf&0x0F != 8 || cmf>>4 > 7 {
		return false
	}

	if flg&0x20 != 0 {
		return false
	}

	return (uint16(cmf)<<8|uint16(flg))%31 == 0
}
