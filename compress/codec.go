package compress

import (
	"fmt"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
)

// MaxDecompressedSize caps the output of a single decompression. Streams that expand
// beyond it are rejected as malformed.
const MaxDecompressedSize = 256 * 1024 * 1024 // 256MB safety limit

// Compressor wraps a raw tag stream in a compression envelope.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller (except NoOp)
	//   - Input slice is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor removes a compression envelope.
//
// Implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Error conditions:
	//   - Returns errs.ErrMalformedInput if the data is corrupted or truncated
	//   - Returns errs.ErrMalformedInput if the output exceeds MaxDecompressedSize
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Gzip, Zlib, Zstd or LZ4)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: errs.ErrUnsupportedCompression for unknown types
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionGzip:
		return NewGzipCompressor(), nil
	case format.CompressionZlib:
		return NewZlibCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: compression type %d", errs.ErrUnsupportedCompression, uint8(compressionType))
	}
}

// Compress applies the envelope for compressionType to data.
// CompressionNone is the identity transform.
func Compress(data []byte, compressionType format.CompressionType) ([]byte, error) {
	codec, err := CreateCodec(compressionType)
	if err != nil {
		return nil, err
	}

	return codec.Compress(data)
}

// Decompress removes the envelope for compressionType from data.
// CompressionNone is the identity transform.
func Decompress(data []byte, compressionType format.CompressionType) ([]byte, error) {
	codec, err := CreateCodec(compressionType)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(data)
}
