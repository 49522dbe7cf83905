// Package compress provides the compression envelopes that wrap raw NBT tag streams.
//
// Standalone NBT files are usually gzip framed, region chunks are usually zlib framed,
// and some tools write raw, uncompressed streams. This package sniffs and applies those
// envelopes, plus Zstd and LZ4 frames for callers that want them.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// CreateCodec maps a format.CompressionType onto its Codec. Detect inspects the leading
// bytes of a buffer and reports which envelope it carries.
//
// # Detection
//
//	switch compress.Detect(data) {
//	case format.CompressionGzip: // 1F 8B
//	case format.CompressionZlib: // 78 9C, 78 DA, 78 01, ...
//	case format.CompressionNone: // raw stream, starts with 0A
//	}
//
// # Supported Algorithms
//
//   - None: identity transform, returns its input without copying
//   - Gzip: klauspost/compress/gzip with pooled writers
//   - Zlib: klauspost/compress/zlib with pooled writers
//   - Zstd: klauspost/compress/zstd with pooled encoders and decoders
//   - LZ4: pierrec/lz4 frame format
//
// # Errors
//
// Every decompressor reports corrupt or truncated input as errs.ErrMalformedInput and
// refuses to produce more than MaxDecompressedSize bytes. CreateCodec reports unknown
// types as errs.ErrUnsupportedCompression.
//
// # Thread Safety
//
// All codecs are stateless values and safe for concurrent use; pooled writers and
// decoders are taken from sync.Pool per call.
package compress
