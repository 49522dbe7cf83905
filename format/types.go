package format

type (
	// CompressionType identifies the framing applied around a raw tag stream.
	CompressionType uint8

	// RegionScheme is the per-chunk compression id stored in region files.
	RegionScheme uint8
)

const (
	CompressionNone CompressionType = 0x0 // CompressionNone represents a raw tag stream.
	CompressionGzip CompressionType = 0x1 // CompressionGzip represents gzip framing.
	CompressionZlib CompressionType = 0x2 // CompressionZlib represents zlib framing.
	CompressionZstd CompressionType = 0x3 // CompressionZstd represents a Zstandard frame.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents an LZ4 frame.
)

const (
	SchemeGzip RegionScheme = 1 // SchemeGzip is the region id for gzip chunks.
	SchemeZlib RegionScheme = 2 // SchemeZlib is the region id for zlib chunks.
	SchemeNone RegionScheme = 3 // SchemeNone is the region id for uncompressed chunks.
	SchemeLZ4  RegionScheme = 4 // SchemeLZ4 is the region id for LZ4 chunks.

	// SchemeExternalFlag marks a chunk whose payload lives in a separate file.
	SchemeExternalFlag RegionScheme = 0x80
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionZlib:
		return "Zlib"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (s RegionScheme) String() string {
	switch s {
	case SchemeGzip:
		return "Gzip"
	case SchemeZlib:
		return "Zlib"
	case SchemeNone:
		return "None"
	case SchemeLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Compression maps a region scheme id onto the compression type of its payload.
// The second result is false for ids without a mapping.
func (s RegionScheme) Compression() (CompressionType, bool) {
	switch s {
	case SchemeGzip:
		return CompressionGzip, true
	case SchemeZlib:
		return CompressionZlib, true
	case SchemeNone:
		return CompressionNone, true
	case SchemeLZ4:
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

// RegionScheme maps a compression type onto its region scheme id.
// Zstd has no region id; the second result is false for it.
func (c CompressionType) RegionScheme() (RegionScheme, bool) {
	switch c {
	case CompressionGzip:
		return SchemeGzip, true
	case CompressionZlib:
		return SchemeZlib, true
	case CompressionNone:
		return SchemeNone, true
	case CompressionLZ4:
		return SchemeLZ4, true
	default:
		return 0, false
	}
}
