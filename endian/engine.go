// Package endian provides the byte order engines used by the NBT binary codec.
//
// Java Edition writes every numeric field big-endian; Bedrock Edition writes the same
// layout little-endian. The codec takes an EndianEngine so one implementation serves
// both:
//
//	engine := endian.GetBigEndianEngine() // Java Edition, the default
//	buf = engine.AppendUint32(buf, uint32(v))
//	v := int32(engine.Uint32(data[off:]))
//
// # Performance
//
// EndianEngine includes binary.AppendByteOrder, so encoders append straight into their
// output buffer without a scratch slice:
//
//	buf = engine.AppendUint64(buf, value)
//
// # Thread Safety
//
// The returned EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine used by Java Edition NBT.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine used by Bedrock Edition NBT.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	var b [2]byte
	engine.PutUint16(b[:], 0x0100)

	return b[0] == 0x01
}
