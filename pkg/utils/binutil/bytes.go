// Package binutil packs and unpacks the big endian byte fields of
// binary wire frames.
package binutil

import "math"

func ParseUint16BigEndian(buf []byte) uint16 {
	return uint16(buf[0])<<8 + uint16(buf[1])
}

func ParseUint32BigEndian(buf []byte) uint32 {
	return uint32(buf[0])<<24 +
		uint32(buf[1])<<16 +
		uint32(buf[2])<<8 +
		uint32(buf[3])
}

func ParseFloat32BigEndian(buf []byte) float32 {
	return math.Float32frombits(ParseUint32BigEndian(buf))
}

func Uint16ToBytes(value uint16) []byte {
	return []byte{byte(value >> 8), byte(value)}
}

func Uint32ToBytes(value uint32) []byte {
	return []byte{byte(value >> 24), byte(value >> 16), byte(value >> 8), byte(value)}
}

// WriteFloat32 writes the IEEE 754 bits of value into buf[0:4].
func WriteFloat32(buf []byte, value float32) {
	val := math.Float32bits(value)
	buf[0] = byte(val >> 24)
	buf[1] = byte(val >> 16)
	buf[2] = byte(val >> 8)
	buf[3] = byte(val)
}
