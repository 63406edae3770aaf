package sffs

import "encoding/binary"

// beU16 decodes a big-endian 16-bit value from the first two bytes of b.
func beU16(b []byte) uint16 {
	return binary.BigEndian.Uint16(b)
}

// beU32 decodes a big-endian 32-bit value from the first four bytes of b.
func beU32(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}
