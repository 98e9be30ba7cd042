package fat12

import "encoding/binary"

// ReadU16 reads a little-endian uint16 at off.
// The caller guarantees that off+2 is inside buf.
func ReadU16(buf []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(buf[off : off+2])
}

// ReadU32 reads a little-endian uint32 at off.
// The caller guarantees that off+4 is inside buf.
func ReadU32(buf []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(buf[off : off+4])
}
