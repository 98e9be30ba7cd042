package fat12

import (
	"bytes"
	"encoding/binary"
	"strings"
)

// Geometry describes the layout of a FAT12 volume as read from its boot sector.
// The derived fields are filled in by ParseBPB and never change afterwards.
type Geometry struct {
	BytesPerBlock uint16
	// BlocksPerCluster is reported as found. Cluster addressing uses ClusterSize instead.
	BlocksPerCluster  uint8
	ReservedBlocks    uint16
	FATCount          uint8
	RootDirEntryCount uint16
	TotalBlocks       uint16
	BlocksPerFAT      uint16

	RootDirStartBlock uint32
	RootDirBlockCount uint32
	DataStartBlock    uint32
}

// ParseBPB decodes the boot parameter block at the start of raw.
// It never fails: a short boot sector is read as if padded with zeros and nonsense values
// result in a nonsense, but well defined, Geometry.
func ParseBPB(raw []byte) Geometry {
	var sector [bootSectorSize]byte
	copy(sector[:], raw)

	bs := bootSector{}
	// Reading a fixed size struct from a buffer of exactly its size cannot fail.
	_ = binary.Read(bytes.NewReader(sector[:]), binary.LittleEndian, &bs)

	g := Geometry{
		BytesPerBlock:     bs.BytesPerBlock,
		BlocksPerCluster:  bs.BlocksPerCluster,
		ReservedBlocks:    bs.ReservedBlocks,
		FATCount:          bs.FATCount,
		RootDirEntryCount: bs.RootDirEntryCount,
		TotalBlocks:       bs.TotalBlocks,
		BlocksPerFAT:      bs.BlocksPerFAT,
	}

	g.RootDirStartBlock = uint32(g.ReservedBlocks) + uint32(g.FATCount)*uint32(g.BlocksPerFAT)
	if g.BytesPerBlock != 0 {
		rootDirBytes := uint32(g.RootDirEntryCount) * entrySize
		g.RootDirBlockCount = (rootDirBytes + uint32(g.BytesPerBlock) - 1) / uint32(g.BytesPerBlock)
	}
	g.DataStartBlock = g.RootDirStartBlock + g.RootDirBlockCount

	return g
}

// FATOffset is the byte offset of the first FAT, right behind the reserved blocks.
func (g Geometry) FATOffset() int64 {
	return int64(g.ReservedBlocks) * int64(g.BytesPerBlock)
}

// RootDirOffset is the byte offset of the first root directory slot.
func (g Geometry) RootDirOffset() int64 {
	return int64(g.RootDirStartBlock) * int64(g.BytesPerBlock)
}

// BootRecord holds the descriptive, non geometry parts of a boot sector.
type BootRecord struct {
	OEMName string
	// Extended is false if the boot sector carries no extended boot record,
	// in which case the fields below are empty.
	Extended       bool
	VolumeID       uint32
	VolumeLabel    string
	FileSystemType string
}

// ParseBootRecord decodes the OEM name and the extended boot record of a boot sector.
// Like ParseBPB it never fails.
func ParseBootRecord(raw []byte) BootRecord {
	var sector [extendedBootRecordOffset + extendedBootRecordSize]byte
	copy(sector[:], raw)

	bs := bootSector{}
	_ = binary.Read(bytes.NewReader(sector[:bootSectorSize]), binary.LittleEndian, &bs)
	br := BootRecord{
		OEMName: strings.TrimRight(string(bs.BSOEMName[:]), " \x00"),
	}

	ext := extendedBootRecord{}
	_ = binary.Read(bytes.NewReader(sector[extendedBootRecordOffset:]), binary.LittleEndian, &ext)
	if ext.BSBootSignature != extendedBootSignature {
		return br
	}

	br.Extended = true
	br.VolumeID = ext.BSVolumeID
	br.VolumeLabel = strings.TrimRight(string(ext.BSVolumeLabel[:]), " \x00")
	br.FileSystemType = strings.TrimRight(string(ext.BSFileSystemType[:]), " \x00")
	return br
}
