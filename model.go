// File model contains the structs which match the on-disk structures of a FAT12 volume.

package fat12

//go:generate go run ./cmd/generate -o testdata/flash.bin

// bootSectorSize is the size of the part of the boot sector described by bootSector.
const bootSectorSize = 24

// bootSector is the common BPB prefix of a FAT12 boot sector, in on-disk order.
type bootSector struct {
	BSJumpBoot        [3]byte
	BSOEMName         [8]byte
	BytesPerBlock     uint16
	BlocksPerCluster  byte
	ReservedBlocks    uint16
	FATCount          byte
	RootDirEntryCount uint16
	TotalBlocks       uint16
	Media             byte
	BlocksPerFAT      uint16
}

// extendedBootRecord follows the BPB at offset 36 on FAT12 and FAT16 volumes.
type extendedBootRecord struct {
	BSDriveNumber    byte
	BSReserved1      byte
	BSBootSignature  byte
	BSVolumeID       uint32
	BSVolumeLabel    [11]byte
	BSFileSystemType [8]byte
}

const (
	extendedBootRecordOffset = 36
	extendedBootRecordSize   = 26
	extendedBootSignature    = 0x29
)

// Root directory slot layout.
const (
	entrySize = 32

	entryNameOffset      = 0
	entryExtOffset       = 8
	entryAttributeOffset = 11
	entryWriteTimeOffset = 22
	entryWriteDateOffset = 24
	entryClusterOffset   = 26
	entrySizeOffset      = 28

	entryNameLength = 8
	entryExtLength  = 3
)

// Markers found in the first byte of a directory slot.
const (
	entryEnd     = 0x00
	entryDeleted = 0xE5
)

// Attribute bits of a directory slot.
const (
	AttrReadOnly    = 0x01
	AttrHidden      = 0x02
	AttrSystem      = 0x04
	AttrVolumeLabel = 0x08
	AttrDirectory   = 0x10
	AttrArchive     = 0x20
)
