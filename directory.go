package fat12

import (
	"strings"

	"go.uber.org/zap"
)

// Entry describes one file of the root directory.
type Entry struct {
	// Index is the position of the entry among the accepted entries, not its raw slot.
	Index int
	// Name is the 8.3 name with the padding of both parts removed, always containing a dot.
	Name string
	// Size is the declared length of the file. Reads never go past it.
	Size      uint32
	Location  Location
	Attribute byte
	WriteTime uint16
	WriteDate uint16
}

// IsDir reports whether the entry is a subdirectory.
func (e Entry) IsDir() bool {
	return e.Attribute&AttrDirectory == AttrDirectory
}

// Enumerate lists the files of the root directory of the volume in buf.
//
// The scan stops at the first slot starting with 0x00 and skips deleted slots and volume
// labels. If the root directory reaches past the end of buf, the slots inside buf are listed.
func Enumerate(g Geometry, buf []byte) []Entry {
	return enumerate(g, buf, zap.NewNop().Sugar())
}

func enumerate(g Geometry, buf []byte, log *zap.SugaredLogger) []Entry {
	var entries []Entry

	rootDir := g.RootDirOffset()
	for i := int64(0); i < int64(g.RootDirEntryCount); i++ {
		off := rootDir + i*entrySize
		if off+entrySize > int64(len(buf)) {
			log.Warnf("root directory truncated at slot %d of %d (image size %d)", i, g.RootDirEntryCount, len(buf))
			break
		}
		slot := buf[off : off+entrySize]

		if slot[0] == entryEnd {
			break
		}
		if slot[0] == entryDeleted || slot[entryAttributeOffset]&AttrVolumeLabel != 0 {
			continue
		}

		entries = append(entries, decodeEntry(slot, len(entries)))
	}

	return entries
}

func decodeEntry(slot []byte, index int) Entry {
	return Entry{
		Index:     index,
		Name:      shortName(slot),
		Size:      ReadU32(slot, entrySizeOffset),
		Location:  StartingCluster(ReadU16(slot, entryClusterOffset)),
		Attribute: slot[entryAttributeOffset],
		WriteTime: ReadU16(slot, entryWriteTimeOffset),
		WriteDate: ReadU16(slot, entryWriteDateOffset),
	}
}

// shortName joins the trimmed base name and extension of a slot with a dot.
func shortName(slot []byte) string {
	base := strings.TrimRight(string(slot[entryNameOffset:entryNameOffset+entryNameLength]), " ")
	ext := strings.TrimRight(string(slot[entryExtOffset:entryExtOffset+entryExtLength]), " ")
	return base + "." + ext
}

// volumeLabel returns the name stored in the volume label slot of the root directory, if any.
func volumeLabel(g Geometry, buf []byte) (string, bool) {
	rootDir := g.RootDirOffset()
	for i := int64(0); i < int64(g.RootDirEntryCount); i++ {
		off := rootDir + i*entrySize
		if off+entrySize > int64(len(buf)) || buf[off] == entryEnd {
			break
		}
		slot := buf[off : off+entrySize]
		if slot[0] != entryDeleted && slot[entryAttributeOffset]&AttrVolumeLabel != 0 {
			return strings.TrimRight(string(slot[:entryNameLength+entryExtLength]), " "), true
		}
	}
	return "", false
}

// Directory is the table of files found in a root directory.
type Directory struct {
	entries []Entry
}

// Len returns the number of files.
func (d *Directory) Len() int {
	return len(d.entries)
}

// Entries returns a copy of the table.
func (d *Directory) Entries() []Entry {
	result := make([]Entry, len(d.entries))
	copy(result, d.entries)
	return result
}

// Entry returns the file with the given index.
func (d *Directory) Entry(index int) (Entry, bool) {
	if index < 0 || index >= len(d.entries) {
		return Entry{}, false
	}
	return d.entries[index], true
}

// Lookup finds a file by its exact, case-sensitive 8.3 name, e.g. "README.TXT".
func (d *Directory) Lookup(name string) (Entry, bool) {
	for _, e := range d.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}
