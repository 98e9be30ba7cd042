// Package partition finds a FAT12 volume inside a disk image with an MBR or GPT partition table.
package partition

import (
	"fmt"
	"sort"

	"github.com/diskfs/go-diskfs/backend/file"
	diskpart "github.com/diskfs/go-diskfs/partition"
	"github.com/diskfs/go-diskfs/partition/gpt"
	"github.com/diskfs/go-diskfs/partition/mbr"
	"github.com/spf13/afero/mem"

	"github.com/flashdump/fat12/internal/logger"
)

// Extent is a partition of a disk image in bytes.
type Extent struct {
	// Index is the partition number, counted from 1 in the order of the table.
	Index  int    `json:"index" yaml:"index"`
	Type   string `json:"type" yaml:"type"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Offset int64  `json:"offset" yaml:"offset"`
	Size   int64  `json:"size" yaml:"size"`
}

// Extents lists the used partitions of pt, sorted by offset.
func Extents(pt diskpart.Table, blockSize int64) ([]Extent, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("invalid block size %d", blockSize)
	}

	var out []Extent
	switch t := pt.(type) {
	case *gpt.Table:
		for i, p := range t.Partitions {
			// skip empty GPT entries
			if p.Start == 0 && p.End == 0 {
				continue
			}
			out = append(out, Extent{
				Index:  i + 1,
				Type:   string(p.Type),
				Name:   p.Name,
				Offset: int64(p.Start) * blockSize,
				Size:   int64(p.End-p.Start+1) * blockSize,
			})
		}

	case *mbr.Table:
		for i, p := range t.Partitions {
			if p.Type == mbr.Empty || p.Size == 0 {
				continue
			}
			out = append(out, Extent{
				Index:  i + 1,
				Type:   fmt.Sprintf("0x%02x", byte(p.Type)),
				Offset: int64(p.Start) * blockSize,
				Size:   int64(p.Size) * blockSize,
			})
		}

	default:
		return nil, fmt.Errorf("unsupported partition table type: %T", t)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Offset < out[j].Offset
	})
	return out, nil
}

// Find returns the extent with the given partition number.
func Find(extents []Extent, index int) (Extent, error) {
	for _, e := range extents {
		if e.Index == index {
			return e, nil
		}
	}
	return Extent{}, fmt.Errorf("no partition %d among %d partitions", index, len(extents))
}

// blockSize is the logical block size of disk image files.
const blockSize = 512

// ReadTable reads the GPT or MBR partition table at the start of a disk image held in memory.
func ReadTable(image []byte) (diskpart.Table, error) {
	fd := mem.CreateFile("disk")
	if _, err := mem.NewFileHandle(fd).Write(image); err != nil {
		return nil, fmt.Errorf("buffer disk image: %w", err)
	}
	disk := file.New(mem.NewReadOnlyFileHandle(fd), true)

	pt, err := diskpart.Read(disk, blockSize, blockSize)
	if err != nil {
		return nil, fmt.Errorf("get partition table: %w", err)
	}
	return pt, nil
}

// Locate returns partition index of the table of a disk image held in memory.
func Locate(image []byte, index int) (Extent, error) {
	pt, err := ReadTable(image)
	if err != nil {
		return Extent{}, err
	}

	extents, err := Extents(pt, blockSize)
	if err != nil {
		return Extent{}, err
	}
	logger.Logger().Debugf("%s partition table with %d partitions: %+v", pt.Type(), len(extents), extents)

	return Find(extents, index)
}

// Slice cuts the extent out of a whole disk image.
func Slice(image []byte, e Extent) ([]byte, error) {
	end := e.Offset + e.Size
	if e.Offset < 0 || e.Size < 0 || end > int64(len(image)) {
		return nil, fmt.Errorf("partition %d (%d bytes at %d) exceeds the image of %d bytes", e.Index, e.Size, e.Offset, len(image))
	}
	return image[e.Offset:end], nil
}
