// Package fat12test builds small FAT12 flash images in memory for tests.
//
// Images use 4096 byte blocks with one block per cluster, the layout of the flash parts the
// reader targets. The builder writes the boot sector, both FATs and the root directory by
// hand, so tests do not depend on external mkfs tools.
package fat12test

import (
	"encoding/binary"
	"fmt"
)

// BlockSize is the block and cluster size of built images.
const BlockSize = 4096

// EndOfChain is written into the FAT entry of the last cluster of a file.
const EndOfChain = 0xFFF

// Options describes the layout of an image. Zero fields take the defaults noted.
type Options struct {
	ReservedBlocks uint16 // 1
	FATCount       uint8  // 2
	BlocksPerFAT   uint16 // 1
	RootDirEntries uint16 // 128, one block
	DataClusters   int    // 32
	// Stride spaces the clusters of a file, so chains are not contiguous. 1 if zero.
	Stride int
	// Label is written into the extended boot record.
	Label string
	// VolumeID is written into the extended boot record.
	VolumeID uint32
}

// Image is a FAT12 image under construction.
type Image struct {
	opts     Options
	buf      []byte
	next     int
	slot     int
	rootDir  int
	dataBase int
}

// New formats an empty image.
func New(opts Options) *Image {
	if opts.ReservedBlocks == 0 {
		opts.ReservedBlocks = 1
	}
	if opts.FATCount == 0 {
		opts.FATCount = 2
	}
	if opts.BlocksPerFAT == 0 {
		opts.BlocksPerFAT = 1
	}
	if opts.RootDirEntries == 0 {
		opts.RootDirEntries = 128
	}
	if opts.DataClusters == 0 {
		opts.DataClusters = 32
	}
	if opts.Stride == 0 {
		opts.Stride = 1
	}

	rootDirBlock := int(opts.ReservedBlocks) + int(opts.FATCount)*int(opts.BlocksPerFAT)
	rootDirBlocks := (int(opts.RootDirEntries)*32 + BlockSize - 1) / BlockSize
	dataBlock := rootDirBlock + rootDirBlocks
	totalBlocks := dataBlock + opts.DataClusters

	img := &Image{
		opts:     opts,
		buf:      make([]byte, totalBlocks*BlockSize),
		next:     2,
		rootDir:  rootDirBlock * BlockSize,
		dataBase: dataBlock * BlockSize,
	}

	b := img.buf
	copy(b[0:3], []byte{0xEB, 0x3C, 0x90})
	copy(b[3:11], "FLASHFAT")
	binary.LittleEndian.PutUint16(b[11:], BlockSize)
	b[13] = 1
	binary.LittleEndian.PutUint16(b[14:], opts.ReservedBlocks)
	b[16] = opts.FATCount
	binary.LittleEndian.PutUint16(b[17:], opts.RootDirEntries)
	binary.LittleEndian.PutUint16(b[19:], uint16(totalBlocks))
	b[21] = 0xF8
	binary.LittleEndian.PutUint16(b[22:], opts.BlocksPerFAT)

	b[38] = 0x29
	binary.LittleEndian.PutUint32(b[39:], opts.VolumeID)
	copy(b[43:54], fmt.Sprintf("%-11s", opts.Label))
	copy(b[54:62], "FAT12   ")
	b[510] = 0x55
	b[511] = 0xAA

	// The first two FAT entries hold the media byte and an end-of-chain marker.
	img.SetFAT(0, 0xFF8)
	img.SetFAT(1, EndOfChain)

	return img
}

// FATOffset returns the offset of the first FAT.
func (img *Image) FATOffset() int {
	return int(img.opts.ReservedBlocks) * BlockSize
}

// RootDirOffset returns the offset of the root directory.
func (img *Image) RootDirOffset() int {
	return img.rootDir
}

// ClusterOffset returns the offset of a data cluster.
func (img *Image) ClusterOffset(cluster uint16) int {
	return img.dataBase + (int(cluster)-2)*BlockSize
}

// SetFAT writes the 12 bit entry of cluster into every FAT copy.
func (img *Image) SetFAT(cluster, value uint16) {
	for copyIndex := 0; copyIndex < int(img.opts.FATCount); copyIndex++ {
		base := img.FATOffset() + copyIndex*int(img.opts.BlocksPerFAT)*BlockSize
		pos := base + int(cluster)*3/2
		value &= 0x0FFF
		if cluster&1 == 0 {
			img.buf[pos] = byte(value)
			img.buf[pos+1] = img.buf[pos+1]&0xF0 | byte(value>>8)
		} else {
			img.buf[pos] = img.buf[pos]&0x0F | byte(value<<4)
			img.buf[pos+1] = byte(value >> 4)
		}
	}
}

// Allocate reserves the clusters needed for size bytes, respecting Stride.
func (img *Image) Allocate(size int) []uint16 {
	count := (size + BlockSize - 1) / BlockSize
	clusters := make([]uint16, 0, count)
	for i := 0; i < count; i++ {
		if img.next-2 >= img.opts.DataClusters {
			panic(fmt.Sprintf("fat12test: image full after %d clusters", img.opts.DataClusters))
		}
		clusters = append(clusters, uint16(img.next))
		img.next += img.opts.Stride
	}
	return clusters
}

// AddFile stores data in newly allocated clusters and adds a directory entry for it.
// It returns the first cluster, 0 for an empty file.
func (img *Image) AddFile(name, ext string, data []byte) uint16 {
	return img.AddFileAt(name, ext, data, img.Allocate(len(data)))
}

// AddFileAt stores data in the given clusters, in order, chains them and adds a directory
// entry. The clusters must cover the data.
func (img *Image) AddFileAt(name, ext string, data []byte, clusters []uint16) uint16 {
	img.WriteChain(data, clusters)

	var first uint16
	if len(clusters) > 0 {
		first = clusters[0]
	}
	img.AddEntry(Entry{Name: name, Ext: ext, Cluster: first, Size: uint32(len(data))})
	return first
}

// WriteChain copies data into the clusters and links them in the FAT, ending the chain after
// the last one.
func (img *Image) WriteChain(data []byte, clusters []uint16) {
	for i, c := range clusters {
		start := i * BlockSize
		if start < len(data) {
			end := start + BlockSize
			if end > len(data) {
				end = len(data)
			}
			copy(img.buf[img.ClusterOffset(c):], data[start:end])
		}

		next := uint16(EndOfChain)
		if i+1 < len(clusters) {
			next = clusters[i+1]
		}
		img.SetFAT(c, next)
	}
}

// Entry is a raw root directory slot.
type Entry struct {
	Name      string
	Ext       string
	Attribute byte
	Cluster   uint16
	Size      uint32
	WriteTime uint16
	WriteDate uint16
	// Marker replaces the first name byte if not zero, e.g. 0xE5 for a deleted entry.
	Marker byte
}

// AddEntry writes the next root directory slot.
func (img *Image) AddEntry(e Entry) {
	if img.slot >= int(img.opts.RootDirEntries) {
		panic("fat12test: root directory full")
	}
	img.WriteEntry(img.slot, e)
	img.slot++
}

// WriteEntry writes slot index of the root directory.
func (img *Image) WriteEntry(index int, e Entry) {
	s := img.buf[img.rootDir+index*32 : img.rootDir+(index+1)*32]
	copy(s[0:8], fmt.Sprintf("%-8s", e.Name))
	copy(s[8:11], fmt.Sprintf("%-3s", e.Ext))
	if e.Marker != 0 {
		s[0] = e.Marker
	}
	s[11] = e.Attribute
	binary.LittleEndian.PutUint16(s[22:], e.WriteTime)
	binary.LittleEndian.PutUint16(s[24:], e.WriteDate)
	binary.LittleEndian.PutUint16(s[26:], e.Cluster)
	binary.LittleEndian.PutUint32(s[28:], e.Size)
}

// Bytes returns the image. Later changes to the builder are visible in the result.
func (img *Image) Bytes() []byte {
	return img.buf
}

// Pattern returns n bytes that differ from cluster to cluster and from file to file.
func Pattern(n int, seed byte) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i%251) ^ seed ^ byte(i/BlockSize)
	}
	return data
}

// SectorSize is the logical block size of disk images built by WrapMBR.
const SectorSize = 512

// WrapMBR returns a disk image with an MBR whose first slot holds volume as a FAT12
// partition starting at sector start.
func WrapMBR(volume []byte, start uint32) []byte {
	sectors := uint32((len(volume) + SectorSize - 1) / SectorSize)
	disk := make([]byte, (int(start)+int(sectors))*SectorSize)
	copy(disk[int(start)*SectorSize:], volume)

	entry := disk[446 : 446+16]
	entry[4] = 0x01
	binary.LittleEndian.PutUint32(entry[8:], start)
	binary.LittleEndian.PutUint32(entry[12:], sectors)
	disk[510] = 0x55
	disk[511] = 0xAA
	return disk
}
