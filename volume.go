package fat12

import (
	"go.uber.org/zap"

	"github.com/flashdump/fat12/checkpoint"
	"github.com/flashdump/fat12/internal/logger"
)

// Volume is a FAT12 volume backed by an image held in memory.
// The image is never modified. Any number of reads may run on a Volume at the same time as
// long as nobody changes the image, but a Cursor must not be shared between them.
type Volume struct {
	data     []byte
	geometry Geometry
	boot     BootRecord
	log      *zap.SugaredLogger
}

// Option configures a Volume.
type Option func(v *Volume)

// WithLogger makes the volume log to l instead of the process logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(v *Volume) {
		v.log = l
	}
}

// NewVolume parses the boot sector of data and returns the volume it describes.
func NewVolume(data []byte, opts ...Option) *Volume {
	v := &Volume{
		data: data,
		log:  logger.Logger(),
	}
	for _, opt := range opts {
		opt(v)
	}

	v.geometry = ParseBPB(data)
	v.boot = ParseBootRecord(data)

	g := v.geometry
	v.log.Debugw("parsed boot parameter block",
		"bytesPerBlock", g.BytesPerBlock,
		"blocksPerCluster", g.BlocksPerCluster,
		"reservedBlocks", g.ReservedBlocks,
		"fatCount", g.FATCount,
		"rootDirEntries", g.RootDirEntryCount,
		"totalBlocks", g.TotalBlocks,
		"blocksPerFAT", g.BlocksPerFAT,
		"rootDirStartBlock", g.RootDirStartBlock,
		"rootDirBlocks", g.RootDirBlockCount,
		"dataStartBlock", g.DataStartBlock,
	)

	return v
}

// Geometry returns a copy of the volume geometry.
func (v *Volume) Geometry() Geometry {
	return v.geometry
}

// BootRecord returns the descriptive fields of the boot sector.
func (v *Volume) BootRecord() BootRecord {
	return v.boot
}

// Size returns the size of the image in bytes.
func (v *Volume) Size() int64 {
	return int64(len(v.data))
}

// Label returns the volume label. The label slot of the root directory wins over the
// label of the extended boot record, like on DOS.
func (v *Volume) Label() string {
	if label, ok := volumeLabel(v.geometry, v.data); ok {
		return label
	}
	return v.boot.VolumeLabel
}

// ReadDir enumerates the root directory.
func (v *Volume) ReadDir() *Directory {
	return &Directory{entries: enumerate(v.geometry, v.data, v.log)}
}

// Stat returns the root directory entry with the given 8.3 name.
func (v *Volume) Stat(name string) (Entry, error) {
	e, ok := v.ReadDir().Lookup(name)
	if !ok {
		return Entry{}, checkpoint.Wrapf(ErrNotFound, "%q", name)
	}
	return e, nil
}

// next returns the successor of c, checking that its FAT entry lies inside the image.
func (v *Volume) next(c Cluster) (Cluster, error) {
	off := v.geometry.FATOffset() + fatEntryOffset(c)
	if off+2 > int64(len(v.data)) {
		return 0, checkpoint.Wrapf(ErrOutOfBounds, "FAT entry of cluster %d at offset %d", c, off)
	}

	next := NextCluster(v.geometry, c, v.data)
	v.log.Debugf("cluster %d -> %d", c, next)
	return next, nil
}

// clusterBytes returns n bytes of cluster c, starting at offset within the cluster.
func (v *Volume) clusterBytes(c Cluster, within, n uint32) ([]byte, error) {
	if !c.IsData() {
		return nil, checkpoint.Wrapf(ErrInvalidCluster, "cluster %d", c)
	}

	start := v.geometry.Locate(c) + int64(within)
	end := start + int64(n)
	if start < 0 || end > int64(len(v.data)) {
		return nil, checkpoint.Wrapf(ErrOutOfBounds, "cluster %d bytes %d-%d, image size %d", c, start, end, len(v.data))
	}
	return v.data[start:end], nil
}

// startCluster returns the first cluster of e.
func (v *Volume) startCluster(e Entry) (Cluster, error) {
	if e.Location == nil {
		return 0, checkpoint.Wrapf(ErrInvalidCluster, "entry %q has no location", e.Name)
	}
	return v.ClusterOf(e.Location)
}
