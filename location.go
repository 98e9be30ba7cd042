package fat12

import (
	"fmt"

	"github.com/flashdump/fat12/checkpoint"
)

// Location says where the data of a file starts.
// It is either a StartingCluster, as stored in the directory, or a ByteOffset into the image,
// as shown in listings. Use a type switch or Volume.ClusterOf to find out which.
type Location interface {
	fmt.Stringer
	location()
}

// StartingCluster is the first cluster of a file as found in its directory slot.
type StartingCluster Cluster

func (StartingCluster) location() {}

func (s StartingCluster) String() string {
	return fmt.Sprintf("cluster %d", uint16(s))
}

// ByteOffset is the position of the data of a file in the image.
type ByteOffset int64

func (ByteOffset) location() {}

func (o ByteOffset) String() string {
	return fmt.Sprintf("0x%X", int64(o))
}

// Resolve turns a location into a byte offset. Clusters outside of the data region resolve
// to ErrInvalidCluster.
func (v *Volume) Resolve(loc Location) (ByteOffset, error) {
	switch l := loc.(type) {
	case ByteOffset:
		return l, nil
	case StartingCluster:
		if !Cluster(l).IsData() {
			return 0, checkpoint.Wrapf(ErrInvalidCluster, "cluster %d", uint16(l))
		}
		return ByteOffset(v.geometry.Locate(Cluster(l))), nil
	default:
		return 0, checkpoint.Wrapf(ErrInvalidCluster, "unknown location %v", loc)
	}
}

// ClusterOf turns a location back into a cluster number.
// A byte offset has to point to the start of a cluster in the data region.
func (v *Volume) ClusterOf(loc Location) (Cluster, error) {
	switch l := loc.(type) {
	case StartingCluster:
		return Cluster(l), nil
	case ByteOffset:
		dataStart := v.geometry.Locate(FirstDataCluster)
		off := int64(l)
		if off < dataStart || (off-dataStart)%ClusterSize != 0 {
			return 0, checkpoint.Wrapf(ErrInvalidCluster, "offset %v is not a cluster boundary", l)
		}
		c := (off-dataStart)/ClusterSize + int64(FirstDataCluster)
		if c >= int64(EndOfChain) {
			return 0, checkpoint.Wrapf(ErrInvalidCluster, "offset %v is behind the last cluster", l)
		}
		return Cluster(c), nil
	default:
		return 0, checkpoint.Wrapf(ErrInvalidCluster, "unknown location %v", loc)
	}
}
