package fat12

// ClusterSize is the size of one cluster in bytes.
//
// The flash parts this reader is used with are formatted with one 4096 byte block per
// cluster, and the images do not always say so consistently in their BPB. Cluster offsets
// are therefore computed with this constant and not with BlocksPerCluster*BytesPerBlock.
const ClusterSize = 4096

// Cluster is a FAT12 cluster number or a FAT entry value.
type Cluster uint16

const (
	// FirstDataCluster is the lowest cluster backed by the data region.
	// Clusters 0 and 1 are reserved.
	FirstDataCluster Cluster = 2

	// EndOfChain is the lowest end-of-chain marker. All values from 0xFF8 up are treated alike.
	EndOfChain Cluster = 0xFF8

	fat12Mask = 0x0FFF
)

// IsEndOfChain reports whether c marks the end of a cluster chain.
func (c Cluster) IsEndOfChain() bool {
	return c >= EndOfChain
}

// IsData reports whether c addresses a cluster in the data region.
func (c Cluster) IsData() bool {
	return c >= FirstDataCluster && !c.IsEndOfChain()
}

// Locate returns the byte offset of cluster c in the image.
// It is undefined for clusters below FirstDataCluster.
func (g Geometry) Locate(c Cluster) int64 {
	return (int64(g.DataStartBlock) + int64(c) - int64(FirstDataCluster)) * ClusterSize
}

// fatEntryOffset is the offset of the 16 bit word holding the entry of c, relative to the FAT.
// Two 12 bit entries are packed into three bytes.
func fatEntryOffset(c Cluster) int64 {
	return int64(c) * 3 / 2
}

// NextCluster returns the FAT entry of c, that is the cluster following c in its chain or
// an end-of-chain marker.
// The caller guarantees that the entry lies inside buf.
func NextCluster(g Geometry, c Cluster, buf []byte) Cluster {
	v := ReadU16(buf, int(g.FATOffset()+fatEntryOffset(c)))
	if c&1 == 0 {
		return Cluster(v & fat12Mask)
	}
	return Cluster((v >> 4) & fat12Mask)
}
