package fat12

import (
	"fmt"

	"github.com/flashdump/fat12/checkpoint"
)

// Cursor remembers how far a chunked read of a file got, so that the next chunk does not
// have to walk the chain from the first cluster again.
//
// The zero value starts at the first cluster of the file. A Cursor belongs to the caller and
// must only be used for one file and by one reader at a time.
type Cursor struct {
	// Cluster holds the file byte at Consumed. 0 means no cluster was visited yet.
	Cluster Cluster
	// Consumed is the number of file bytes delivered so far.
	Consumed uint32
}

// Reset makes the cursor start over at the first cluster.
func (c *Cursor) Reset() {
	*c = Cursor{}
}

// ReadChunk copies up to chunkSize bytes of the file e, starting at offset, into p and
// returns the number of bytes copied. It returns 0 and no error once offset reaches the size
// of the file.
//
// The walk resumes at cur, which is advanced to the new position afterwards. An offset
// behind the cursor restarts the walk at the first cluster, an offset ahead of it follows the
// chain up to the cluster holding offset; ErrUnexpectedEndOfChain is returned if the chain
// ends before that. A chain ending in the middle of the chunk ends the chunk early.
// ErrBufferOverflow is returned, before anything is written past the end of p, if the chunk
// does not fit into p. A nil cur reads without remembering anything.
func (v *Volume) ReadChunk(e Entry, p []byte, offset, chunkSize uint32, cur *Cursor) (int, error) {
	if cur == nil {
		cur = &Cursor{}
	}

	if offset >= e.Size {
		return 0, nil
	}

	first, err := v.startCluster(e)
	if err != nil {
		return 0, checkpoint.Wrap(err, ErrReadFile)
	}

	current, pos := cur.Cluster, cur.Consumed
	if current == 0 || offset < pos {
		current, pos = first, 0
	}

	// Follow the chain up to the cluster holding offset.
	clusterStart := pos - pos%ClusterSize
	for clusterStart+ClusterSize <= offset {
		if !current.IsData() {
			return 0, checkpoint.Wrapf(ErrUnexpectedEndOfChain, "%q: cluster %d at offset %d", e.Name, current, clusterStart)
		}

		next, err := v.next(current)
		if err != nil {
			return 0, checkpoint.Wrap(err, ErrReadFile)
		}
		if next.IsEndOfChain() {
			return 0, checkpoint.Wrapf(ErrUnexpectedEndOfChain, "%q ends at offset %d, wanted %d", e.Name, clusterStart+ClusterSize, offset)
		}

		current = next
		clusterStart += ClusterSize
	}
	pos = offset

	if !current.IsData() {
		return 0, checkpoint.Wrapf(ErrUnexpectedEndOfChain, "%q: cluster %d at offset %d", e.Name, current, pos)
	}

	var n uint32
	for n < chunkSize && pos < e.Size {
		within := pos % ClusterSize
		toCopy := min(e.Size-pos, ClusterSize-within, chunkSize-n)

		if int64(n)+int64(toCopy) > int64(len(p)) {
			cur.Cluster, cur.Consumed = current, pos
			return int(n), checkpoint.Wrap(fmt.Errorf("%d more bytes do not fit into %d bytes after %d", toCopy, len(p), n), ErrBufferOverflow)
		}

		data, err := v.clusterBytes(current, within, toCopy)
		if err != nil {
			cur.Cluster, cur.Consumed = current, pos
			return int(n), checkpoint.Wrap(err, ErrReadFile)
		}
		copy(p[n:], data)
		n += toCopy
		pos += toCopy

		// Only move on once the cluster is used up and the file goes on,
		// so that Cluster keeps holding the byte at Consumed.
		if within+toCopy < ClusterSize || pos >= e.Size {
			continue
		}

		next, err := v.next(current)
		if err != nil {
			cur.Cluster, cur.Consumed = current, pos
			return int(n), checkpoint.Wrap(err, ErrReadFile)
		}
		current = next

		if current.IsEndOfChain() {
			v.log.Debugf("chain of %q ended after %d of %d bytes", e.Name, pos, e.Size)
			break
		}
		if !current.IsData() {
			cur.Cluster, cur.Consumed = current, pos
			return int(n), checkpoint.Wrapf(ErrUnexpectedEndOfChain, "%q: chain continues with cluster %d", e.Name, current)
		}
	}

	cur.Cluster, cur.Consumed = current, pos
	return int(n), nil
}
