package fat12

import (
	"fmt"

	"github.com/flashdump/fat12/checkpoint"
)

// LoadFile copies the whole file with the given 8.3 name into p and returns the number of
// bytes copied.
//
// The chain is followed until the declared size is copied or the chain ends, whichever comes
// first. A chain ending early is not an error; the returned count tells how much was found.
// p is left untouched if the file does not exist or does not fit.
func (v *Volume) LoadFile(name string, p []byte) (int, error) {
	e, ok := v.ReadDir().Lookup(name)
	if !ok {
		return 0, checkpoint.Wrapf(ErrNotFound, "%q", name)
	}

	if int64(e.Size) > int64(len(p)) {
		return 0, checkpoint.Wrap(fmt.Errorf("%q has %d bytes, buffer holds %d", name, e.Size, len(p)), ErrBufferTooSmall)
	}

	if e.Size == 0 {
		return 0, nil
	}

	current, err := v.startCluster(e)
	if err != nil {
		return 0, checkpoint.Wrap(err, ErrReadFile)
	}

	var copied uint32
	for copied < e.Size {
		n := min(uint32(ClusterSize), e.Size-copied)
		data, err := v.clusterBytes(current, 0, n)
		if err != nil {
			return int(copied), checkpoint.Wrap(err, ErrReadFile)
		}
		copy(p[copied:], data)
		copied += n

		if copied >= e.Size {
			break
		}

		current, err = v.next(current)
		if err != nil {
			return int(copied), checkpoint.Wrap(err, ErrReadFile)
		}
		if current.IsEndOfChain() {
			v.log.Debugf("chain of %q ended after %d of %d bytes", name, copied, e.Size)
			break
		}
	}

	return int(copied), nil
}
