package fat12

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"github.com/ulikunitz/xz"
	"go.uber.org/multierr"

	"github.com/flashdump/fat12/checkpoint"
)

// LoadImage reads a whole image file from afs into memory.
// Images ending in .gz, .zst or .xz are decompressed on the fly.
func LoadImage(afs afero.Fs, name string) (data []byte, err error) {
	f, err := afs.Open(name)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrLoadImage)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	r, err := decompress(name, f)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrLoadImage)
	}
	defer func() {
		err = multierr.Append(err, r.Close())
	}()

	data, err = io.ReadAll(r)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrLoadImage)
	}
	return data, nil
}

// OpenImage loads an image file and parses its boot sector.
func OpenImage(afs afero.Fs, name string, opts ...Option) (*Volume, error) {
	data, err := LoadImage(afs, name)
	if err != nil {
		return nil, err
	}
	return NewVolume(data, opts...), nil
}

func decompress(name string, r io.Reader) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		return gzip.NewReader(r)
	case ".zst", ".zstd":
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case ".xz":
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(xr), nil
	default:
		return io.NopCloser(r), nil
	}
}
