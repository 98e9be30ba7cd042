package fat12

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/spf13/afero"

	"github.com/flashdump/fat12/checkpoint"
)

// volumeReader provides all methods needed from a Volume for File.
// It mainly exists to be able to mock the Volume in tests.
// Generated mock using mockgen:
//
//	mockgen -source=file.go -destination=file_mock.go -package fat12
type volumeReader interface {
	ReadChunk(e Entry, p []byte, offset, chunkSize uint32, cur *Cursor) (int, error)
	ReadDir() *Directory
}

// File is an open file or the open root directory of an Fs.
type File struct {
	vol    volumeReader
	path   string
	isRoot bool

	entry  Entry
	stat   os.FileInfo
	offset int64
	cursor Cursor
	closed bool
}

var _ afero.File = (*File)(nil)

// Close releases the volume. Afterwards only Name still works, everything else
// fails with os.ErrClosed.
func (f *File) Close() error {
	if f.closed {
		return f.closedError("close")
	}
	*f = File{path: f.path, stat: f.stat, closed: true}
	return nil
}

func (f *File) closedError(op string) error {
	return &os.PathError{Op: op, Path: f.path, Err: os.ErrClosed}
}

// remaining returns how many bytes a read of n bytes at off may return.
func (f *File) remaining(off int64, n int) uint32 {
	left := f.stat.Size() - off
	if int64(n) < left {
		left = int64(n)
	}
	return uint32(left)
}

// Read reads the next bytes of the file. Consecutive reads continue the cluster walk of the
// previous one instead of starting over at the first cluster.
func (f *File) Read(p []byte) (n int, err error) {
	if f.closed {
		return 0, f.closedError("read")
	}
	if len(p) == 0 {
		return 0, nil
	}
	if f.stat.IsDir() {
		return 0, &os.PathError{Op: "read", Path: f.path, Err: syscall.EISDIR}
	}

	// Reading a file if the size has been already reached, makes no sense.
	if f.stat.Size() <= f.offset {
		return 0, io.EOF
	}

	n, err = f.vol.ReadChunk(f.entry, p, uint32(f.offset), f.remaining(f.offset, len(p)), &f.cursor)
	f.offset += int64(n)

	if err != nil {
		return n, checkpoint.Wrap(err, ErrReadFile)
	}
	if n == 0 {
		return 0, checkpoint.Wrap(fmt.Errorf("%q stops at offset %d", f.path, f.offset), ErrUnexpectedEndOfChain)
	}
	return n, nil
}

// ReadAt reads len(p) bytes at off without moving the file offset.
// It returns io.EOF if the file ends before p is full.
func (f *File) ReadAt(p []byte, off int64) (n int, err error) {
	if f.closed {
		return 0, f.closedError("read")
	}
	if len(p) == 0 {
		return 0, nil
	}
	if f.stat.IsDir() {
		return 0, &os.PathError{Op: "read", Path: f.path, Err: syscall.EISDIR}
	}
	if off < 0 {
		return 0, checkpoint.Wrap(fmt.Errorf("%w, offset: %v", syscall.EINVAL, off), ErrReadFile)
	}

	// Reading over the end makes no sense.
	if f.stat.Size() <= off {
		return 0, io.EOF
	}

	n, err = f.vol.ReadChunk(f.entry, p, uint32(off), f.remaining(off, len(p)), nil)
	if err != nil {
		return n, checkpoint.Wrap(err, ErrReadFile)
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Seek jumps to a specific offset in the file. This affects all Read operation except ReadAt.
// May return a syscall.EINVAL error if the whence value is invalid.
// May return an afero.ErrOutOfRange error if the offset is out of range.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, f.closedError("seek")
	}
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset = f.offset + offset
	case io.SeekEnd:
		offset = f.stat.Size() + offset
	default:
		return 0, checkpoint.Wrap(fmt.Errorf("%w, offset: %v, whence: %v", syscall.EINVAL, offset, whence), ErrSeekFile)
	}

	if offset < 0 || offset > f.stat.Size() {
		return 0, checkpoint.Wrap(fmt.Errorf("%w, offset: %v, whence: %v", afero.ErrOutOfRange, offset, whence), ErrSeekFile)
	}

	f.offset = offset
	return offset, nil
}

func (f *File) Write(p []byte) (n int, err error) {
	return 0, readOnlyError("write", f.path)
}

func (f *File) WriteAt(p []byte, off int64) (n int, err error) {
	return 0, readOnlyError("write", f.path)
}

func (f *File) WriteString(s string) (ret int, err error) {
	return f.Write([]byte(s))
}

func (f *File) Truncate(size int64) error {
	return readOnlyError("truncate", f.path)
}

// Sync has nothing to flush on a read-only volume.
func (f *File) Sync() error {
	return nil
}

func (f *File) Name() string {
	return f.stat.Name()
}

func (f *File) Stat() (os.FileInfo, error) {
	if f.closed {
		return nil, f.closedError("stat")
	}
	return f.stat, nil
}

// Readdir reads the contents of the root directory.
// With count > 0 it returns at most count entries and io.EOF once nothing is left,
// otherwise it returns all remaining entries.
// May return syscall.ENOTDIR if the current File is no directory.
func (f *File) Readdir(count int) ([]os.FileInfo, error) {
	if f.closed {
		return nil, f.closedError("readdir")
	}
	if !f.isRoot {
		if f.entry.IsDir() {
			return nil, checkpoint.Wrap(errors.New("subdirectories are not supported"), ErrReadDir)
		}
		return nil, checkpoint.Wrap(syscall.ENOTDIR, ErrReadDir)
	}

	content := f.vol.ReadDir().Entries()

	start := int(f.offset)
	if start > len(content) {
		start = len(content)
	}
	end := len(content)
	if count > 0 {
		if start == end {
			return nil, io.EOF
		}
		if start+count < end {
			end = start + count
		}
	}
	f.offset = int64(end)

	result := make([]os.FileInfo, 0, end-start)
	for _, e := range content[start:end] {
		result = append(result, entryFileInfo{entry: e})
	}
	return result, nil
}

func (f *File) Readdirnames(count int) ([]string, error) {
	content, err := f.Readdir(count)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(content))
	for i, entry := range content {
		names[i] = entry.Name()
	}
	return names, nil
}
