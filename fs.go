package fat12

import (
	"os"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/afero"

	"github.com/flashdump/fat12/checkpoint"
)

// Fs exposes the root directory of a Volume as a read-only afero.Fs.
// Paths name files of the root directory, with or without a leading slash.
// Every modifying operation fails with an error matching ErrReadOnly and syscall.EPERM.
type Fs struct {
	vol *Volume
}

var _ afero.Fs = (*Fs)(nil)

// New returns the afero view of vol.
func New(vol *Volume) *Fs {
	return &Fs{vol: vol}
}

// Volume returns the volume behind the filesystem.
func (fs *Fs) Volume() *Volume {
	return fs.vol
}

// cleanPath turns a path into the name of a root directory entry. The root itself is "".
func cleanPath(name string) string {
	name = path.Clean("/" + strings.ReplaceAll(name, "\\", "/"))
	return strings.TrimPrefix(name, "/")
}

func (fs *Fs) Open(name string) (afero.File, error) {
	return fs.open(name)
}

func (fs *Fs) open(name string) (*File, error) {
	p := cleanPath(name)
	if p == "" {
		return &File{
			vol:    fs.vol,
			path:   "",
			isRoot: true,
			stat:   rootFileInfo{},
		}, nil
	}

	// Only the root directory is supported, so every valid path is a single name.
	if strings.Contains(p, "/") {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}

	e, ok := fs.vol.ReadDir().Lookup(p)
	if !ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: checkpoint.Wrap(os.ErrNotExist, ErrNotFound)}
	}

	return &File{
		vol:   fs.vol,
		path:  p,
		entry: e,
		stat:  entryFileInfo{entry: e},
	}, nil
}

// OpenFile opens a file for reading. Any flag asking for write access fails.
func (fs *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_APPEND|os.O_CREATE|os.O_TRUNC) != 0 {
		return nil, readOnlyError("open", name)
	}
	return fs.open(name)
}

func (fs *Fs) Stat(name string) (os.FileInfo, error) {
	f, err := fs.open(name)
	if err != nil {
		return nil, err
	}
	return f.Stat()
}

func (fs *Fs) Name() string {
	return "fat12"
}

func readOnlyError(op, name string) error {
	return &os.PathError{Op: op, Path: name, Err: checkpoint.Wrap(syscall.EPERM, ErrReadOnly)}
}

func (fs *Fs) Create(name string) (afero.File, error) {
	return nil, readOnlyError("create", name)
}

func (fs *Fs) Mkdir(name string, perm os.FileMode) error {
	return readOnlyError("mkdir", name)
}

func (fs *Fs) MkdirAll(path string, perm os.FileMode) error {
	return readOnlyError("mkdir", path)
}

func (fs *Fs) Remove(name string) error {
	return readOnlyError("remove", name)
}

func (fs *Fs) RemoveAll(path string) error {
	return readOnlyError("remove", path)
}

func (fs *Fs) Rename(oldname, newname string) error {
	return readOnlyError("rename", oldname)
}

func (fs *Fs) Chmod(name string, mode os.FileMode) error {
	return readOnlyError("chmod", name)
}

func (fs *Fs) Chown(name string, uid, gid int) error {
	return readOnlyError("chown", name)
}

func (fs *Fs) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return readOnlyError("chtimes", name)
}
