package fat12

import (
	"os"
	"time"
)

// FileInfo returns the os.FileInfo view of e.
func (e Entry) FileInfo() os.FileInfo {
	return entryFileInfo{entry: e}
}

type entryFileInfo struct {
	entry Entry
}

func (e entryFileInfo) Name() string {
	return e.entry.Name
}

func (e entryFileInfo) Size() int64 {
	return int64(e.entry.Size)
}

func (e entryFileInfo) Mode() os.FileMode {
	if e.IsDir() {
		return os.ModeDir | 0o555
	}
	return 0o444
}

func (e entryFileInfo) ModTime() time.Time {
	return modTime(e.entry.WriteDate, e.entry.WriteTime)
}

func (e entryFileInfo) IsDir() bool {
	return e.entry.IsDir()
}

// Sys returns the Entry.
func (e entryFileInfo) Sys() interface{} {
	return e.entry
}

// rootFileInfo describes the root directory, which has no directory slot of its own.
type rootFileInfo struct{}

func (rootFileInfo) Name() string       { return "." }
func (rootFileInfo) Size() int64        { return 0 }
func (rootFileInfo) Mode() os.FileMode  { return os.ModeDir | 0o555 }
func (rootFileInfo) ModTime() time.Time { return time.Time{} }
func (rootFileInfo) IsDir() bool        { return true }
func (rootFileInfo) Sys() interface{}   { return nil }
