// Package listing turns the root directory of a volume into rows for people and programs.
package listing

import (
	"strings"
	"time"

	"github.com/flashdump/fat12"
)

// File is one row of a directory listing.
type File struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
	Size  uint32 `json:"size" yaml:"size"`
	// Offset is the position of the file data in the image. Empty files have none.
	Offset     string    `json:"offset,omitempty" yaml:"offset,omitempty"`
	Attributes string    `json:"attributes" yaml:"attributes"`
	Modified   time.Time `json:"modified,omitempty" yaml:"modified,omitempty"`
}

// Files lists the root directory of v.
func Files(v *fat12.Volume) []File {
	entries := v.ReadDir().Entries()
	files := make([]File, 0, len(entries))
	for _, e := range entries {
		f := File{
			Index:      e.Index,
			Name:       e.Name,
			Size:       e.Size,
			Attributes: Attributes(e.Attribute),
			Modified:   e.FileInfo().ModTime(),
		}
		if e.Size > 0 {
			if off, err := v.Resolve(e.Location); err == nil {
				f.Offset = off.String()
			}
		}
		files = append(files, f)
	}
	return files
}

// Attributes renders the attribute byte DOS style, e.g. "A---R" for archive and read-only.
// The letters are archive, directory, system, hidden and read-only.
func Attributes(attr byte) string {
	flags := []struct {
		bit    byte
		letter byte
	}{
		{fat12.AttrArchive, 'A'},
		{fat12.AttrDirectory, 'D'},
		{fat12.AttrSystem, 'S'},
		{fat12.AttrHidden, 'H'},
		{fat12.AttrReadOnly, 'R'},
	}

	var b strings.Builder
	for _, f := range flags {
		if attr&f.bit != 0 {
			b.WriteByte(f.letter)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
