package fat12

import (
	iofs "io/fs"

	"github.com/spf13/afero"
)

// IOFS returns the volume as an io/fs.FS, for use with fs.ReadFile, fs.WalkDir,
// http.FS and friends.
func (fs *Fs) IOFS() iofs.FS {
	return afero.NewIOFS(fs)
}
