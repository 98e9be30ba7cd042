// Command fat12 reads FAT12 flash dumps: it lists the root directory, prints and extracts
// files, checksums them and serves them over HTTP.
package main

import (
	"os"

	"github.com/flashdump/fat12/internal/logger"
)

func main() {
	err := createRootCommand().Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
