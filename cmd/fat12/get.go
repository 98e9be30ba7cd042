package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/flashdump/fat12/internal/logger"
)

var getQuiet bool

// createGetCommand creates the get subcommand
func createGetCommand() *cobra.Command {
	getCmd := &cobra.Command{
		Use:   "get [flags] NAME [DEST]",
		Short: "extracts a file to the host",
		Long: `Get copies a file of the root directory to DEST, which defaults to NAME
in the current directory. If DEST is a directory the file is placed in it.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: executeGet,
	}

	getCmd.Flags().BoolVarP(&getQuiet, "quiet", "q", false, "do not show a progress bar")

	return getCmd
}

func executeGet(cmd *cobra.Command, args []string) (err error) {
	log := logger.Logger()
	name := args[0]

	vol, err := openVolume()
	if err != nil {
		return err
	}
	stream, err := vol.OpenStream(name, cfg.ChunkSize)
	if err != nil {
		return err
	}

	dest := name
	if len(args) == 2 {
		dest = args[1]
		if fi, err := appFs.Stat(dest); err == nil && fi.IsDir() {
			dest = filepath.Join(dest, name)
		}
	}

	f, err := appFs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	var w io.Writer = f
	if !getQuiet {
		bar := progressbar.NewOptions64(int64(stream.Entry().Size),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription(name),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowBytes(true),
			progressbar.OptionThrottle(200*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
		defer func() {
			if ferr := bar.Finish(); ferr != nil {
				log.Warnf("failed to finish progress bar: %v", ferr)
			}
		}()
		w = io.MultiWriter(f, bar)
	}

	n, err := stream.WriteTo(w)
	if err != nil {
		return fmt.Errorf("extract %s: %w", name, err)
	}

	log.Infof("extracted %s to %s, %d bytes", name, dest, n)
	return nil
}
