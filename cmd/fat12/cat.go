package main

import (
	"encoding/hex"

	"github.com/spf13/cobra"

	"github.com/flashdump/fat12/internal/logger"
)

var catHex bool

// createCatCommand creates the cat subcommand
func createCatCommand() *cobra.Command {
	catCmd := &cobra.Command{
		Use:   "cat [flags] NAME",
		Short: "prints a file",
		Long: `Cat streams a file of the root directory to standard output chunk by
chunk, the way the device hands it out. NAME is the 8.3 name as shown
by ls, e.g. INDEX.HTM.`,
		Args: cobra.ExactArgs(1),
		RunE: executeCat,
	}

	catCmd.Flags().BoolVarP(&catHex, "hex", "x", false, "print a hex dump instead of the raw bytes")

	return catCmd
}

func executeCat(cmd *cobra.Command, args []string) (err error) {
	vol, err := openVolume()
	if err != nil {
		return err
	}

	stream, err := vol.OpenStream(args[0], cfg.ChunkSize)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if catHex {
		dumper := hex.Dumper(out)
		defer func() {
			if cerr := dumper.Close(); err == nil {
				err = cerr
			}
		}()
		out = dumper
	}

	n, err := stream.WriteTo(out)
	logger.Logger().Debugf("wrote %d bytes of %s", n, args[0])
	return err
}
