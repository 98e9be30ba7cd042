package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/flashdump/fat12/internal/listing"
)

var lsFormat = "text"

// createLsCommand creates the ls subcommand
func createLsCommand() *cobra.Command {
	lsCmd := &cobra.Command{
		Use:   "ls",
		Short: "lists the files of the root directory",
		Long: `Ls lists every file of the root directory with its index, 8.3 name,
size and the position of its data in the image.`,
		Args:    cobra.NoArgs,
		PreRunE: checkFormat(&lsFormat),
		RunE:    executeLs,
	}

	lsCmd.Flags().StringVar(&lsFormat, "format", "text", "output format: text, json or yaml")

	return lsCmd
}

func executeLs(cmd *cobra.Command, args []string) error {
	vol, err := openVolume()
	if err != nil {
		return err
	}

	files := listing.Files(vol)
	if lsFormat != "text" {
		return writeStructured(cmd.OutOrStdout(), lsFormat, files)
	}
	printListing(cmd.OutOrStdout(), vol.Label(), files)
	return nil
}

func printListing(w io.Writer, label string, files []listing.File) {
	if label != "" {
		fmt.Fprintf(w, "Volume %s\n\n", label)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tNAME\tSIZE\tATTR\tLOCATION")

	var total uint64
	for _, f := range files {
		location := f.Offset
		if location == "" {
			location = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", f.Index, f.Name, f.Size, f.Attributes, location)
		total += uint64(f.Size)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\n%d files, %s\n", len(files), humanize.IBytes(total))
}
