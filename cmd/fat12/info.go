package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/flashdump/fat12"
)

var infoFormat = "text"

// volumeSummary is what info reports about a volume.
type volumeSummary struct {
	Image          string         `json:"image" yaml:"image"`
	SizeBytes      int64          `json:"sizeBytes" yaml:"sizeBytes"`
	Label          string         `json:"label,omitempty" yaml:"label,omitempty"`
	OEMName        string         `json:"oemName,omitempty" yaml:"oemName,omitempty"`
	VolumeID       string         `json:"volumeId,omitempty" yaml:"volumeId,omitempty"`
	FileSystemType string         `json:"fileSystemType,omitempty" yaml:"fileSystemType,omitempty"`
	Files          int            `json:"files" yaml:"files"`
	Geometry       fat12.Geometry `json:"geometry" yaml:"geometry"`
}

// createInfoCommand creates the info subcommand
func createInfoCommand() *cobra.Command {
	infoCmd := &cobra.Command{
		Use:     "info",
		Short:   "shows the boot parameter block and the volume label",
		Args:    cobra.NoArgs,
		PreRunE: checkFormat(&infoFormat),
		RunE:    executeInfo,
	}

	infoCmd.Flags().StringVar(&infoFormat, "format", "text", "output format: text, json or yaml")

	return infoCmd
}

func executeInfo(cmd *cobra.Command, args []string) error {
	vol, err := openVolume()
	if err != nil {
		return err
	}

	boot := vol.BootRecord()
	summary := volumeSummary{
		Image:          cfg.Image,
		SizeBytes:      vol.Size(),
		Label:          vol.Label(),
		OEMName:        boot.OEMName,
		FileSystemType: boot.FileSystemType,
		Files:          vol.ReadDir().Len(),
		Geometry:       vol.Geometry(),
	}
	if boot.Extended {
		summary.VolumeID = fmt.Sprintf("%04X-%04X", boot.VolumeID>>16, boot.VolumeID&0xFFFF)
	}

	if infoFormat != "text" {
		return writeStructured(cmd.OutOrStdout(), infoFormat, summary)
	}
	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

func printSummary(w io.Writer, s volumeSummary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	g := s.Geometry

	fmt.Fprintf(tw, "Image:\t%s\n", s.Image)
	fmt.Fprintf(tw, "Size:\t%s (%d bytes)\n", humanize.IBytes(uint64(s.SizeBytes)), s.SizeBytes)
	fmt.Fprintf(tw, "Label:\t%s\n", s.Label)
	fmt.Fprintf(tw, "OEM name:\t%s\n", s.OEMName)
	fmt.Fprintf(tw, "Volume ID:\t%s\n", s.VolumeID)
	fmt.Fprintf(tw, "File system type:\t%s\n", s.FileSystemType)
	fmt.Fprintf(tw, "Files:\t%d\n", s.Files)
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Bytes per block:\t%d\n", g.BytesPerBlock)
	fmt.Fprintf(tw, "Blocks per cluster:\t%d\n", g.BlocksPerCluster)
	fmt.Fprintf(tw, "Reserved blocks:\t%d\n", g.ReservedBlocks)
	fmt.Fprintf(tw, "FATs:\t%d\n", g.FATCount)
	fmt.Fprintf(tw, "Root directory entries:\t%d\n", g.RootDirEntryCount)
	fmt.Fprintf(tw, "Total blocks:\t%d\n", g.TotalBlocks)
	fmt.Fprintf(tw, "Blocks per FAT:\t%d\n", g.BlocksPerFAT)
	fmt.Fprintf(tw, "Root directory block:\t%d\n", g.RootDirStartBlock)
	fmt.Fprintf(tw, "Root directory blocks:\t%d\n", g.RootDirBlockCount)
	fmt.Fprintf(tw, "Data start block:\t%d\n", g.DataStartBlock)
	fmt.Fprintf(tw, "Cluster size:\t%d\n", fat12.ClusterSize)
	_ = tw.Flush()
}
