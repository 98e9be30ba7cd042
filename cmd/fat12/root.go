package main

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/flashdump/fat12"
	"github.com/flashdump/fat12/internal/config"
	"github.com/flashdump/fat12/internal/logger"
	"github.com/flashdump/fat12/internal/partition"
)

// Global command flags
var (
	configFile string
	imageFile  string
	partNumber int
	chunkSize  int
	logLevel   string
)

// cfg holds the settings of the running command after flags and config file are merged.
var cfg = config.Default()

// appFs is where images, config files and extracted files live. Tests swap it.
var appFs afero.Fs = afero.NewOsFs()

// createRootCommand creates the fat12 command with all subcommands
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fat12",
		Short: "Reads files from FAT12 flash dumps",
		Long: `fat12 reads the root directory of a FAT12 volume with 4096 byte clusters,
as found on the flash of small web-serving devices. The image may be
compressed (.gz, .zst, .xz) or be a partition of a disk image.`,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "YAML config file")
	flags.StringVarP(&imageFile, "image", "i", "", "flash dump to read")
	flags.IntVarP(&partNumber, "partition", "p", 0, "partition of a disk image holding the volume, 0 for a plain volume")
	flags.IntVar(&chunkSize, "chunk-size", 0, "bytes per streamed chunk (default 512)")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (default info)")

	rootCmd.AddCommand(createLsCommand())
	rootCmd.AddCommand(createInfoCommand())
	rootCmd.AddCommand(createCatCommand())
	rootCmd.AddCommand(createGetCommand())
	rootCmd.AddCommand(createSumCommand())
	rootCmd.AddCommand(createServeCommand())
	rootCmd.AddCommand(createConfigCommand())

	return rootCmd
}

// loadConfig merges the config file and the command line flags into cfg and sets up logging.
func loadConfig(cmd *cobra.Command, args []string) error {
	c := config.Default()
	if configFile != "" {
		var err error
		c, err = config.Load(appFs, configFile)
		if err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("image") {
		c.Image = imageFile
	}
	if flags.Changed("partition") {
		c.Partition = partNumber
	}
	if flags.Changed("chunk-size") {
		c.ChunkSize = chunkSize
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logger.Init(c.LogLevel, cmd.ErrOrStderr()); err != nil {
		return err
	}
	cfg = c
	return nil
}

// openVolume loads the configured image and cuts out the configured partition.
func openVolume() (*fat12.Volume, error) {
	log := logger.Logger()

	if cfg.Image == "" {
		return nil, errors.New("no image given, use --image or the image key of the config file")
	}

	data, err := fat12.LoadImage(appFs, cfg.Image)
	if err != nil {
		return nil, err
	}
	log.Debugf("loaded %s, %d bytes", cfg.Image, len(data))

	if cfg.Partition > 0 {
		extent, err := partition.Locate(data, cfg.Partition)
		if err != nil {
			return nil, fmt.Errorf("partition %d of %s: %w", cfg.Partition, cfg.Image, err)
		}
		data, err = partition.Slice(data, extent)
		if err != nil {
			return nil, err
		}
		log.Infof("using partition %d at offset %d", extent.Index, extent.Offset)
	}

	return fat12.NewVolume(data), nil
}
