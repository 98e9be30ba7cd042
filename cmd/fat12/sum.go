package main

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/flashdump/fat12"
)

var (
	sumAppend string
	sumVerify bool
	sumHost   bool
)

// trailerSize is the length of the hex checksum appended to firmware files.
const trailerSize = 8

// createSumCommand creates the sum subcommand
func createSumCommand() *cobra.Command {
	sumCmd := &cobra.Command{
		Use:   "sum [flags] NAME",
		Short: "prints the CRC32 of a file",
		Long: `Sum prints the IEEE CRC32 of a file of the root directory as 8
upper-case hex digits.

With --append the digits are appended to a file on the host, the way
firmware files are stamped before they are written to the flash. With
--verify the last 8 bytes of the file are taken as such a stamp and
checked against the CRC32 of the bytes before them.

With --host NAME is a file on the host instead. Its checksum is appended
to the file itself, which stamps a firmware file before it is flashed.
No image is needed then. --host --verify checks such a stamp.`,
		Args: cobra.ExactArgs(1),
		RunE: executeSum,
	}

	sumCmd.Flags().StringVar(&sumAppend, "append", "", "append the checksum to this host file")
	sumCmd.Flags().BoolVar(&sumVerify, "verify", false, "check the checksum stamped at the end of the file")
	sumCmd.Flags().BoolVar(&sumHost, "host", false, "NAME is a host file, stamp it with its own checksum")
	sumCmd.MarkFlagsMutuallyExclusive("host", "append")

	return sumCmd
}

func executeSum(cmd *cobra.Command, args []string) error {
	name := args[0]
	if sumHost {
		return executeHostSum(cmd, name)
	}

	vol, err := openVolume()
	if err != nil {
		return err
	}
	stream, err := vol.OpenStream(name, cfg.ChunkSize)
	if err != nil {
		return err
	}

	if sumVerify {
		return verifyTrailer(cmd, stream)
	}

	h := crc32.NewIEEE()
	if _, err := stream.WriteTo(h); err != nil {
		return err
	}
	sum := fmt.Sprintf("%08X", h.Sum32())
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", sum, name)

	if sumAppend != "" {
		if err := appendChecksum(sumAppend, sum); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "CRC appended to %s\n", sumAppend)
	}
	return nil
}

func appendChecksum(path, sum string) (err error) {
	f, err := appFs.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if _, err := f.WriteString(sum); err != nil {
		return fmt.Errorf("append to %s: %w", path, err)
	}
	return nil
}

func verifyTrailer(cmd *cobra.Command, stream *fat12.Stream) error {
	name := stream.Entry().Name
	size := stream.Entry().Size
	if size < trailerSize {
		return fmt.Errorf("%s has %d bytes, too short for a checksum", name, size)
	}

	h := crc32.NewIEEE()
	trailer := make([]byte, 0, trailerSize)
	for {
		chunk, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		// Bytes at or behind size-8 belong to the trailer.
		start := stream.Offset() - uint32(len(chunk))
		body := chunk
		if end := size - trailerSize; stream.Offset() > end {
			cut := uint32(0)
			if end > start {
				cut = end - start
			}
			body = chunk[:cut]
			trailer = append(trailer, chunk[cut:]...)
		}
		_, _ = h.Write(body)
	}

	want := fmt.Sprintf("%08X", h.Sum32())
	if string(trailer) != want {
		return fmt.Errorf("%s: stamped checksum %q does not match %s", name, trailer, want)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s OK\n", want, name)
	return nil
}

// executeHostSum stamps or verifies a file of the host.
func executeHostSum(cmd *cobra.Command, path string) error {
	if sumVerify {
		data, err := afero.ReadFile(appFs, path)
		if err != nil {
			return err
		}
		if len(data) < trailerSize {
			return fmt.Errorf("%s has %d bytes, too short for a checksum", path, len(data))
		}
		body, trailer := data[:len(data)-trailerSize], data[len(data)-trailerSize:]
		want := fmt.Sprintf("%08X", crc32.ChecksumIEEE(body))
		if string(trailer) != want {
			return fmt.Errorf("%s: stamped checksum %q does not match %s", path, trailer, want)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s OK\n", want, path)
		return nil
	}

	sum, err := hostChecksum(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", sum, path)

	if err := appendChecksum(path, sum); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "CRC appended to %s\n", path)
	return nil
}

func hostChecksum(path string) (sum string, err error) {
	f, err := appFs.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	h := crc32.NewIEEE()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return fmt.Sprintf("%08X", h.Sum32()), nil
}
