package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/flashdump/fat12/internal/logger"
	"github.com/flashdump/fat12/internal/server"
)

var serveListen string

// createServeCommand creates the serve subcommand
func createServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve [flags]",
		Short: "serves the files of the volume over HTTP",
		Long: `Serve answers GET /files/NAME with the content of the file, sent in
chunked transfer encoding one chunk per streamed read. GET /files lists the
root directory and GET /volume describes the volume, both as JSON.`,
		Args: cobra.NoArgs,
		RunE: executeServe,
	}

	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "address to listen on (default 127.0.0.1:8080)")

	return serveCmd
}

func executeServe(cmd *cobra.Command, args []string) error {
	vol, err := openVolume()
	if err != nil {
		return err
	}

	addr := cfg.Listen
	if cmd.Flags().Changed("listen") {
		addr = serveListen
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(vol, cfg.ChunkSize, logger.Logger()).ListenAndServe(ctx, addr)
}
