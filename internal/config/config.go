// Package config holds the settings of the fat12 tool.
//
// Settings come from an optional YAML file and are overridden by command-line flags:
//
//	image: flash.img.zst
//	partition: 0
//	chunk_size: 512
//	listen: 127.0.0.1:8080
//	log_level: info
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/spf13/afero"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// MaxChunkSize bounds the chunk size of streamed reads.
const MaxChunkSize = 1 << 20

// Config holds the settings of one run.
type Config struct {
	// Image is the path of the flash dump, optionally compressed.
	Image string `yaml:"image"`
	// Partition selects a partition of a disk image, counted from 1. 0 means the image is the volume.
	Partition int `yaml:"partition"`
	// ChunkSize is the number of bytes handed out per streamed chunk.
	ChunkSize int `yaml:"chunk_size"`
	// Listen is the address of the HTTP server.
	Listen string `yaml:"listen"`
	// LogLevel is a zap level name.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ChunkSize: 512,
		Listen:    "127.0.0.1:8080",
		LogLevel:  "info",
	}
}

// Load reads the YAML file at path from afs on top of the defaults.
// Unknown keys are rejected so typos do not go unnoticed.
func Load(afs afero.Fs, path string) (Config, error) {
	cfg := Default()

	data, err := afero.ReadFile(afs, path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the settings for values no command can work with.
func (c Config) Validate() error {
	if c.Partition < 0 {
		return fmt.Errorf("partition must not be negative, got %d", c.Partition)
	}
	if c.ChunkSize <= 0 || c.ChunkSize > MaxChunkSize {
		return fmt.Errorf("chunk_size must be between 1 and %d, got %d", MaxChunkSize, c.ChunkSize)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Listen != "" {
		if _, _, err := net.SplitHostPort(c.Listen); err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}
	return nil
}

// Marshal renders the settings as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
