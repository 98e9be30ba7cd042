package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// checkFormat returns a PreRunE rejecting unknown --format values.
func checkFormat(format *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		switch *format {
		case "text", "json", "yaml":
			return nil
		default:
			return fmt.Errorf("unsupported --format %q (supported: text, json, yaml)", *format)
		}
	}
}

// writeStructured renders v as json or yaml.
func writeStructured(out io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(b))
		return nil

	case "yaml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, _ = fmt.Fprint(out, string(b))
		return nil

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
