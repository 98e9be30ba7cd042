package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	flag "github.com/spf13/pflag"
	"github.com/ulikunitz/xz"

	"github.com/flashdump/fat12/internal/fat12test"
)

// main writes a sample flash image to play with. Can be executed using 'go generate' from the project root.
// The output is compressed according to its extension: .gz, .zst or .xz.
func main() {
	out := flag.StringP("output", "o", "testdata/flash.bin", "image to write")
	label := flag.String("label", "WEBROOT", "volume label")
	flag.Parse()

	img := fat12test.New(fat12test.Options{Stride: 2, Label: *label, VolumeID: 0x20240601, DataClusters: 64})
	img.AddFile("INDEX", "HTM", page("index", 6000))
	img.AddFile("WSCLI", "HTM", page("wscli", 10054))
	img.AddFile("STYLE", "CSS", []byte("body { font-family: sans-serif; }\n"))
	img.AddFile("EMPTY", "TXT", nil)
	img.AddEntry(fat12test.Entry{Name: "OLD", Ext: "HTM", Marker: 0xE5})

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		panic(err)
	}
	f, err := os.OpenFile(*out, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		panic(err)
	}

	w, err := compress(*out, f)
	if err != nil {
		panic(err)
	}
	if _, err := w.Write(img.Bytes()); err != nil {
		panic(err)
	}

	// Close the compressor before the file so the trailer is written.
	if err := w.Close(); err != nil {
		panic(err)
	}
	if w != io.WriteCloser(f) {
		if err := f.Close(); err != nil {
			panic(err)
		}
	}
	fmt.Printf("wrote %s\n", *out)
}

func compress(name string, f *os.File) (io.WriteCloser, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		return gzip.NewWriter(f), nil
	case ".zst", ".zstd":
		return zstd.NewWriter(f)
	case ".xz":
		return xz.NewWriter(f)
	default:
		return f, nil
	}
}

// page returns an HTML page of exactly size bytes.
func page(title string, size int) []byte {
	head := fmt.Sprintf("<html><head><title>%s</title></head><body>\n", title)
	tail := "</body></html>\n"
	var b strings.Builder
	b.WriteString(head)
	for line := 0; b.Len() < size-len(tail); line++ {
		b.WriteString(fmt.Sprintf("<p>line %d</p>\n", line))
	}
	s := b.String()
	if len(s) > size-len(tail) {
		s = s[:size-len(tail)]
	}
	return []byte(s + tail)
}
