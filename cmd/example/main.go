package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/flashdump/fat12"
)

// main is just a example main to play with the afero view of a flash dump.
func main() {
	argsWithoutProg := os.Args[1:]
	if len(argsWithoutProg) <= 0 {
		fmt.Println("Please provide a flash dump.")
		os.Exit(1)
	}

	vol, err := fat12.OpenImage(afero.NewOsFs(), argsWithoutProg[0])
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fat := fat12.New(vol)

	fmt.Printf("Opened volume '%v' with type %v\n\n", vol.Label(), vol.BootRecord().FileSystemType)

	var first string
	err = afero.Walk(fat, "", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		fmt.Println(path, info.Size(), info.ModTime())
		if first == "" && !info.IsDir() && info.Size() > 0 {
			first = path
		}
		return nil
	})
	if err != nil {
		fmt.Println("could not walk the volume", err)
		os.Exit(1)
	}
	if first == "" {
		fmt.Println("the volume holds no file with content")
		return
	}

	file, err := fat.Open(first)
	if err != nil {
		fmt.Println("could not open", first, err)
		os.Exit(1)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		fmt.Println("could not stat the file", err)
		os.Exit(1)
	}
	buffer, err := io.ReadAll(file)
	if err != nil {
		fmt.Println("could not read the file", err)
		os.Exit(1)
	}
	fmt.Println(stat.Size(), len(buffer))

	// Jump into the middle of the file and read a small piece, possibly from another cluster.
	offset, err := file.Seek(stat.Size()/2, io.SeekStart)
	if err != nil {
		fmt.Println("could not seek", err)
		os.Exit(1)
	}
	buffer = make([]byte, 52)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		fmt.Println("could not read the file", err)
		os.Exit(1)
	}
	fmt.Printf("\n\n%d bytes of %s at offset %d:\n\n%q\n", n, stat.Name(), offset, buffer[:n])
}
