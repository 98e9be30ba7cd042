package fat12

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/flashdump/fat12/internal/fat12test"
)

func TestVolume_LoadFile(t *testing.T) {
	sizes := []int{0, 1, 100, ClusterSize - 1, ClusterSize, ClusterSize + 1, 3*ClusterSize + 123}

	for _, stride := range []int{1, 3} {
		img := fat12test.New(fat12test.Options{Stride: stride, DataClusters: 64})
		files := make(map[string][]byte)
		for i, size := range sizes {
			name := fmt.Sprintf("F%d", i)
			files[name+".BIN"] = fat12test.Pattern(size, byte(i))
			img.AddFile(name, "BIN", files[name+".BIN"])
		}
		v := testingVolume(t, img)

		for name, want := range files {
			t.Run(fmt.Sprintf("stride %d %s %d bytes", stride, name, len(want)), func(t *testing.T) {
				p := make([]byte, len(want)+10)
				n, err := v.LoadFile(name, p)
				if err != nil {
					t.Fatalf("LoadFile() error = %v", err)
				}
				if n != len(want) {
					t.Fatalf("LoadFile() = %d, want %d", n, len(want))
				}
				if !bytes.Equal(p[:n], want) {
					t.Error("LoadFile() returned wrong content")
				}
				if !bytes.Equal(p[n:], make([]byte, 10)) {
					t.Error("LoadFile() wrote past the file")
				}
			})
		}
	}
}

func TestVolume_LoadFileNotFound(t *testing.T) {
	img := fat12test.New(fat12test.Options{})
	img.AddFile("README", "TXT", []byte("hello"))
	v := testingVolume(t, img)

	p := bytes.Repeat([]byte{0xAA}, 16)
	n, err := v.LoadFile("MISSING.TXT", p)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadFile() error = %v, want ErrNotFound", err)
	}
	if n != 0 {
		t.Errorf("LoadFile() = %d, want 0", n)
	}
	if !bytes.Equal(p, bytes.Repeat([]byte{0xAA}, 16)) {
		t.Error("LoadFile() touched the buffer")
	}
}

func TestVolume_LoadFileBufferTooSmall(t *testing.T) {
	img := fat12test.New(fat12test.Options{})
	img.AddFile("BIG", "BIN", fat12test.Pattern(ClusterSize+1, 1))
	v := testingVolume(t, img)

	p := make([]byte, ClusterSize)
	n, err := v.LoadFile("BIG.BIN", p)
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("LoadFile() error = %v, want ErrBufferTooSmall", err)
	}
	if n != 0 {
		t.Errorf("LoadFile() = %d, want 0", n)
	}
	if !bytes.Equal(p, make([]byte, ClusterSize)) {
		t.Error("LoadFile() touched the buffer")
	}

	// A buffer of exactly the file size is enough.
	if _, err := v.LoadFile("BIG.BIN", make([]byte, ClusterSize+1)); err != nil {
		t.Errorf("LoadFile() error = %v", err)
	}
}

func TestVolume_LoadFileShortChain(t *testing.T) {
	img := fat12test.New(fat12test.Options{})
	data := fat12test.Pattern(3*ClusterSize, 7)
	clusters := img.Allocate(len(data))
	img.WriteChain(data, clusters)
	// The directory claims more than the two clusters the chain has left.
	img.SetFAT(clusters[1], fat12test.EndOfChain)
	img.AddEntry(fat12test.Entry{Name: "SHORT", Ext: "BIN", Cluster: clusters[0], Size: uint32(len(data))})
	v := testingVolume(t, img)

	p := make([]byte, len(data))
	n, err := v.LoadFile("SHORT.BIN", p)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if n != 2*ClusterSize {
		t.Errorf("LoadFile() = %d, want %d", n, 2*ClusterSize)
	}
	if !bytes.Equal(p[:n], data[:n]) {
		t.Error("LoadFile() returned wrong content")
	}
}

func TestVolume_LoadFileOutsideImage(t *testing.T) {
	img := fat12test.New(fat12test.Options{})
	img.AddEntry(fat12test.Entry{Name: "FAR", Ext: "BIN", Cluster: 0xF00, Size: 10})
	img.AddEntry(fat12test.Entry{Name: "ZERO", Ext: "BIN", Cluster: 0, Size: 10})
	v := testingVolume(t, img)

	if _, err := v.LoadFile("FAR.BIN", make([]byte, 10)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("LoadFile(FAR.BIN) error = %v, want ErrOutOfBounds", err)
	}
	if _, err := v.LoadFile("ZERO.BIN", make([]byte, 10)); !errors.Is(err, ErrInvalidCluster) {
		t.Errorf("LoadFile(ZERO.BIN) error = %v, want ErrInvalidCluster", err)
	}
}
