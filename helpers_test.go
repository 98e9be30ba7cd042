package fat12

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/flashdump/fat12/internal/fat12test"
)

// testingVolume opens the image built so far, logging to the test log.
func testingVolume(t *testing.T, img *fat12test.Image) *Volume {
	t.Helper()
	return NewVolume(img.Bytes(), WithLogger(zaptest.NewLogger(t).Sugar()))
}

// testingEntry looks up name or fails the test.
func testingEntry(t *testing.T, v *Volume, name string) Entry {
	t.Helper()
	e, err := v.Stat(name)
	if err != nil {
		t.Fatalf("Stat(%q) error = %v", name, err)
	}
	return e
}
