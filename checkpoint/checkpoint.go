// Package checkpoint decorates errors with the location they passed through, so an error
// returned from deep inside a cluster walk still tells where it was raised and which
// operation gave up on it.
// A checkpoint matches its own error with errors.Is and errors.As and unwraps to the cause.
package checkpoint

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
)

// From marks err with the location of the caller.
// It returns nil if err is nil. io.EOF is returned untouched, readers compare it with ==.
func From(err error) error {
	if err == nil || err == io.EOF {
		return err
	}
	return newCheckpoint(err, nil)
}

// Wrap records that prev was turned into err at the location of the caller.
// The result matches err with errors.Is and unwraps to prev:
//
//	var ErrNotFound = errors.New("file not found")
//
//	func find(name string) error {
//		return checkpoint.Wrap(fmt.Errorf("no entry %q", name), ErrNotFound)
//	}
//
// Wrap returns nil if prev is nil and io.EOF if prev is io.EOF.
func Wrap(prev, err error) error {
	if prev == nil || prev == io.EOF {
		return prev
	}
	return newCheckpoint(err, prev)
}

// Wrapf is Wrap with a cause built from format and args.
func Wrapf(err error, format string, args ...interface{}) error {
	return newCheckpoint(err, fmt.Errorf(format, args...))
}

func newCheckpoint(err, prev error) error {
	_, file, line, ok := runtime.Caller(2)
	return &checkpoint{
		err:      err,
		prev:     prev,
		callerOk: ok,
		file:     filepath.Base(file),
		line:     line,
	}
}

type checkpoint struct {
	err  error
	prev error

	callerOk bool
	file     string
	line     int
}

func (e *checkpoint) location() string {
	if !e.callerOk {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", e.file, e.line)
}

func (e *checkpoint) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v (at %s)", e.err, e.location())
	if e.prev == nil {
		return b.String()
	}

	// Causes that are checkpoints themselves already carry their location.
	prev := e.prev.Error()
	if _, ok := e.prev.(*checkpoint); !ok {
		prev = strings.ReplaceAll(prev, "\n", "\n\t")
	}
	b.WriteString("\n\t")
	b.WriteString(prev)
	return b.String()
}

func (e *checkpoint) Unwrap() error {
	return e.prev
}

func (e *checkpoint) Is(target error) bool {
	return errors.Is(e.err, target)
}

func (e *checkpoint) As(target interface{}) bool {
	return errors.As(e.err, target)
}
