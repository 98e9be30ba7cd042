package fat12

import (
	"io"

	"github.com/flashdump/fat12/checkpoint"
)

// DefaultChunkSize is the chunk size used by streams if none is given.
// It matches one HTTP chunk of the firmware the reader was written for.
const DefaultChunkSize = 512

// Stream reads a file sequentially chunk by chunk. Unlike ReadChunk it keeps the offset
// itself, so it can never get out of step with its cursor.
type Stream struct {
	vol       *Volume
	entry     Entry
	cursor    Cursor
	offset    uint32
	chunkSize uint32
	chunk     []byte
}

// NewStream starts a stream over e which hands out at most chunkSize bytes per Next call.
// A chunkSize <= 0 selects DefaultChunkSize.
func (v *Volume) NewStream(e Entry, chunkSize int) *Stream {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Stream{
		vol:       v,
		entry:     e,
		chunkSize: uint32(chunkSize),
	}
}

// OpenStream looks up the file with the given 8.3 name and starts a stream over it.
func (v *Volume) OpenStream(name string, chunkSize int) (*Stream, error) {
	e, err := v.Stat(name)
	if err != nil {
		return nil, err
	}
	return v.NewStream(e, chunkSize), nil
}

// Entry returns the file the stream reads.
func (s *Stream) Entry() Entry {
	return s.entry
}

// Offset returns the number of bytes read so far.
func (s *Stream) Offset() uint32 {
	return s.offset
}

// Remaining returns the number of bytes left to read.
func (s *Stream) Remaining() uint32 {
	if s.offset >= s.entry.Size {
		return 0
	}
	return s.entry.Size - s.offset
}

// Reset rewinds the stream to the start of the file.
func (s *Stream) Reset() {
	s.cursor.Reset()
	s.offset = 0
}

// Next returns the next chunk of the file. The slice is only valid until the next call.
// At the end of the file Next returns io.EOF.
func (s *Stream) Next() ([]byte, error) {
	if s.Remaining() == 0 {
		return nil, io.EOF
	}
	if s.chunk == nil {
		s.chunk = make([]byte, s.chunkSize)
	}

	n, err := s.read(s.chunk)
	if err != nil {
		return s.chunk[:n], err
	}
	return s.chunk[:n], nil
}

// Read implements io.Reader.
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if s.Remaining() == 0 {
		return 0, io.EOF
	}
	return s.read(p)
}

func (s *Stream) read(p []byte) (int, error) {
	size := s.Remaining()
	if uint64(len(p)) < uint64(size) {
		size = uint32(len(p))
	}

	n, err := s.vol.ReadChunk(s.entry, p, s.offset, size, &s.cursor)
	s.offset += uint32(n)
	if err != nil {
		return n, err
	}

	// A chain ending early hands out a short chunk first and fails on the next one.
	if n == 0 {
		return 0, checkpoint.Wrapf(ErrUnexpectedEndOfChain, "%q at offset %d", s.entry.Name, s.offset)
	}
	return n, nil
}

// WriteTo implements io.WriterTo. It writes the rest of the file to w, one chunk at a time.
func (s *Stream) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for {
		chunk, err := s.Next()
		if len(chunk) > 0 {
			m, werr := w.Write(chunk)
			written += int64(m)
			if werr != nil {
				return written, werr
			}
		}
		if err == io.EOF {
			return written, nil
		}
		if err != nil {
			return written, err
		}
	}
}
