package fat12

import (
	"errors"
	"io"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/spf13/afero"
)

// fileTestFields is essentially a copy of the File struct used to fill the
// unit under test in test cases.
type fileTestFields struct {
	path   string
	isRoot bool
	entry  Entry
	stat   os.FileInfo
	offset int64
	cursor Cursor
}

func (f fileTestFields) file(vol volumeReader) *File {
	return &File{
		vol:    vol,
		path:   f.path,
		isRoot: f.isRoot,
		entry:  f.entry,
		stat:   f.stat,
		offset: f.offset,
		cursor: f.cursor,
	}
}

// fakeFileInfo is just a fake FileInfo which does nothing and contains only
// someData to have something to check equality.
type fakeFileInfo struct {
	someData string
	fileSize int64
}

func (f fakeFileInfo) Name() string       { return "" }
func (f fakeFileInfo) Size() int64        { return f.fileSize }
func (f fakeFileInfo) Mode() os.FileMode  { return 0 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return false }
func (f fakeFileInfo) Sys() interface{}   { return nil }

// fileTestsError is just a error used in tests for File.
var fileTestsError = errors.New("a super error")

// helloEntry is an 11 byte file starting at cluster 2.
var helloEntry = Entry{Name: "HELLO.TXT", Size: 11, Location: StartingCluster(2)}

// chunkResult makes a ReadChunk mock copy data into the buffer and return err.
func chunkResult(data []byte, err error) func(Entry, []byte, uint32, uint32, *Cursor) (int, error) {
	return func(_ Entry, p []byte, _, _ uint32, _ *Cursor) (int, error) {
		return copy(p, data), err
	}
}

func TestFile_Close(t *testing.T) {
	tests := []struct {
		name    string
		fields  fileTestFields
		wantErr bool
	}{
		{
			name: "close and keep only path and stat",
			fields: fileTestFields{
				path:   "any path",
				isRoot: true,
				entry:  helloEntry,
				stat:   entryFileInfo{entry: helloEntry},
				offset: 7,
				cursor: Cursor{Cluster: 5, Consumed: 7},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.fields.file(&Volume{})
			if err := f.Close(); (err != nil) != tt.wantErr {
				t.Errorf("File.Close() error = %v, wantErr %v", err, tt.wantErr)
			}

			want := File{path: tt.fields.path, stat: tt.fields.stat, closed: true}
			if !tt.wantErr && *f != want {
				t.Errorf("File.Close() did not reset all fields: File = %v want = %v", *f, want)
			}
		})
	}
}

func TestFile_UseAfterClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nothing may reach the volume once the file is closed.
	vol := NewMockvolumeReader(ctrl)
	f := fileTestFields{
		path:  "HELLO.TXT",
		entry: helloEntry,
		stat:  entryFileInfo{entry: helloEntry},
	}.file(vol)

	if err := f.Close(); err != nil {
		t.Fatalf("File.Close() error = %v", err)
	}
	if got := f.Name(); got != "HELLO.TXT" {
		t.Errorf("File.Name() after Close = %q, want HELLO.TXT", got)
	}

	tests := []struct {
		name string
		call func() error
	}{
		{"Read", func() error { _, err := f.Read(make([]byte, 4)); return err }},
		{"ReadAt", func() error { _, err := f.ReadAt(make([]byte, 4), 0); return err }},
		{"Seek", func() error { _, err := f.Seek(1, io.SeekStart); return err }},
		{"Stat", func() error { _, err := f.Stat(); return err }},
		{"Readdir", func() error { _, err := f.Readdir(-1); return err }},
		{"Readdirnames", func() error { _, err := f.Readdirnames(-1); return err }},
		{"Close", f.Close},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, os.ErrClosed) {
				t.Errorf("File.%s() after Close error = %v, want os.ErrClosed", tt.name, err)
			}
			var pathErr *os.PathError
			if !errors.As(err, &pathErr) || pathErr.Path != "HELLO.TXT" {
				t.Errorf("File.%s() after Close error = %v, want *os.PathError for HELLO.TXT", tt.name, err)
			}
		})
	}
}

func TestFile_Read(t *testing.T) {
	type args struct {
		p []byte
	}
	type mock struct {
		chunkSize uint32
		result    []byte
		err       error
	}
	tests := []struct {
		name       string
		mockData   mock
		fields     fileTestFields
		args       args
		wantN      int
		wantOffset int64
		wantErr    error
	}{
		{
			name: "simple file",
			mockData: mock{
				chunkSize: 11,
				result:    []byte("Hell0 World"),
			},
			fields: fileTestFields{
				entry: helloEntry,
				stat:  fakeFileInfo{fileSize: 11},
			},
			args: args{
				p: make([]byte, 11),
			},
			wantN:      11,
			wantOffset: 11,
		},
		{
			name: "simple file with offset",
			mockData: mock{
				chunkSize: 6,
				result:    []byte(" World"),
			},
			fields: fileTestFields{
				entry:  helloEntry,
				offset: 5,
				stat:   fakeFileInfo{fileSize: 11},
			},
			args: args{
				p: make([]byte, 6),
			},
			wantN:      6,
			wantOffset: 11,
		},
		{
			name: "file smaller than buffer",
			mockData: mock{
				chunkSize: 11,
				result:    []byte("Hell0 World"),
			},
			fields: fileTestFields{
				entry: helloEntry,
				stat:  fakeFileInfo{fileSize: 11},
			},
			args: args{
				p: make([]byte, 20),
			},
			wantN:      11,
			wantOffset: 11,
		},
		{
			name: "error while reading",
			mockData: mock{
				chunkSize: 11,
				result:    []byte{'H'}, // Simulate error after some bytes are already read.
				err:       fileTestsError,
			},
			fields: fileTestFields{
				entry: helloEntry,
				stat:  fakeFileInfo{fileSize: 11},
			},
			args: args{
				p: make([]byte, 11),
			},
			wantN:      1,
			wantOffset: 1,
			wantErr:    fileTestsError,
		},
		{
			name: "chain ends before the file",
			mockData: mock{
				chunkSize: 6,
			},
			fields: fileTestFields{
				entry:  helloEntry,
				offset: 5,
				stat:   fakeFileInfo{fileSize: 11},
			},
			args: args{
				p: make([]byte, 10),
			},
			wantN:      0,
			wantOffset: 5,
			wantErr:    ErrUnexpectedEndOfChain,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCtrl := gomock.NewController(t)
			mockVol := NewMockvolumeReader(mockCtrl)

			f := tt.fields.file(mockVol)
			mockVol.EXPECT().
				ReadChunk(tt.fields.entry, gomock.Any(), uint32(tt.fields.offset), tt.mockData.chunkSize, &f.cursor).
				Times(1).
				DoAndReturn(chunkResult(tt.mockData.result, tt.mockData.err))

			gotN, err := f.Read(tt.args.p)

			mockCtrl.Finish()

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("File.Read() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if gotN != tt.wantN {
				t.Errorf("File.Read() = %v, want %v", gotN, tt.wantN)
			}
			if f.offset != tt.wantOffset {
				t.Errorf("File.offset = %v, want %v", f.offset, tt.wantOffset)
			}
		})
	}
}

func TestFile_ReadWithoutVolume(t *testing.T) {
	tests := []struct {
		name    string
		fields  fileTestFields
		p       []byte
		wantErr error
	}{
		{
			name: "at the end of the file",
			fields: fileTestFields{
				entry:  helloEntry,
				stat:   fakeFileInfo{fileSize: 11},
				offset: 11,
			},
			p:       make([]byte, 5),
			wantErr: io.EOF,
		},
		{
			name: "empty buffer",
			fields: fileTestFields{
				entry: helloEntry,
				stat:  fakeFileInfo{fileSize: 11},
			},
			p:       nil,
			wantErr: nil,
		},
		{
			name: "directory",
			fields: fileTestFields{
				isRoot: true,
				stat:   rootFileInfo{},
			},
			p:       make([]byte, 5),
			wantErr: syscall.EISDIR,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCtrl := gomock.NewController(t)
			f := tt.fields.file(NewMockvolumeReader(mockCtrl))

			n, err := f.Read(tt.p)

			mockCtrl.Finish()

			if n != 0 || !errors.Is(err, tt.wantErr) {
				t.Errorf("File.Read() = %v, %v, want 0, %v", n, err, tt.wantErr)
			}
		})
	}
}

func TestFile_ReadAt(t *testing.T) {
	type args struct {
		p   []byte
		off int64
	}
	type mock struct {
		chunkSize uint32
		result    []byte
		err       error
	}
	tests := []struct {
		name     string
		fields   fileTestFields
		args     args
		mockData mock
		wantN    int
		wantErr  error
	}{
		{
			name: "simple file",
			mockData: mock{
				chunkSize: 10,
				result:    []byte("ell0 World"),
			},
			fields: fileTestFields{
				entry: helloEntry,
				stat:  fakeFileInfo{fileSize: 11},
			},
			args: args{
				p:   make([]byte, 10),
				off: 1,
			},
			wantN: 10,
		},
		{
			name: "error while reading",
			mockData: mock{
				chunkSize: 10,
				err:       fileTestsError,
			},
			fields: fileTestFields{
				entry: helloEntry,
				stat:  fakeFileInfo{fileSize: 11},
			},
			args: args{
				p:   make([]byte, 11),
				off: 1,
			},
			wantN:   0,
			wantErr: fileTestsError,
		},
		{
			name: "not enough data (EOF)",
			mockData: mock{
				chunkSize: 4,
				result:    []byte("orld"),
			},
			fields: fileTestFields{
				entry: helloEntry,
				stat:  fakeFileInfo{fileSize: 11},
			},
			args: args{
				p:   make([]byte, 10),
				off: 7,
			},
			wantN:   4,
			wantErr: io.EOF,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCtrl := gomock.NewController(t)
			mockVol := NewMockvolumeReader(mockCtrl)
			mockVol.EXPECT().
				ReadChunk(tt.fields.entry, gomock.Any(), uint32(tt.args.off), tt.mockData.chunkSize, gomock.Nil()).
				Times(1).
				DoAndReturn(chunkResult(tt.mockData.result, tt.mockData.err))

			f := tt.fields.file(mockVol)
			gotN, err := f.ReadAt(tt.args.p, tt.args.off)

			mockCtrl.Finish()

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("File.ReadAt() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if gotN != tt.wantN {
				t.Errorf("File.ReadAt() = %v, want %v", gotN, tt.wantN)
			}
			if f.offset != tt.fields.offset {
				t.Errorf("File.ReadAt() moved the offset to %v", f.offset)
			}
		})
	}
}

func TestFile_Seek(t *testing.T) {
	type args struct {
		offset int64
		whence int
	}
	tests := []struct {
		name    string
		fields  fileTestFields
		args    args
		want    int64
		wantErr error
	}{
		{
			name: "Seek from start regardless of previous offset",
			fields: fileTestFields{
				offset: 1234,
				stat:   entryFileInfo{entry: Entry{Size: 5000}},
			},
			args: args{
				offset: 100,
				whence: io.SeekStart,
			},
			want: 100,
		},
		{
			name: "Seek from last offset",
			fields: fileTestFields{
				offset: 1000,
				stat:   entryFileInfo{entry: Entry{Size: 5000}},
			},
			args: args{
				offset: 200,
				whence: io.SeekCurrent,
			},
			want: 1200,
		},
		{
			name: "Seek from the end",
			fields: fileTestFields{
				offset: 1000,
				stat:   entryFileInfo{entry: Entry{Size: 5000}},
			},
			args: args{
				offset: -200,
				whence: io.SeekEnd,
			},
			want: 4800,
		},
		{
			name: "Seek before the start",
			fields: fileTestFields{
				offset: 1000,
				stat:   entryFileInfo{entry: Entry{Size: 5000}},
			},
			args: args{
				offset: -1001,
				whence: io.SeekCurrent,
			},
			want:    1000,
			wantErr: afero.ErrOutOfRange,
		},
		{
			name: "Seek behind the end",
			fields: fileTestFields{
				offset: 1000,
				stat:   entryFileInfo{entry: Entry{Size: 5000}},
			},
			args: args{
				offset: 1,
				whence: io.SeekEnd,
			},
			want:    1000,
			wantErr: afero.ErrOutOfRange,
		},
		{
			name: "invalid whence",
			fields: fileTestFields{
				offset: 1000,
				stat:   entryFileInfo{entry: Entry{Size: 5000}},
			},
			args: args{
				whence: 42,
			},
			want:    1000,
			wantErr: syscall.EINVAL,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.fields.file(nil)
			got, err := f.Seek(tt.args.offset, tt.args.whence)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("File.Seek() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr != nil {
				if !errors.Is(err, ErrSeekFile) {
					t.Errorf("File.Seek() error = %v, want ErrSeekFile", err)
				}
				if f.offset != tt.want {
					t.Errorf("failed File.Seek() changed the offset to %v", f.offset)
				}
				return
			}

			if got != tt.want {
				t.Errorf("File.Seek() = %v, want %v", got, tt.want)
			}

			// f.offset must be set also.
			if f.offset != tt.want {
				t.Errorf("File.offset = %v, want %v", f.offset, tt.want)
			}
		})
	}
}

func TestFile_Readdir(t *testing.T) {
	dir := &Directory{entries: []Entry{
		{Index: 0, Name: "A.TXT", Size: 1},
		{Index: 1, Name: "B.TXT", Size: 2},
		{Index: 2, Name: "C.TXT", Size: 3},
	}}

	mockCtrl := gomock.NewController(t)
	mockVol := NewMockvolumeReader(mockCtrl)
	mockVol.EXPECT().ReadDir().Return(dir).Times(3)

	f := fileTestFields{isRoot: true, stat: rootFileInfo{}}.file(mockVol)

	got, err := f.Readdirnames(2)
	if err != nil || len(got) != 2 || got[0] != "A.TXT" || got[1] != "B.TXT" {
		t.Errorf("Readdirnames(2) = %v, %v", got, err)
	}
	got, err = f.Readdirnames(2)
	if err != nil || len(got) != 1 || got[0] != "C.TXT" {
		t.Errorf("Readdirnames(2) = %v, %v", got, err)
	}
	if _, err := f.Readdirnames(2); err != io.EOF {
		t.Errorf("Readdirnames(2) error = %v, want io.EOF", err)
	}

	mockCtrl.Finish()
}

func TestFile_ReaddirNoDirectory(t *testing.T) {
	f := fileTestFields{entry: helloEntry, stat: entryFileInfo{entry: helloEntry}}.file(nil)
	if _, err := f.Readdir(-1); !errors.Is(err, syscall.ENOTDIR) {
		t.Errorf("Readdir() error = %v, want ENOTDIR", err)
	}

	sub := Entry{Name: "SUB.", Attribute: AttrDirectory}
	f = fileTestFields{entry: sub, stat: entryFileInfo{entry: sub}}.file(nil)
	if _, err := f.Readdir(-1); !errors.Is(err, ErrReadDir) {
		t.Errorf("Readdir() error = %v, want ErrReadDir", err)
	}
}

func TestFile_WriteIsRejected(t *testing.T) {
	f := fileTestFields{path: "HELLO.TXT", entry: helloEntry, stat: entryFileInfo{entry: helloEntry}}.file(nil)

	if _, err := f.Write([]byte("x")); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Write() error = %v, want ErrReadOnly", err)
	}
	if _, err := f.WriteAt([]byte("x"), 0); !errors.Is(err, syscall.EPERM) {
		t.Errorf("WriteAt() error = %v, want EPERM", err)
	}
	if _, err := f.WriteString("x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("WriteString() error = %v, want ErrReadOnly", err)
	}
	if err := f.Truncate(0); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Truncate() error = %v, want ErrReadOnly", err)
	}
	if err := f.Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}
}
