// Package server serves the files of a volume over HTTP, one chunked-transfer chunk per
// streamed read, the way the firmware serving the flash hands out its web pages.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/flashdump/fat12"
	"github.com/flashdump/fat12/internal/listing"
)

// Server answers
//
//	GET /volume        label and geometry as JSON
//	GET /files         the root directory as JSON
//	GET /files/:name   the content of a file, streamed
type Server struct {
	vol       *fat12.Volume
	chunkSize int
	log       *zap.SugaredLogger
	router    *httprouter.Router
}

// New returns a server for vol. Files are streamed in chunks of chunkSize bytes.
func New(vol *fat12.Volume, chunkSize int, log *zap.SugaredLogger) *Server {
	s := &Server{
		vol:       vol,
		chunkSize: chunkSize,
		log:       log,
		router:    httprouter.New(),
	}
	s.router.GET("/volume", s.volume)
	s.router.GET("/files", s.files)
	s.router.GET("/files/:name", s.file)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Infof("serving %q on http://%s", s.vol.Label(), addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type volumeInfo struct {
	Label    string         `json:"label"`
	Size     int64          `json:"size"`
	Files    int            `json:"files"`
	Geometry fat12.Geometry `json:"geometry"`
}

func (s *Server) volume(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, volumeInfo{
		Label:    s.vol.Label(),
		Size:     s.vol.Size(),
		Files:    s.vol.ReadDir().Len(),
		Geometry: s.vol.Geometry(),
	})
}

func (s *Server) files(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, listing.Files(s.vol))
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warnf("write response: %v", err)
	}
}

func (s *Server) file(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	name := ps.ByName("name")
	stream, err := s.vol.OpenStream(name, s.chunkSize)
	if errors.Is(err, fat12.ErrNotFound) {
		http.Error(w, "no such file: "+name, http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Errorf("open %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	flusher, _ := w.(http.Flusher)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("X-File-Size", strconv.FormatUint(uint64(stream.Entry().Size), 10))

	chunks := 0
	for {
		if err := r.Context().Err(); err != nil {
			s.log.Debugf("%s: client gone after %d bytes", name, stream.Offset())
			return
		}

		chunk, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.log.Errorf("stream %s at offset %d: %v", name, stream.Offset(), err)
			if chunks == 0 {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			// The status is out already, cutting the connection short is all that is left.
			panic(http.ErrAbortHandler)
		}

		if _, err := w.Write(chunk); err != nil {
			s.log.Debugf("%s: write failed after %d bytes: %v", name, stream.Offset(), err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
		chunks++
	}

	s.log.Debugf("sent %s, %d bytes in %d chunks", name, stream.Offset(), chunks)
}
