package testutil

import (
	"net/http"
	"net/http/httptest"
	"path"
	"sync"
	"testing"
)

// ExportServer serves fixture export documents under /export/{region}/{file}
// and counts requests per file.
type ExportServer struct {
	*httptest.Server

	mu   sync.Mutex
	docs map[string]string
	hits map[string]int
}

// NewExportServer starts a server for region with the given documents.
// Unknown files get 404. The server is closed on test cleanup.
func NewExportServer(t testing.TB, region string, docs map[string]string) *ExportServer {
	t.Helper()

	s := &ExportServer{
		docs: docs,
		hits: make(map[string]int),
	}
	prefix := "/export/" + region + "/"
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dir, file := path.Split(r.URL.Path)
		if dir != prefix {
			http.NotFound(w, r)
			return
		}

		s.mu.Lock()
		s.hits[file]++
		doc, ok := s.docs[file]
		s.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	}))
	t.Cleanup(s.Close)
	return s
}

// Hits returns how many times file was requested.
func (s *ExportServer) Hits(file string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[file]
}
