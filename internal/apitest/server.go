// Package apitest provides an in-memory config server for tests. It
// mirrors the behavior of the real backup-storage service: every save
// snapshots the previous document as config_backup_<timestamp>.json and
// restoring a backup is itself a save.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pluqqy/confedit/pkg/jsondoc"
	"github.com/pluqqy/confedit/pkg/models"
)

type backup struct {
	name     string
	content  string
	modified time.Time
}

type failure struct {
	status  int
	message string
	raw     string
}

// Server is a fake config server listening on a local port.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	config   *string
	backups  map[string]backup
	failures map[string]failure
	requests map[string]int
	clock    func() time.Time
}

// NewServer starts a server holding initial as its document. An empty
// initial leaves the server without a document. The server is closed when
// the test finishes.
func NewServer(tb testing.TB, initial string) *Server {
	tb.Helper()

	s := &Server{
		backups:  make(map[string]backup),
		failures: make(map[string]failure),
		requests: make(map[string]int),
		clock:    time.Now,
	}
	if initial != "" {
		v, err := jsondoc.Parse(initial)
		if err != nil {
			tb.Fatalf("apitest: invalid initial document: %v", err)
		}
		formatted := jsondoc.Format(v)
		s.config = &formatted
	}

	r := chi.NewRouter()
	r.Use(s.recordRequest)
	r.Get("/api/config", s.getConfig)
	r.Post("/api/config", s.postConfig)
	r.Get("/api/backups", s.listBackups)
	r.Post("/api/restore/{name}", s.restore)

	s.Server = httptest.NewServer(r)
	tb.Cleanup(s.Close)
	return s
}

// SetClock replaces the time source used to name and date backups.
func (s *Server) SetClock(clock func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

// FailWith makes the next request to route ("GET /api/config", ...) answer
// with status and {"error": message}.
func (s *Server) FailWith(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, message: message}
}

// RespondRaw makes the next request to route answer with status and body
// verbatim.
func (s *Server) RespondRaw(route string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, raw: body}
}

// Requests returns how many requests hit route.
func (s *Server) Requests(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[route]
}

// Config returns the stored document text.
func (s *Server) Config() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config == nil {
		return ""
	}
	return *s.config
}

// AddBackup seeds a backup.
func (s *Server) AddBackup(name, content string, modified time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backups[name] = backup{name: name, content: content, modified: modified}
}

// Backups returns the stored backups, newest first.
func (s *Server) Backups() []models.Backup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedBackups()
}

func (s *Server) recordRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := routeKey(r)

		s.mu.Lock()
		s.requests[key]++
		f, failing := s.failures[key]
		delete(s.failures, key)
		s.mu.Unlock()

		if failing {
			if f.raw != "" {
				w.WriteHeader(f.status)
				_, _ = io.WriteString(w, f.raw)
				return
			}
			writeJSON(w, f.status, map[string]string{"error": f.message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// routeKey collapses /api/restore/<name> so failures can target any restore.
func routeKey(r *http.Request) string {
	path := r.URL.Path
	if strings.HasPrefix(path, "/api/restore/") {
		path = "/api/restore"
	}
	return r.Method + " " + path
}

func (s *Server) getConfig(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	config := s.config
	s.mu.Unlock()

	if config == nil {
		writeJSON(w, http.StatusOK, map[string]string{"error": "Config file not found"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, *config)
}

func (s *Server) postConfig(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	doc, err := jsondoc.Parse(string(raw))
	if err != nil || isEmpty(doc) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No data provided"})
		return
	}

	s.mu.Lock()
	name := s.save(doc)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "backup": name})
}

func (s *Server) listBackups(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	backups := s.sortedBackups()
	s.mu.Unlock()

	entries := make([]map[string]any, 0, len(backups))
	for _, b := range backups {
		entries = append(entries, map[string]any{
			"filename": b.Filename,
			"size":     b.SizeBytes,
			"modified": float64(b.ModifiedAt.UnixNano()) / 1e9,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) restore(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.backups[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Backup not found"})
		return
	}
	doc, err := jsondoc.Parse(b.content)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	backupName := s.save(doc)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "backup": backupName})
}

// save must be called with s.mu held.
func (s *Server) save(doc jsondoc.Value) string {
	now := s.clock()
	name := models.BackupPrefix + now.Format("20060102_150405") + models.BackupSuffix
	for i := 1; ; i++ {
		if _, taken := s.backups[name]; !taken {
			break
		}
		name = fmt.Sprintf("%s%s_%d%s", models.BackupPrefix, now.Format("20060102_150405"), i, models.BackupSuffix)
	}

	if s.config != nil {
		s.backups[name] = backup{name: name, content: *s.config, modified: now}
	}
	formatted := jsondoc.Format(doc)
	s.config = &formatted
	return name
}

// sortedBackups must be called with s.mu held.
func (s *Server) sortedBackups() []models.Backup {
	out := make([]models.Backup, 0, len(s.backups))
	for _, b := range s.backups {
		out = append(out, models.Backup{Filename: b.name, ModifiedAt: b.modified, SizeBytes: int64(len(b.content))})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ModifiedAt.Equal(out[j].ModifiedAt) {
			return out[i].Filename > out[j].Filename
		}
		return out[i].ModifiedAt.After(out[j].ModifiedAt)
	})
	return out
}

func isEmpty(v jsondoc.Value) bool {
	switch v.Kind() {
	case jsondoc.Null:
		return true
	case jsondoc.Object, jsondoc.Array:
		return v.Len() == 0
	case jsondoc.String:
		return v.Str() == ""
	case jsondoc.Bool:
		return !v.Bool()
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
