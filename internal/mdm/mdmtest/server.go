// Package mdmtest provides an in-process fake of the MDM API for tests.
package mdmtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Request is one call observed by the fake.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          string
}

// Server mimics POST /validate, POST /cr and GET /cr/{id}.
// Set FailWith to a status code to make every endpoint fail with it.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	requests     []Request
	failWith     int
	nextID       string
	createStatus int
}

func NewServer() *Server {
	s := &Server{}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Post("/validate", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"valid": true, "checks": []string{"schema", "fk", "dryrun"}})
	})
	r.Post("/cr", func(w http.ResponseWriter, r *http.Request) {
		status := "CREATED"
		if r.URL.Query().Get("dryRun") != "false" {
			status = "PENDING_APPROVAL"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.createCode())
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":           s.newID(),
			"status":       status,
			"diff_preview": map[string]any{"rows": 1},
		})
	})
	r.Get("/cr/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"id": chi.URLParam(r, "id"), "status": "PENDING_APPROVAL"})
	})

	s.Server = httptest.NewServer(r)
	return s
}

// FailWith makes every subsequent call answer with the given status.
func (s *Server) FailWith(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = code
}

// NextID pins the id returned by the next POST /cr.
func (s *Server) NextID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = id
}

// CreateStatus sets the success code of POST /cr; the default is 200.
func (s *Server) CreateStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createStatus = code
}

func (s *Server) createCode() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createStatus == 0 {
		return http.StatusOK
	}
	return s.createStatus
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nextID != "" {
		id := s.nextID
		s.nextID = ""
		return id
	}
	return uuid.NewString()
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Body:          string(body),
		})
		failWith := s.failWith
		s.mu.Unlock()

		if failWith != 0 {
			http.Error(w, "boom", failWith)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
