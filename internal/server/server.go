// Package server is a local stand-in for the Graph custom update endpoint
package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Update is an accepted custom update.
type Update struct {
	AccessToken    string
	ContextTokenID string
	Params         map[string]string
}

// Server .
type Server struct {
	logger *slog.Logger
	h      *chi.Mux
	srv    *http.Server

	mu      sync.Mutex
	updates []Update
}

// New .
func New(logger *slog.Logger, addr string) *Server {
	h := chi.NewMux()
	s := &Server{
		logger: logger,
		h:      h,
		srv:    &http.Server{Addr: addr, Handler: h},
	}
	s.addRoutes()

	return s
}

func (s *Server) addRoutes() {
	s.h.Post("/me/custom_update", s.postCustomUpdate)
	s.h.Get("/me/custom_update", s.listCustomUpdates)
}

// Handler is the router, to be mounted in tests.
func (s *Server) Handler() http.Handler {
	return s.h
}

// Updates returns the accepted updates in the order they arrived.
func (s *Server) Updates() []Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Update(nil), s.updates...)
}

// Start .
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Stop .
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
