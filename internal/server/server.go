// Package server exposes the projection engine and share-link codec over a
// local HTTP API. It exists so spreadsheets and scripts can reuse the exact
// planner math without shelling out per call.
package server

import (
	"fmt"
	"log"

	"github.com/valyala/fasthttp"
)

// Server is the headway HTTP API.
type Server struct {
	addr string
}

// New returns a server bound to addr.
func New(addr string) *Server {
	if addr == "" {
		addr = "127.0.0.1:8921"
	}
	return &Server{addr: addr}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

// ListenAndServe blocks serving the API.
func (s *Server) ListenAndServe() error {
	log.Printf("headway api listening on %s", s.addr)
	if err := fasthttp.ListenAndServe(s.addr, s.route); err != nil {
		return fmt.Errorf("serving api: %w", err)
	}
	return nil
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	switch {
	case path == "/healthz" && method == fasthttp.MethodGet:
		s.handleHealth(ctx)
	case path == "/v1/catalog" && method == fasthttp.MethodGet:
		s.handleCatalog(ctx)
	case path == "/v1/project" && method == fasthttp.MethodPost:
		s.handleProject(ctx)
	case path == "/v1/decode" && method == fasthttp.MethodGet:
		s.handleDecode(ctx)
	case path == "/v1/encode" && method == fasthttp.MethodPost:
		s.handleEncode(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}
