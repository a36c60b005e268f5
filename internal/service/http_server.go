package service

import (
	"context"
	"net/http"
)

// httpServer abstracts *http.Server so tests can substitute a stub.
type httpServer interface {
	Addr() string
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

type netHTTPServer struct {
	srv *http.Server
}

func (n netHTTPServer) Addr() string { return n.srv.Addr }

func (n netHTTPServer) ListenAndServe() error { return n.srv.ListenAndServe() }

func (n netHTTPServer) Shutdown(ctx context.Context) error { return n.srv.Shutdown(ctx) }
