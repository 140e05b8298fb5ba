package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// AssetServer serves every file under the assets folder by name at the
// server root, so the remote system can pull local media during note
// downloads. It only needs to live for the assembly window.
type AssetServer struct {
	router chi.Router
	server *http.Server
}

// NewAssetServer builds a server for dir listening on 0.0.0.0:port.
func NewAssetServer(dir string, port int) *AssetServer {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Handle("/*", http.FileServer(http.Dir(dir)))

	return &AssetServer{
		router: router,
		server: &http.Server{
			Addr:    fmt.Sprintf("0.0.0.0:%d", port),
			Handler: router,
		},
	}
}

// Start begins listening and blocks until the server stops. A shutdown
// requested through Shutdown is not an error.
func (s *AssetServer) Start() error {
	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *AssetServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *AssetServer) Handler() http.Handler {
	return s.router
}
