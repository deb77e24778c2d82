// Package server wraps the standard HTTP server with the timeouts and
// shutdown behavior the service needs.
package server

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	"webhook-verifier/internal/config"
)

// Server represents the service HTTP server
type Server struct {
	srv     *http.Server
	tlsCert string
	tlsKey  string
}

// New creates a new server instance for the given handler and configuration
func New(handler http.Handler, cfg *config.Config) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      handler,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		tlsCert: cfg.TLSCert,
		tlsKey:  cfg.TLSKey,
	}
}

// Addr returns the address the server listens on
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Start runs the server until Shutdown is called or the listener fails.
// It serves HTTPS when a certificate pair is configured, plain HTTP
// otherwise. http.ErrServerClosed is swallowed as the normal shutdown
// signal.
func (s *Server) Start() error {
	var err error
	if s.tlsCert != "" && s.tlsKey != "" {
		s.srv.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		err = s.srv.ListenAndServeTLS(s.tlsCert, s.tlsKey)
	} else {
		err = s.srv.ListenAndServe()
	}
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
