// Package server exposes the pipeline over HTTP. Input validation is the
// only place an error ever reaches a caller; past the 400 boundary every
// failure degrades to the default instruction.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"voicesketch/internal/engine"
	"voicesketch/internal/interpret"
	"voicesketch/internal/logging"
	"voicesketch/internal/session"
)

// Server serves the parse and command endpoints. The parse endpoint is
// stateless and works off the context in the request body; the command
// endpoint applies effects to the server-owned session.
type Server struct {
	gateway *interpret.Gateway
	session *session.Session
	canvas  engine.Canvas
	log     *zap.SugaredLogger
}

// New builds a server around a gateway and a session. The session may be
// nil when only the stateless parse endpoint is wanted.
func New(gateway *interpret.Gateway, sess *session.Session, canvas engine.Canvas) *Server {
	return &Server{
		gateway: gateway,
		session: sess,
		canvas:  canvas,
		log:     logging.Get(logging.CategoryServer),
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/parse", s.handleParse)
	mux.HandleFunc("/api/v1/command", s.handleCommand)
	return mux
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("server listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
