// Package serve publishes a compiled schema document over HTTP. It is a
// development affordance for inspecting generated output, not an API
// gateway: the only content it serves is the document itself.
package serve

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// documentContentType is the media type schema documents are served as.
const documentContentType = "application/schema+json"

// Server serves a schema document at /schema.json.
type Server struct {
	router chi.Router
	logger *zap.Logger

	document []byte
}

// NewServer builds a server around a serialized schema document.
func NewServer(document []byte, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		document: document,
	}

	s.router.Use(RequestID)
	s.router.Use(s.logRequests)
	s.router.Get("/schema.json", s.handleDocument)
	s.router.Get("/healthz", s.handleHealth)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Listen serves on the given host and port until the listener fails.
func (s *Server) Listen(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	s.logger.Info("schema server listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", documentContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.document)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", GetRequestID(r.Context())),
		)
	})
}
