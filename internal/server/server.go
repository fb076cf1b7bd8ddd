package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Tarrgon/autocompleted/internal/query"
	"github.com/Tarrgon/autocompleted/internal/resolver"
)

// searchParam carries the raw search prefix.
const searchParam = "search[name_matches]"

const (
	contentType = "application/json; charset=utf-8"

	// Successful bodies are immutable for practical purposes; let shared
	// caches hold them for a week. Errors must never be cached.
	successCacheControl = "public, max-age=604800"
	errorCacheControl   = "private, max-age=0"
)

var (
	badRequestBody    = []byte(`{"error":"bad request"}`)
	internalErrorBody = []byte(`{"error":"internal error"}`)
)

// Server serves the autocomplete endpoint.
type Server struct {
	resolver *resolver.Resolver
	logger   *slog.Logger
	httpSrv  *http.Server
}

// New creates a Server bound to addr. A nil logger falls back to
// slog.Default.
func New(addr string, res *resolver.Resolver, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{resolver: res, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleAutocomplete)

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           defaultHeaders(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown or failure.
func (s *Server) ListenAndServe() error {
	return s.httpSrv.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Handler returns the root handler, including default headers.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// defaultHeaders applies the headers every response carries regardless of
// outcome.
func defaultHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Authorization")
		h.Set("Content-Type", contentType)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get(searchParam)

	body, err := s.resolver.Resolve(r.Context(), raw)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Cache-Control", successCacheControl)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Cache-Control", errorCacheControl)

	if errors.Is(err, query.ErrBadInput) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(badRequestBody)
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(internalErrorBody)
}
