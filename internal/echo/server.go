package echo

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	apimw "github.com/hamed0406/echoprobe/internal/echo/middleware"
)

// Server is the reference server the probe is written against: POST /echo
// hands back whatever JSON it receives.
type Server struct {
	Logger *zap.Logger
}

func NewServer(l *zap.Logger) *Server {
	if l == nil {
		l = zap.NewNop()
	}
	return &Server{Logger: l}
}

// Router wires the routes. rpm <= 0 disables rate limiting.
func (s *Server) Router(rpm, burst int) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(s.accessLog)
	r.Use(apimw.RateLimit(rpm, burst))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/", s.message("Welcome To Celeris Backend"))
	r.Get("/hello", s.message("Hello, world!"))
	r.Get("/json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Hello, JSON!", "status": "success"})
	})
	r.Post("/echo", s.handleEcho)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Route Not Found"))
	})
	return r
}

func (s *Server) handleEcho(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var v any
	err := dec.Decode(&v)
	if err == nil {
		// Exactly one value: anything after it but whitespace is rejected.
		if extra := dec.Decode(&struct{}{}); extra != io.EOF {
			err = errors.New("trailing data after JSON value")
		}
	}
	if err != nil {
		s.Logger.Debug("echo_invalid_json", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) message(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": text})
	}
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Info("echo_request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Float64("latency_ms", time.Since(start).Seconds()*1000),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
