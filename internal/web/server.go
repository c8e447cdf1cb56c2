// internal/web/server.go
package web

import (
	"context"
	"crypto/subtle"
	_ "embed"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"logdeck/internal/engine"
)

//go:embed index.html
var indexHTML []byte

// Server is the browser front end: a JSON API plus SSE/websocket line
// streams over the engine registry. It holds no log state of its own.
type Server struct {
	registry *engine.Registry
	token    string
	upgrader websocket.Upgrader
}

func NewServer(registry *engine.Registry, token string) *Server {
	return &Server{
		registry: registry,
		token:    token,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/services", s.handleServices)
		r.Get("/containers", s.handleContainers)
		r.Route("/services/{name}", func(r chi.Router) {
			r.Get("/lines", s.handleLines)
			r.Post("/load", s.handleLoad)
			r.Post("/follow", s.handleFollow)
			r.Post("/config", s.handleConfig)
			r.Get("/stream", s.handleStream)
			r.Get("/ws", s.handleWS)
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.WithField("addr", addr).Info("web front end listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

// requireToken enforces the optional shared token. With no token
// configured every request passes.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token == "" {
			next.ServeHTTP(w, r)
			return
		}

		got := r.URL.Query().Get("token")
		if got == "" {
			auth := r.Header.Get("Authorization")
			got = strings.TrimPrefix(auth, "Bearer ")
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.token)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start),
		}).Debug("request")
	})
}
