// internal/web/stream.go
package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"logdeck/internal/engine"
)

// streamPollInterval matches the engine's follow poll rate; the buffer
// cannot gain lines faster than its writer produces them.
const streamPollInterval = 250 * time.Millisecond

// handleStream pushes the service's line feed as Server-Sent Events: the
// current filtered buffer first, then every new matching line as the follow
// session appends it. The handler is purely a buffer reader; it starts the
// follow session but never writes lines itself.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.service(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	filter, _ := filterFromQuery(r, svc.Filter())
	svc.StartFollow()

	// Replay what is already buffered, then tail the buffer.
	buf := svc.Buffer()
	replay, cursor := buf.Since(0)
	for _, line := range replay {
		if filter.Match(line) {
			writeSSE(w, line)
		}
	}
	flusher.Flush()

	ticker := time.NewTicker(streamPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			var fresh []string
			fresh, cursor = buf.Since(cursor)
			if len(fresh) == 0 {
				continue
			}
			wrote := false
			for _, line := range fresh {
				if filter.Match(line) {
					writeSSE(w, line)
					wrote = true
				}
			}
			if wrote {
				flusher.Flush()
			}
		}
	}
}

func writeSSE(w http.ResponseWriter, line string) {
	fmt.Fprintf(w, "data: %s\n\n", line)
}

// handleWS serves the same line feed over a websocket, for clients that
// prefer a socket to SSE.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.service(w, r)
	if !ok {
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer ws.Close()

	// Drain client frames so close handshakes are noticed.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	filter, _ := filterFromQuery(r, svc.Filter())
	svc.StartFollow()

	buf := svc.Buffer()
	replay, cursor := buf.Since(0)
	if err := writeWSLines(ws, replay, filter); err != nil {
		return
	}

	ticker := time.NewTicker(streamPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-closed:
			return
		case <-ticker.C:
			var fresh []string
			fresh, cursor = buf.Since(cursor)
			if err := writeWSLines(ws, fresh, filter); err != nil {
				log.WithError(err).Debug("websocket write failed")
				return
			}
		}
	}
}

func writeWSLines(ws *websocket.Conn, lines []string, filter engine.Filter) error {
	for _, line := range lines {
		if !filter.Match(line) {
			continue
		}
		if err := ws.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			return err
		}
	}
	return nil
}
