package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/trackhub-io/trackhub/internal/pkg/metrics"
	"github.com/trackhub-io/trackhub/pkg/log"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard is served from other origins in every deployment seen
	// so far; events are read-only.
	CheckOrigin: func(*http.Request) bool { return true },
}

// subscribe upgrades the connection and streams hub events until either side
// goes away. Each connection is one hub subscriber; a slow connection only
// loses its own events.
func (h *handler) subscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("Websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	sub := h.hub.Connect()
	metrics.Subscribers.Inc()
	defer func() {
		h.hub.Disconnect(sub)
		metrics.Subscribers.Dec()
		conn.Close()
	}()

	log.Debug("Websocket subscriber connected", "remote", r.RemoteAddr)

	// Reader goroutine: the client never sends data, but reading is the
	// only way to notice a closed connection promptly.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-sub.Done():
			return
		case event := <-sub.C():
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(event); err != nil {
				log.Debug("Websocket write failed, dropping subscriber", "remote", r.RemoteAddr, "error", err)
				return
			}
		}
	}
}
