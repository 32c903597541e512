package web

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"gpsnmea/internal/track"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is served on the local network only.
	CheckOrigin: func(*http.Request) bool { return true },
}

// liveHandler pushes every new position report to the client. The store
// is polled; the ingest path stays free of any push machinery.
func liveHandler(session *track.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		// Drain client frames so close/ping handling keeps working and
		// so a disconnect stops the writer even when no report arrives.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		var lastRef int64
		for {
			select {
			case <-done:
				return
			case <-r.Context().Done():
				return
			case <-ticker.C:
			}
			rep, ok := session.Store().Last()
			if !ok || rep.Ref == lastRef {
				continue
			}
			lastRef = rep.Ref
			if err := conn.WriteJSON(rep); err != nil {
				return
			}
		}
	}
}
