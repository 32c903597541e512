// Package web serves the pull-based status API: statistics snapshots,
// the position ledger, on-demand exports and a live position websocket.
package web

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"gpsnmea/internal/export"
	"gpsnmea/internal/track"
)

func Handler(session *track.Session) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, statusResponse{
			NowUTC: time.Now().UTC().Format(time.RFC3339Nano),
			Live:   session.Live(),
			Stats:  session.Stats(),
		})
	})

	mux.HandleFunc("/api/positions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		reports := session.Store().All()
		if reports == nil {
			reports = []track.Report{}
		}
		writeJSON(w, reports)
	})

	mux.HandleFunc("/api/export", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		f, err := export.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// A full export needs a stable snapshot; refuse while the
		// serial loop is still appending.
		if session.Live() {
			http.Error(w, export.ErrIngestActive.Error(), http.StatusConflict)
			return
		}

		w.Header().Set("Content-Type", f.ContentType())
		if f == export.NMEA {
			err = export.Raw(w, session.RawLines())
		} else {
			err = export.Positions(w, f, session.Store().All())
		}
		if err != nil {
			// Headers are already sent; the status line cannot change.
			log.Printf("export write failed format=%s: %v", f, err)
		}
	})

	mux.HandleFunc("/api/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		session.Reset()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{\"ok\":true}\n"))
	})

	mux.HandleFunc("/api/live", liveHandler(session))

	return mux
}

type statusResponse struct {
	NowUTC string      `json:"now_utc"`
	Live   bool        `json:"live"`
	Stats  track.Stats `json:"stats"`
}

func writeJSON(w http.ResponseWriter, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, "marshal failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
	_, _ = w.Write([]byte("\n"))
}
