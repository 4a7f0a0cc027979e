package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CreativeUnicorns/usersettings"
)

// sseEvent is a single frame on a watch stream.
type sseEvent struct {
	name    string
	payload any
}

// handleWatchSettings streams settings updates for a user as Server-Sent Events.
// On connect the stream replays the currently cached values, then pushes every
// published update as an "event: display" or "event: language" frame until the
// client disconnects. A slow client drops updates rather than blocking writers.
func (s *Server) handleWatchSettings(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.respondWithError(w, r, http.StatusInternalServerError, "Streaming unsupported", nil)
		return
	}
	cache := s.cacheFor(chi.URLParam(r, "userID"))

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	events := make(chan sseEvent, 16)
	displaySub := cache.WatchDisplaySettings(func(settings usersettings.DisplaySettings) {
		select {
		case events <- sseEvent{name: "display", payload: settings}:
		default:
		}
	})
	defer displaySub.Cancel()

	languageSub := cache.WatchLanguage(func(language usersettings.Language) {
		select {
		case events <- sseEvent{name: "language", payload: languagePayload{Language: language}}:
		default:
		}
	})
	defer languageSub.Cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-events:
			data, err := json.Marshal(event.payload)
			if err != nil {
				s.logger.Error("Failed to marshal watch event", "event", event.name, "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.name, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
