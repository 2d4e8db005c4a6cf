package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/zigam/sejem/internal/ledger"
)

// EventsHandler streams live lifecycle events to external observers.
type EventsHandler struct {
	Bus *ledger.Bus
}

// Stream handles GET /api/events/stream as server-sent events. Each event is
// one JSON object carrying the item id and transition kind. The stream ends
// when the client disconnects.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		jsonError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, cancel := h.Bus.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(e)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Kind, data)
			flusher.Flush()
		}
	}
}
