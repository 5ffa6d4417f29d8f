package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/me/rrsim/pkg/model"
)

type sseInit struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	TimeQuantum int    `json:"time_quantum"`
	MaxTime     int    `json:"max_time"`
	Processes   int    `json:"processes"`
	Units       int    `json:"units"`
}

type sseTick struct {
	model.TimelineEntry
	Completed []int `json:"completed,omitempty"`
}

// handleSSESimulation replays a stored run's timeline via Server-Sent Events,
// one "tick" event per time unit, followed by a "complete" event carrying the
// summary.
// GET /api/v1/sse/simulations/{id}?interval=250ms
func (s *Server) handleSSESimulation(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	interval, err := parseInterval(r.URL.Query().Get("interval"))
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError(err.Error(),
			model.FieldError{Field: "interval", Message: "must be a duration such as 250ms"}))
		return
	}
	if interval > s.maxSSE {
		interval = s.maxSSE
	}

	run, ok := s.loadRun(w, r)
	if !ok {
		return
	}

	// Set headers for SSE.
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	err = sendSSEEvent(w, flusher, "init", sseInit{
		ID:          run.ID,
		Name:        run.Name,
		TimeQuantum: run.TimeQuantum,
		MaxTime:     run.MaxTime,
		Processes:   len(run.Processes),
		Units:       len(run.Timeline),
	})
	if err != nil {
		s.logger.Debug("sse client disconnected", "id", run.ID, "error", err)
		return
	}

	finishedAt := completionUnits(run)

	var ticker *time.Ticker
	if interval > 0 {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}

	for _, entry := range run.Timeline {
		if ticker != nil {
			select {
			case <-r.Context().Done():
				return
			case <-ticker.C:
			}
		} else if r.Context().Err() != nil {
			return
		}

		tick := sseTick{TimelineEntry: entry, Completed: finishedAt[entry.Time+1]}
		if err := sendSSEEvent(w, flusher, "tick", tick); err != nil {
			s.logger.Debug("sse client disconnected", "id", run.ID)
			return
		}
	}

	sendSSEEvent(w, flusher, "complete", run.Summary)
}

// completionUnits maps each completion time to the ids finishing then, in
// completion order.
func completionUnits(run *model.Run) map[int][]int {
	byID := make(map[int]*model.Process, len(run.Processes))
	for _, p := range run.Processes {
		byID[p.ID] = p
	}
	out := make(map[int][]int)
	for _, id := range run.Completed {
		if p, ok := byID[id]; ok && p.CompletionTime != nil {
			out[*p.CompletionTime] = append(out[*p.CompletionTime], id)
		}
	}
	return out
}

// parseInterval accepts a Go duration or a bare number of milliseconds.
// An empty value means no delay.
func parseInterval(v string) (time.Duration, error) {
	if v == "" {
		return 0, nil
	}
	if ms, err := strconv.Atoi(v); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("interval must not be negative")
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q", v)
	}
	if d < 0 {
		return 0, fmt.Errorf("interval must not be negative")
	}
	return d, nil
}

func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData)
	if err != nil {
		return err
	}

	flusher.Flush()
	return nil
}
