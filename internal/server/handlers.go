package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/slok/asyncviz/internal/model"
	"github.com/slok/asyncviz/internal/printer"
)

// handleFrameSVG renders the current frame.
// GET /frame.svg
func (s *Server) handleFrameSVG(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")

	p := printer.NewSVGPrinter(w, false)
	if err := p.PrintFrame(s.session.Frame()); err != nil {
		s.logger.Errorf("could not render frame: %s", err)
	}
}

// handleState returns the current frame.
// GET /api/v1/state
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, printer.NewFrameOutput(s.session.Frame()))
}

type setStepRequest struct {
	Step *int `json:"step"`
}

// handleSetStep moves the step control.
// PUT /api/v1/step
func (s *Server) handleSetStep(w http.ResponseWriter, r *http.Request) {
	var req setStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, fmt.Errorf("invalid body: %w", err))
		return
	}

	if req.Step == nil {
		respondError(w, r, http.StatusBadRequest, fmt.Errorf("step is required"))
		return
	}

	frame, err := s.session.SetStep(r.Context(), *req.Step)
	s.respondFrame(w, r, frame, err)
}

// handleNextStep moves the step control forward.
// POST /api/v1/step/next
func (s *Server) handleNextStep(w http.ResponseWriter, r *http.Request) {
	frame, err := s.session.Next(r.Context())
	s.respondFrame(w, r, frame, err)
}

// handlePrevStep moves the step control back.
// POST /api/v1/step/prev
func (s *Server) handlePrevStep(w http.ResponseWriter, r *http.Request) {
	frame, err := s.session.Prev(r.Context())
	s.respondFrame(w, r, frame, err)
}

func (s *Server) respondFrame(w http.ResponseWriter, r *http.Request, frame model.Frame, err error) {
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, printer.NewFrameOutput(frame))
	case errors.Is(err, model.ErrNotValid):
		respondError(w, r, http.StatusBadRequest, err)
	case errors.Is(err, model.ErrStopped):
		respondError(w, r, http.StatusServiceUnavailable, err)
	default:
		s.logger.Errorf("could not change step: %s", err)
		respondError(w, r, http.StatusInternalServerError, err)
	}
}

// handleEvents streams every new frame via Server-Sent Events.
// GET /api/v1/events
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	frames, cancel := s.session.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case frame, ok := <-frames:
			if !ok {
				// Session stopped.
				return
			}
			if err := sendSSEEvent(w, flusher, "frame", printer.NewFrameOutput(frame)); err != nil {
				s.logger.Debugf("sse client disconnected: %s", err)
				return
			}
		}
	}
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
