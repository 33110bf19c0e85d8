package server

import (
	"encoding/json"
	"fmt"
	"image/color"
	"net/http"
	"strconv"
	"strings"
	"time"

	"solar-sim/pkg/physics"
	"solar-sim/pkg/simulation"
)

// StatusResponse describes the run.
type StatusResponse struct {
	Name            string     `json:"name"`
	Uptime          string     `json:"uptime"`
	Tick            uint64     `json:"tick"`
	Time            float64    `json:"time"`
	Paused          bool       `json:"paused"`
	Bodies          int        `json:"bodies"`
	Momentum        [2]float64 `json:"momentum"`
	AngularMomentum float64    `json:"angular_momentum"`
	Energy          float64    `json:"energy"`
}

// BodyResponse is one body of the snapshot.
type BodyResponse struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Pos    [2]float64 `json:"pos"`
	Radius float64    `json:"radius"`
	Color  string     `json:"color"`
}

// SnapshotResponse is the published snapshot.
type SnapshotResponse struct {
	Tick   uint64         `json:"tick"`
	Time   float64        `json:"time"`
	Paused bool           `json:"paused"`
	Bodies []BodyResponse `json:"bodies"`
}

// ControlRequest is a run-control command.
type ControlRequest struct {
	Command string `json:"command"`
}

// AckResponse is returned on successful control execution.
type AckResponse struct {
	Status string `json:"status"`
	Paused bool   `json:"paused"`
	Tick   uint64 `json:"tick"`
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	st := s.engine.Stats()
	writeJSON(w, StatusResponse{
		Name:            st.Name,
		Uptime:          time.Since(s.start).Round(time.Second).String(),
		Tick:            st.Tick,
		Time:            st.Time,
		Paused:          st.Paused,
		Bodies:          st.Bodies,
		Momentum:        [2]float64{st.Momentum.X, st.Momentum.Y},
		AngularMomentum: st.AngularMomentum,
		Energy:          st.Energy,
	})
}

func (s *Server) bodies(w http.ResponseWriter, r *http.Request) {
	snap := s.engine.Snapshot()
	resp := SnapshotResponse{
		Tick:   snap.Tick,
		Time:   snap.Time,
		Paused: snap.Paused,
		Bodies: make([]BodyResponse, len(snap.Bodies)),
	}
	for i, b := range snap.Bodies {
		resp.Bodies[i] = bodyResponse(b)
	}
	writeJSON(w, resp)
}

func (s *Server) pick(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		http.Error(w, "x and y are required numbers", http.StatusBadRequest)
		return
	}
	b, ok := s.engine.Pick(physics.Vec2{X: x, Y: y})
	if !ok {
		http.Error(w, "no body at point", http.StatusNotFound)
		return
	}
	writeJSON(w, bodyResponse(b))
}

func (s *Server) control(w http.ResponseWriter, r *http.Request) {
	var req ControlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	switch strings.TrimSpace(strings.ToLower(req.Command)) {
	case "pause":
		s.engine.Pause()
	case "resume":
		s.engine.Resume()
	case "toggle":
		s.engine.TogglePause()
	case "step":
		if !s.engine.StepIfPaused() {
			http.Error(w, "step requires a paused simulation", http.StatusConflict)
			return
		}
	case "":
		http.Error(w, "command required", http.StatusBadRequest)
		return
	default:
		http.Error(w, fmt.Sprintf("unknown command %q", req.Command), http.StatusBadRequest)
		return
	}
	snap := s.engine.Snapshot()
	writeJSON(w, AckResponse{Status: "ack", Paused: snap.Paused, Tick: snap.Tick})
}

func bodyResponse(b simulation.BodyView) BodyResponse {
	return BodyResponse{
		ID:     b.ID,
		Name:   b.Name,
		Pos:    [2]float64{b.Pos.X, b.Pos.Y},
		Radius: b.Radius,
		Color:  hexColor(b.Color),
	}
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
