package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/sprite-ai/callguard/internal/decoy"
	"github.com/sprite-ai/callguard/internal/metrics"
	"github.com/sprite-ai/callguard/internal/risk"
	"github.com/sprite-ai/callguard/internal/signal"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Signals ---

type signalsResponse struct {
	Signals []signal.Signal `json:"signals"`
}

func (s *Server) handleSignals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, signalsResponse{Signals: s.cat.Signals()})
}

// --- Assess ---

type assessRequest struct {
	Selected []string `json:"selected"`
	Text     string   `json:"text"`
}

type assessResponse struct {
	risk.Assessment
	Label   string        `json:"label"`
	Actions []risk.Action `json:"actions"`
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req assessRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	for _, id := range req.Selected {
		if !s.cat.Has(id) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown signal %q", id))
			return
		}
	}

	a := risk.Assess(s.cat, req.Selected, req.Text)
	metrics.AssessmentsTotal.WithLabelValues(a.Level.String()).Inc()

	writeJSON(w, http.StatusOK, assessResponse{
		Assessment: a,
		Label:      a.Level.Label(),
		Actions:    a.Actions(),
	})
}

// --- Decoy ---

type decoyRequest struct {
	Seed string `json:"seed,omitempty"`
}

type decoyResponse struct {
	Seed string `json:"seed"`
	decoy.Pack
}

func (s *Server) handleDecoy(w http.ResponseWriter, r *http.Request) {
	var req decoyRequest
	if r.ContentLength != 0 {
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
			return
		}
	}
	if req.Seed == "" {
		req.Seed = uuid.NewString()
	}

	writeJSON(w, http.StatusOK, decoyResponse{
		Seed: req.Seed,
		Pack: decoy.ForSession(req.Seed, s.cfg.Case.Prefix, s.cfg.Case.CanaryHost),
	})
}
