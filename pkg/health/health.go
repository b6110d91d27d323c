// Package health exposes liveness and readiness endpoints with pluggable
// dependency checks.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

// Status of a component.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

type report struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]checkResult `json:"checks,omitempty"`
}

type checkResult struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Handler serves /health/live and /health/ready.
type Handler struct {
	mu     sync.RWMutex
	checks map[string]Check
}

func NewHandler() *Handler {
	return &Handler{checks: make(map[string]Check)}
}

// Register adds a named dependency check used by readiness.
func (h *Handler) Register(name string, c Check) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = c
}

// Live reports 200 whenever the process is running.
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	writeReport(w, http.StatusOK, report{Status: StatusUp, Timestamp: time.Now().UTC()})
}

// Ready runs all registered checks and reports 200 or 503.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	h.mu.RLock()
	checks := make(map[string]Check, len(h.checks))
	for name, c := range h.checks {
		checks[name] = c
	}
	h.mu.RUnlock()

	overall := StatusUp
	results := make(map[string]checkResult, len(checks))
	for name, c := range checks {
		if err := c(ctx); err != nil {
			results[name] = checkResult{Status: StatusDown, Error: err.Error()}
			overall = StatusDown
		} else {
			results[name] = checkResult{Status: StatusUp}
		}
	}

	status := http.StatusOK
	if overall == StatusDown {
		status = http.StatusServiceUnavailable
	}
	writeReport(w, status, report{Status: overall, Timestamp: time.Now().UTC(), Checks: results})
}

func writeReport(w http.ResponseWriter, status int, rep report) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(rep)
}
