package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

type counterService interface {
	Apply(ctx context.Context, action string) (int, error)
	Current(ctx context.Context) (int, error)
}

// CounterHandler serves the demo tap counter.
type CounterHandler struct {
	counters counterService
	log      *slog.Logger
}

// NewCounterHandler creates a CounterHandler.
func NewCounterHandler(counters counterService, logger *slog.Logger) *CounterHandler {
	return &CounterHandler{
		counters: counters,
		log:      logger.With("handler", "counter"),
	}
}

// Get returns the current count.
// GET /api/count
func (h *CounterHandler) Get(w http.ResponseWriter, r *http.Request) {
	n, err := h.counters.Current(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeOK(w, n)
}

// Update applies an action and returns the resulting count.
// POST /api/count  body: {"action": "inc"|"clear"}
func (h *CounterHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, codeBadRequest, "invalid request body")
		return
	}

	n, err := h.counters.Apply(r.Context(), req.Action)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeOKMessage(w, "ok", n)
}
