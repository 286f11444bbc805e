// Package health exposes the liveness summary. Counts and channel booleans
// only; no stored data or credentials appear here.
package health

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"aegis/pkg/platform/httputil"
)

// Registry reports registry sizes for the summary.
type Registry interface {
	RecipientCount(ctx context.Context) (int, error)
	ResolvePhoneNumbers(ctx context.Context) ([]string, error)
}

// Channels reports which notification channels were configured at startup.
type Channels interface {
	TextAvailable() bool
	CallAvailable() bool
}

// Handler serves the root banner and the health summary.
type Handler struct {
	registry Registry
	channels Channels
}

// New constructs a health handler.
func New(registry Registry, channels Channels) *Handler {
	return &Handler{registry: registry, channels: channels}
}

// Register mounts the root and health endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandleRoot)
	r.Get("/health", h.HandleHealth)
}

// HandleRoot handles GET / requests.
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Aegis Event Alerting API",
		"status":  "running",
	})
}

// HandleHealth handles GET /health requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.registry.RecipientCount(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	numbers, err := h.registry.ResolvePhoneNumbers(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":             "healthy",
		"registered_users":   users,
		"registered_numbers": len(numbers),
		"text_service":       h.channels.TextAvailable(),
		"voice_service":      h.channels.CallAvailable(),
	})
}
