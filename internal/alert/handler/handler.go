package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"aegis/internal/alert"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/httputil"
	"aegis/pkg/requestcontext"
)

// Dispatcher fans an alert out to a resolved recipient list.
type Dispatcher interface {
	Dispatch(ctx context.Context, a alert.Request, numbers []string, ch alert.Channel) (alert.Response, error)
}

// NumberResolver produces the effective fan-out target list.
type NumberResolver interface {
	ResolvePhoneNumbers(ctx context.Context) ([]string, error)
}

// EventLister enumerates the event identifiers with FAQ documents.
type EventLister interface {
	Events() []string
}

// Handler wires alert endpoints to the dispatcher.
type Handler struct {
	dispatcher Dispatcher
	resolver   NumberResolver
	events     EventLister
	logger     *slog.Logger
}

// New constructs an alert handler with its dependencies.
func New(dispatcher Dispatcher, resolver NumberResolver, events EventLister, logger *slog.Logger) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		resolver:   resolver,
		events:     events,
		logger:     logger,
	}
}

// Register mounts alert endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/alert", h.HandleAlert)
	r.Get("/alert/events", h.HandleListEvents)
}

type alertRequest struct {
	Mode        string `json:"mode"`
	EventName   string `json:"event_name"`
	Description string `json:"description"`
	Urgency     string `json:"urgency"`
	EventSlug   string `json:"event_slug,omitempty"`
}

func (r alertRequest) validate() (alert.Request, alert.Channel, error) {
	ch, err := alert.ParseChannel(r.Mode)
	if err != nil {
		return alert.Request{}, "", dErrors.New(dErrors.CodeValidation, "mode must be one of: text, call")
	}
	urgency, err := alert.ParseUrgency(r.Urgency)
	if err != nil {
		return alert.Request{}, "", dErrors.New(dErrors.CodeValidation, "urgency must be one of: low, medium, high, critical")
	}

	name := strings.TrimSpace(r.EventName)
	if name == "" || len(name) > 100 {
		return alert.Request{}, "", dErrors.New(dErrors.CodeValidation, "event_name must be between 1 and 100 characters")
	}
	description := strings.TrimSpace(r.Description)
	if description == "" || len(description) > 500 {
		return alert.Request{}, "", dErrors.New(dErrors.CodeValidation, "description must be between 1 and 500 characters")
	}

	return alert.Request{
		EventName:   name,
		Description: description,
		Urgency:     urgency,
		EventID:     strings.TrimSpace(r.EventSlug),
	}, ch, nil
}

// HandleAlert handles POST /alert requests. The response is a summary: a 200
// with success=false means the fan-out ran but reached nobody. Only a channel
// whose credentials were never configured fails the request itself.
func (h *Handler) HandleAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.Decode[alertRequest](w, r, h.logger)
	if !ok {
		return
	}

	a, ch, err := req.validate()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	numbers, err := h.resolver.ResolvePhoneNumbers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to resolve recipients",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp, err := h.dispatcher.Dispatch(ctx, a, numbers, ch)
	if err != nil {
		h.logger.ErrorContext(ctx, "alert dispatch unavailable",
			"request_id", requestID,
			"mode", req.Mode,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "alert request completed",
		"request_id", requestID,
		"mode", req.Mode,
		"event_name", a.EventName,
		"recipients_contacted", resp.RecipientsContacted,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleListEvents handles GET /alert/events requests.
func (h *Handler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	events := h.events.Events()
	if events == nil {
		events = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"count":  len(events),
	})
}
