package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"aegis/internal/registry"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/httputil"
	"aegis/pkg/requestcontext"
)

// Service defines the registry operations the HTTP layer depends on.
type Service interface {
	Register(ctx context.Context, in registry.RegisterInput) (*registry.Recipient, error)
	ListRecipients(ctx context.Context) ([]registry.Recipient, error)
	UpdateLocation(ctx context.Context, recipientID id.RecipientID, lat, lon, accuracy float64) error
	ListLocations(ctx context.Context) ([]registry.LocationView, error)
}

// Handler wires registry endpoints to the registry service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a registry handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts registry endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/register", h.HandleRegister)
	r.Get("/users", h.HandleListUsers)
	r.Post("/location", h.HandleUpdateLocation)
	r.Get("/locations", h.HandleListLocations)
}

type registerRequest struct {
	FullName           string `json:"full_name"`
	PhoneNumber        string `json:"phone_number"`
	Age                int    `json:"age,omitempty"`
	Gender             string `json:"gender,omitempty"`
	MedicalInformation string `json:"medical_information,omitempty"`
	EmergencyContact   string `json:"emergency_contact,omitempty"`
	IDInformation      string `json:"id_information,omitempty"`
}

type registerResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	UserID  id.RecipientID `json:"user_id"`
}

// HandleRegister handles POST /register requests.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[registerRequest](w, r, h.logger)
	if !ok {
		return
	}

	recipient, err := h.service.Register(ctx, registry.RegisterInput{
		FullName:           req.FullName,
		PhoneNumber:        req.PhoneNumber,
		Age:                req.Age,
		Gender:             req.Gender,
		MedicalInformation: req.MedicalInformation,
		EmergencyContact:   req.EmergencyContact,
		IDInformation:      req.IDInformation,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "registration rejected",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, registerResponse{
		Success: true,
		Message: "registration successful",
		UserID:  recipient.ID,
	})
}

// HandleListUsers handles GET /users requests. Administrative endpoint: the
// full stored profile is returned without redaction.
func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recipients, err := h.service.ListRecipients(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"users": recipients,
		"count": len(recipients),
	})
}

type locationRequest struct {
	UserID    string  `json:"user_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

// HandleUpdateLocation handles POST /location requests.
func (h *Handler) HandleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[locationRequest](w, r, h.logger)
	if !ok {
		return
	}

	recipientID, err := id.ParseRecipientID(req.UserID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.UpdateLocation(ctx, recipientID, req.Latitude, req.Longitude, req.Accuracy); err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.WarnContext(ctx, "location update rejected",
				"request_id", requestcontext.RequestID(ctx),
				"recipient_id", req.UserID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "location updated",
	})
}

// HandleListLocations handles GET /locations requests. Presence is derived
// against the request time on every read.
func (h *Handler) HandleListLocations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	views, err := h.service.ListLocations(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"locations": views,
		"count":     len(views),
	})
}
