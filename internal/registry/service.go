package registry

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/sentinel"
	"aegis/pkg/requestcontext"

	registrymetrics "aegis/internal/registry/metrics"
)

// RegisterInput carries the caller-supplied profile for a new recipient.
type RegisterInput struct {
	FullName           string
	PhoneNumber        string
	Age                int
	Gender             string
	MedicalInformation string
	EmergencyContact   string
	IDInformation      string
}

// Service orchestrates recipient registration, phone-number resolution, and
// location tracking over the in-memory stores.
type Service struct {
	recipients      RecipientStore
	locations       LocationStore
	fallbackNumbers []string
	logger          *slog.Logger
	metrics         *registrymetrics.Metrics
}

// New constructs the registry service. fallbackNumbers are always included in
// the alert fan-out target set. metrics may be nil in tests.
func New(recipients RecipientStore, locations LocationStore, fallbackNumbers []string, logger *slog.Logger, metrics *registrymetrics.Metrics) *Service {
	return &Service{
		recipients:      recipients,
		locations:       locations,
		fallbackNumbers: fallbackNumbers,
		logger:          logger,
		metrics:         metrics,
	}
}

// Register validates the profile, allocates a fresh identifier, and stores
// the recipient. A phone number already held by another recipient is rejected
// with a conflict; the attempt is never merged into the existing record.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Recipient, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	if in.FullName == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "full name is required")
	}
	if in.PhoneNumber == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "phone number is required")
	}
	if in.Age < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "age must not be negative")
	}

	r := Recipient{
		ID:                 id.NewRecipientID(),
		FullName:           in.FullName,
		PhoneNumber:        in.PhoneNumber,
		Age:                in.Age,
		Gender:             in.Gender,
		MedicalInformation: in.MedicalInformation,
		EmergencyContact:   in.EmergencyContact,
		IDInformation:      in.IDInformation,
		RegisteredAt:       requestcontext.Now(ctx),
	}
	if err := s.recipients.Create(ctx, r); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "phone number already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store recipient")
	}

	s.metrics.IncrementRecipientsRegistered()
	s.logger.InfoContext(ctx, "recipient registered",
		"recipient_id", r.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return &r, nil
}

// ListRecipients returns a snapshot of all registered recipients.
func (s *Service) ListRecipients(ctx context.Context) ([]Recipient, error) {
	return s.recipients.List(ctx)
}

// RecipientCount reports the registry size for health reporting.
func (s *Service) RecipientCount(ctx context.Context) (int, error) {
	return s.recipients.Count(ctx)
}

// ResolvePhoneNumbers returns the effective fan-out target set: the union of
// all registered recipients' numbers and the configured fallback numbers,
// deduplicated. Order carries no meaning.
func (s *Service) ResolvePhoneNumbers(ctx context.Context) ([]string, error) {
	recipients, err := s.recipients.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list recipients")
	}

	seen := make(map[string]struct{}, len(recipients)+len(s.fallbackNumbers))
	numbers := make([]string, 0, len(recipients)+len(s.fallbackNumbers))
	add := func(n string) {
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		numbers = append(numbers, n)
	}
	for _, r := range recipients {
		add(r.PhoneNumber)
	}
	for _, n := range s.fallbackNumbers {
		add(n)
	}
	return numbers, nil
}

// UpdateLocation overwrites the recipient's last-known fix with the new
// coordinates and the request time. Unknown recipients are rejected and no
// record is created for them.
func (s *Service) UpdateLocation(ctx context.Context, recipientID id.RecipientID, lat, lon, accuracy float64) error {
	if lat < -90 || lat > 90 {
		return dErrors.New(dErrors.CodeValidation, "latitude must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return dErrors.New(dErrors.CodeValidation, "longitude must be between -180 and 180")
	}
	if accuracy < 0 {
		return dErrors.New(dErrors.CodeValidation, "accuracy must not be negative")
	}

	if _, err := s.recipients.FindByID(ctx, recipientID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "unknown recipient")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up recipient")
	}

	rec := LocationRecord{
		RecipientID: recipientID,
		Latitude:    lat,
		Longitude:   lon,
		Accuracy:    accuracy,
		LastUpdated: requestcontext.Now(ctx),
	}
	if err := s.locations.Upsert(ctx, rec); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store location")
	}

	s.metrics.IncrementLocationUpdates()
	return nil
}

// ListLocations returns all stored fixes with presence derived against the
// request time. The stored timestamps are untouched; presence is a view.
func (s *Service) ListLocations(ctx context.Context) ([]LocationView, error) {
	records, err := s.locations.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list locations")
	}

	now := requestcontext.Now(ctx)
	views := make([]LocationView, 0, len(records))
	for _, rec := range records {
		views = append(views, LocationView{
			LocationRecord: rec,
			Status:         rec.PresenceAt(now),
		})
	}
	return views, nil
}
