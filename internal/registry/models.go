package registry

import (
	"time"

	id "aegis/pkg/domain"
)

// Recipient is a registered person eligible to receive alerts.
//
// Invariants:
//   - PhoneNumber is unique across the registry, enforced at registration
//   - RegisteredAt is immutable after construction
//
// Profile fields beyond name and phone are optional free text collected at
// registration; the gateway stores them verbatim for operator visibility and
// never interprets them.
type Recipient struct {
	ID                 id.RecipientID `json:"user_id"`
	FullName           string         `json:"full_name"`
	PhoneNumber        string         `json:"phone_number"`
	Age                int            `json:"age,omitempty"`
	Gender             string         `json:"gender,omitempty"`
	MedicalInformation string         `json:"medical_information,omitempty"`
	EmergencyContact   string         `json:"emergency_contact,omitempty"`
	IDInformation      string         `json:"id_information,omitempty"`
	RegisteredAt       time.Time      `json:"registered_at"`
}

// LocationRecord is the last-known GPS fix for a recipient. Created or
// overwritten whole on each update; never partially mutated.
type LocationRecord struct {
	RecipientID id.RecipientID `json:"user_id"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Accuracy    float64        `json:"accuracy"`
	LastUpdated time.Time      `json:"last_updated"`
}

// Presence is the derived online/offline state of a location record.
type Presence string

const (
	PresenceOnline  Presence = "online"
	PresenceOffline Presence = "offline"
)

// StalenessThreshold is the window after which a location fix no longer
// counts as online.
const StalenessThreshold = 300 * time.Second

// LocationView pairs a stored record with its presence derived at read time.
// Presence is a view over LastUpdated, not a stored fact: nothing writes
// "offline" back to the store.
type LocationView struct {
	LocationRecord
	Status Presence `json:"status"`
}

// PresenceAt derives the record's presence as of now.
func (r LocationRecord) PresenceAt(now time.Time) Presence {
	if now.Sub(r.LastUpdated) < StalenessThreshold {
		return PresenceOnline
	}
	return PresenceOffline
}
