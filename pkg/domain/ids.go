// Package domain holds typed identifiers shared across modules. Typed IDs
// prevent cross-type assignment at compile time and enforce validity at the
// trust boundary via their Parse functions.
package domain

import (
	"github.com/google/uuid"

	dErrors "aegis/pkg/domain-errors"
)

// RecipientID identifies a registered recipient.
type RecipientID uuid.UUID

// NewRecipientID allocates a fresh random recipient identifier.
func NewRecipientID() RecipientID {
	return RecipientID(uuid.New())
}

// ParseRecipientID validates and returns a RecipientID.
// Rejects empty strings, malformed UUIDs, and the nil UUID.
func ParseRecipientID(s string) (RecipientID, error) {
	if s == "" {
		return RecipientID{}, dErrors.New(dErrors.CodeInvalidInput, "recipient id is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return RecipientID{}, dErrors.New(dErrors.CodeInvalidInput, "recipient id must be a valid UUID")
	}
	if u == uuid.Nil {
		return RecipientID{}, dErrors.New(dErrors.CodeInvalidInput, "recipient id must not be the nil UUID")
	}
	return RecipientID(u), nil
}

func (id RecipientID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the ID is the zero value.
func (id RecipientID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

// MarshalText implements encoding.TextMarshaler so RecipientID serializes as
// its canonical UUID string in JSON payloads.
func (id RecipientID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with the same validation
// as ParseRecipientID.
func (id *RecipientID) UnmarshalText(b []byte) error {
	parsed, err := ParseRecipientID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
