package registry

import (
	"context"

	id "aegis/pkg/domain"
)

// RecipientStore owns Recipient lifetimes. Implementations return
// sentinel.ErrAlreadyUsed from Create when the phone number is taken and
// sentinel.ErrNotFound from FindByID for unknown IDs.
type RecipientStore interface {
	Create(ctx context.Context, r Recipient) error
	FindByID(ctx context.Context, recipientID id.RecipientID) (Recipient, error)
	List(ctx context.Context) ([]Recipient, error)
	Count(ctx context.Context) (int, error)
}

// LocationStore owns LocationRecord lifetimes. Upsert overwrites the whole
// record for a recipient.
type LocationStore interface {
	Upsert(ctx context.Context, rec LocationRecord) error
	List(ctx context.Context) ([]LocationRecord, error)
	Count(ctx context.Context) (int, error)
}
