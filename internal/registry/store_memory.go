package registry

import (
	"context"
	"sync"

	id "aegis/pkg/domain"
	"aegis/pkg/platform/sentinel"
)

// In-memory stores keep the registry process-lifetime only: all state is lost
// on restart, which is the system's contract. They intentionally favor
// clarity over performance.

type InMemoryRecipientStore struct {
	mu         sync.RWMutex
	recipients map[id.RecipientID]Recipient
}

func NewInMemoryRecipientStore() *InMemoryRecipientStore {
	return &InMemoryRecipientStore{recipients: make(map[id.RecipientID]Recipient)}
}

// Create stores the recipient, rejecting duplicate phone numbers with
// sentinel.ErrAlreadyUsed. The duplicate check is a linear scan; registry
// sizes here never justify an index.
func (s *InMemoryRecipientStore) Create(_ context.Context, r Recipient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.recipients {
		if existing.PhoneNumber == r.PhoneNumber {
			return sentinel.ErrAlreadyUsed
		}
	}
	s.recipients[r.ID] = r
	return nil
}

func (s *InMemoryRecipientStore) FindByID(_ context.Context, recipientID id.RecipientID) (Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.recipients[recipientID]; ok {
		return r, nil
	}
	return Recipient{}, sentinel.ErrNotFound
}

// List returns a snapshot; iteration order carries no meaning.
func (s *InMemoryRecipientStore) List(_ context.Context) ([]Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Recipient, 0, len(s.recipients))
	for _, r := range s.recipients {
		out = append(out, r)
	}
	return out, nil
}

func (s *InMemoryRecipientStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipients), nil
}

type InMemoryLocationStore struct {
	mu        sync.RWMutex
	locations map[id.RecipientID]LocationRecord
}

func NewInMemoryLocationStore() *InMemoryLocationStore {
	return &InMemoryLocationStore{locations: make(map[id.RecipientID]LocationRecord)}
}

// Upsert overwrites any existing record for the recipient.
func (s *InMemoryLocationStore) Upsert(_ context.Context, rec LocationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[rec.RecipientID] = rec
	return nil
}

func (s *InMemoryLocationStore) List(_ context.Context) ([]LocationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]LocationRecord, 0, len(s.locations))
	for _, rec := range s.locations {
		out = append(out, rec)
	}
	return out, nil
}

func (s *InMemoryLocationStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.locations), nil
}
