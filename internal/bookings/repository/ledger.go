package repository

import (
	"context"
	"sync"

	"fitbooker/pkg/model"
	"fitbooker/pkg/sanitizer"
)

// BookingRepository is the booking ledger. Records are append-only; emails
// are compared case-insensitively everywhere.
type BookingRepository interface {
	Insert(ctx context.Context, record *model.BookingRecord) (int64, error)
	Exists(ctx context.Context, classID int64, email string) (bool, error)
	ListByEmail(ctx context.Context, email string) ([]*model.BookingRecord, error)
	Count(ctx context.Context) (int64, error)
}

type memoryLedger struct {
	mu       sync.RWMutex
	bookings []*model.BookingRecord
	byClass  map[int64]map[string]struct{} // class id -> folded emails
	nextID   int64
}

func NewMemoryLedger() BookingRepository {
	return &memoryLedger{
		byClass: make(map[int64]map[string]struct{}),
		nextID:  1,
	}
}

// Insert assigns the next booking id under the store lock, so ids are
// unique and monotonic even under concurrent inserts.
func (r *memoryLedger) Insert(_ context.Context, record *model.BookingRecord) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *record
	stored.ID = r.nextID
	r.nextID++

	r.bookings = append(r.bookings, &stored)

	emails, ok := r.byClass[stored.ClassID]
	if !ok {
		emails = make(map[string]struct{})
		r.byClass[stored.ClassID] = emails
	}
	emails[sanitizer.FoldEmail(stored.ClientEmail)] = struct{}{}

	record.ID = stored.ID
	return stored.ID, nil
}

func (r *memoryLedger) Exists(_ context.Context, classID int64, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emails, ok := r.byClass[classID]
	if !ok {
		return false, nil
	}
	_, found := emails[sanitizer.FoldEmail(email)]
	return found, nil
}

// ListByEmail returns copies in insertion order.
func (r *memoryLedger) ListByEmail(_ context.Context, email string) ([]*model.BookingRecord, error) {
	folded := sanitizer.FoldEmail(email)

	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*model.BookingRecord, 0)
	for _, booking := range r.bookings {
		if sanitizer.FoldEmail(booking.ClientEmail) == folded {
			copied := *booking
			matches = append(matches, &copied)
		}
	}
	return matches, nil
}

func (r *memoryLedger) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.bookings)), nil
}
