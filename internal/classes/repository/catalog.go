package repository

import (
	"context"
	"sync"

	classerrors "fitbooker/internal/classes/errors"
	"fitbooker/pkg/model"
)

// ClassRepository is the class catalog. Decrement and Restore are the only
// mutations after seeding; both are atomic with respect to concurrent
// callers on the same class.
type ClassRepository interface {
	Insert(ctx context.Context, class *model.ClassSession) error
	Get(ctx context.Context, id int64) (*model.ClassSession, error)
	List(ctx context.Context) ([]*model.ClassSession, error)
	Decrement(ctx context.Context, id int64) (int, error)
	Restore(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

type memoryCatalog struct {
	mu      sync.RWMutex
	classes map[int64]*model.ClassSession
	order   []int64
}

func NewMemoryCatalog() ClassRepository {
	return &memoryCatalog{
		classes: make(map[int64]*model.ClassSession),
	}
}

func (r *memoryCatalog) Insert(_ context.Context, class *model.ClassSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.classes[class.ID]; exists {
		return classerrors.ErrDuplicateID
	}

	stored := *class
	r.classes[class.ID] = &stored
	r.order = append(r.order, class.ID)
	return nil
}

// Get returns a copy so callers never observe a half-updated session.
func (r *memoryCatalog) Get(_ context.Context, id int64) (*model.ClassSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	class, ok := r.classes[id]
	if !ok {
		return nil, classerrors.ErrNotFound
	}

	copied := *class
	return &copied, nil
}

// List returns copies in insertion order.
func (r *memoryCatalog) List(_ context.Context) ([]*model.ClassSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	classes := make([]*model.ClassSession, 0, len(r.order))
	for _, id := range r.order {
		copied := *r.classes[id]
		classes = append(classes, &copied)
	}
	return classes, nil
}

// Decrement takes one slot from the class and returns the new available
// count. Two concurrent callers never both succeed on the last slot.
func (r *memoryCatalog) Decrement(_ context.Context, id int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	class, ok := r.classes[id]
	if !ok {
		return 0, classerrors.ErrNotFound
	}
	if class.AvailableSlots <= 0 {
		return 0, classerrors.ErrCapacityExhausted
	}

	class.AvailableSlots--
	return class.AvailableSlots, nil
}

// Restore undoes a prior Decrement. Available slots never exceed total.
func (r *memoryCatalog) Restore(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	class, ok := r.classes[id]
	if !ok {
		return classerrors.ErrNotFound
	}
	if class.AvailableSlots >= class.TotalSlots {
		return classerrors.ErrNotDecremented
	}

	class.AvailableSlots++
	return nil
}

func (r *memoryCatalog) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.classes), nil
}
