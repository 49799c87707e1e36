package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	bookingserrors "fitbooker/internal/bookings/errors"
	"fitbooker/internal/bookings/repository"
	"fitbooker/internal/bookings/validator"
	classrepo "fitbooker/internal/classes/repository"
	"fitbooker/pkg/config"
	apperrors "fitbooker/pkg/errors"
	"fitbooker/pkg/logger"
	"fitbooker/pkg/model"
)

func testConfig() *config.Config {
	return &config.Config{
		PublishWindow: time.Second,
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

type fixture struct {
	service BookingService
	catalog classrepo.ClassRepository
	ledger  repository.BookingRepository
}

func newFixture(t *testing.T, classes ...*model.ClassSession) *fixture {
	t.Helper()

	cfg := testConfig()
	catalog := classrepo.NewMemoryCatalog()
	ledger := repository.NewMemoryLedger()

	ctx := context.Background()
	for _, class := range classes {
		if err := catalog.Insert(ctx, class); err != nil {
			t.Fatalf("seed class %d: %v", class.ID, err)
		}
	}

	return &fixture{
		service: NewBookingService(catalog, ledger, validator.NewBookingValidator(cfg.Log), nil, cfg),
		catalog: catalog,
		ledger:  ledger,
	}
}

func class(id int64, capacity int) *model.ClassSession {
	return &model.ClassSession{
		ID:             id,
		Name:           "Yoga Flow",
		StartTime:      time.Now().Add(24 * time.Hour),
		Instructor:     "Sarah Johnson",
		AvailableSlots: capacity,
		TotalSlots:     capacity,
	}
}

func request(classID int64, name, email string) *model.BookingRequest {
	return &model.BookingRequest{
		ClassID:     classID,
		ClientName:  name,
		ClientEmail: email,
	}
}

func availableSlots(t *testing.T, f *fixture, classID int64) int {
	t.Helper()
	c, err := f.catalog.Get(context.Background(), classID)
	if err != nil {
		t.Fatalf("get class %d: %v", classID, err)
	}
	return c.AvailableSlots
}

// Scenario from a single-slot class: first booking succeeds, the second
// client hits a full class, and the first client retrying under different
// casing hits the duplicate guard.
func TestBook_SingleSlotScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, class(1, 1))

	conf, err := f.service.Book(ctx, request(1, "Alice", "a@x.com"))
	if err != nil {
		t.Fatalf("first booking should succeed, got %v", err)
	}
	if conf.BookingID != 1 {
		t.Errorf("expected booking id 1, got %d", conf.BookingID)
	}
	if conf.ClassName != "Yoga Flow" {
		t.Errorf("expected class name in confirmation, got %q", conf.ClassName)
	}
	if conf.Message != "Booking successful!" {
		t.Errorf("unexpected confirmation message %q", conf.Message)
	}
	if got := availableSlots(t, f, 1); got != 0 {
		t.Errorf("expected 0 available slots, got %d", got)
	}

	_, err = f.service.Book(ctx, request(1, "Bob", "b@x.com"))
	if !errors.Is(err, bookingserrors.ErrClassFull) {
		t.Errorf("expected ErrClassFull, got %v", err)
	}

	_, err = f.service.Book(ctx, request(1, "Alice", "A@X.COM"))
	if !errors.Is(err, bookingserrors.ErrDuplicateBooking) {
		t.Errorf("expected ErrDuplicateBooking for re-cased email, got %v", err)
	}
}

// Successful bookings never exceed total capacity, and available slots
// track the success count exactly.
func TestBook_CapacityInvariant(t *testing.T) {
	ctx := context.Background()
	const capacity = 5
	f := newFixture(t, class(1, capacity))

	for i := 0; i < capacity; i++ {
		email := fmt.Sprintf("client%d@x.com", i)
		if _, err := f.service.Book(ctx, request(1, "Client", email)); err != nil {
			t.Fatalf("booking %d should succeed, got %v", i, err)
		}
		if got := availableSlots(t, f, 1); got != capacity-i-1 {
			t.Errorf("after %d bookings expected %d slots, got %d", i+1, capacity-i-1, got)
		}
	}

	_, err := f.service.Book(ctx, request(1, "Late", "late@x.com"))
	if !errors.Is(err, bookingserrors.ErrClassFull) {
		t.Errorf("expected ErrClassFull, got %v", err)
	}
	if got := availableSlots(t, f, 1); got != 0 {
		t.Errorf("available slots must never go negative, got %d", got)
	}
}

// A duplicate attempt fails without touching availability, whatever the
// email casing.
func TestBook_DuplicateDoesNotConsumeSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, class(1, 10))

	if _, err := f.service.Book(ctx, request(1, "Alice", "alice@x.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, email := range []string{"alice@x.com", "ALICE@X.COM", "Alice@X.com"} {
		_, err := f.service.Book(ctx, request(1, "Alice", email))
		if !errors.Is(err, bookingserrors.ErrDuplicateBooking) {
			t.Errorf("email %q: expected ErrDuplicateBooking, got %v", email, err)
		}
	}

	if got := availableSlots(t, f, 1); got != 9 {
		t.Errorf("duplicate attempts must not consume slots, got %d available", got)
	}

	count, _ := f.ledger.Count(ctx)
	if count != 1 {
		t.Errorf("expected exactly 1 ledger record, got %d", count)
	}
}

// Run with -race: capacity+extra concurrent bookings with distinct emails
// yield exactly capacity successes and extra ClassFull failures.
func TestBook_ConcurrentOverbooking(t *testing.T) {
	ctx := context.Background()
	const capacity = 15
	const extra = 10
	f := newFixture(t, class(1, capacity))

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes, full := 0, 0

	for i := 0; i < capacity+extra; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := fmt.Sprintf("client%d@x.com", i)
			_, err := f.service.Book(ctx, request(1, "Client", email))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, bookingserrors.ErrClassFull):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if successes != capacity {
		t.Errorf("expected %d successes, got %d", capacity, successes)
	}
	if full != extra {
		t.Errorf("expected %d ClassFull failures, got %d", extra, full)
	}
	if got := availableSlots(t, f, 1); got != 0 {
		t.Errorf("expected 0 available slots, got %d", got)
	}

	count, _ := f.ledger.Count(ctx)
	if count != capacity {
		t.Errorf("expected %d ledger records, got %d", capacity, count)
	}
}

// Concurrent duplicate attempts for the same new email produce exactly one
// booking.
func TestBook_ConcurrentSameEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, class(1, 10))

	const attempts = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes, duplicates := 0, 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.Book(ctx, request(1, "Alice", "alice@x.com"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, bookingserrors.ErrDuplicateBooking):
				duplicates++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("expected exactly 1 success, got %d", successes)
	}
	if duplicates != attempts-1 {
		t.Errorf("expected %d duplicates, got %d", attempts-1, duplicates)
	}
	if got := availableSlots(t, f, 1); got != 9 {
		t.Errorf("expected 9 available slots, got %d", got)
	}
}

// Booking an unknown class fails with ClassNotFound and leaves both stores
// untouched.
func TestBook_ClassNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, class(1, 5))

	_, err := f.service.Book(ctx, request(42, "Carl", "c@x.com"))
	if !errors.Is(err, bookingserrors.ErrClassNotFound) {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}

	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus != 404 {
		t.Errorf("expected 404 status, got %d", appErr.HTTPStatus)
	}

	if got := availableSlots(t, f, 1); got != 5 {
		t.Errorf("catalog must be unchanged, got %d slots", got)
	}
	count, _ := f.ledger.Count(ctx)
	if count != 0 {
		t.Errorf("ledger must be unchanged, got %d records", count)
	}
	bookings, _ := f.service.ListByEmail(ctx, "c@x.com")
	if len(bookings) != 0 {
		t.Errorf("expected no bookings for c@x.com, got %d", len(bookings))
	}
}

func TestBook_ValidationRejectedBeforeCore(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, class(1, 5))

	tests := []struct {
		name string
		req  *model.BookingRequest
	}{
		{"bad email", request(1, "Alice", "not-an-email")},
		{"bad name", request(1, "Alice123", "alice@x.com")},
		{"zero class id", request(0, "Alice", "alice@x.com")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Book(ctx, tt.req)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			appErr := apperrors.AsAppError(err)
			if appErr.Code != apperrors.CodeValidation {
				t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
			}
		})
	}

	if got := availableSlots(t, f, 1); got != 5 {
		t.Errorf("validation failures must not touch the catalog, got %d slots", got)
	}
}

// The same client may book different classes; lookup folds email casing
// and preserves creation order.
func TestListByEmail_AcrossClasses(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, class(1, 5), class(2, 5))

	if _, err := f.service.Book(ctx, request(1, "Alice", "a@x.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.service.Book(ctx, request(2, "Alice", "A@X.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bookings, err := f.service.ListByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings regardless of casing, got %d", len(bookings))
	}
	if bookings[0].ClassID != 1 || bookings[1].ClassID != 2 {
		t.Errorf("expected creation order [1 2], got [%d %d]", bookings[0].ClassID, bookings[1].ClassID)
	}
}

func TestListByEmail_EmptyEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ListByEmail(context.Background(), "   ")
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, appErr.Code)
	}
}

// --- failure-unit behavior ---

type mockLedger struct {
	repository.BookingRepository
	insertFunc func(ctx context.Context, record *model.BookingRecord) (int64, error)
}

func (m *mockLedger) Insert(ctx context.Context, record *model.BookingRecord) (int64, error) {
	return m.insertFunc(ctx, record)
}

// If the ledger insert fails after the slot was taken, the decrement is
// rolled back before the lock is released.
func TestBook_RollbackOnInsertFailure(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	catalog := classrepo.NewMemoryCatalog()
	if err := catalog.Insert(ctx, class(1, 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ledger := &mockLedger{
		BookingRepository: repository.NewMemoryLedger(),
		insertFunc: func(ctx context.Context, record *model.BookingRecord) (int64, error) {
			return 0, errors.New("ledger write failed")
		},
	}

	svc := NewBookingService(catalog, ledger, validator.NewBookingValidator(cfg.Log), nil, cfg)

	_, err := svc.Book(ctx, request(1, "Alice", "alice@x.com"))
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}

	got, getErr := catalog.Get(ctx, 1)
	if getErr != nil {
		t.Fatalf("unexpected error: %v", getErr)
	}
	if got.AvailableSlots != 3 {
		t.Errorf("expected decrement rolled back to 3 slots, got %d", got.AvailableSlots)
	}
}

// --- event publishing ---

type mockPublisher struct {
	mu        sync.Mutex
	confirmed []*model.BookingRecord
	err       error
}

func (m *mockPublisher) BookingConfirmed(_ context.Context, record *model.BookingRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.confirmed = append(m.confirmed, record)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func TestBook_PublishesConfirmedEvent(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	catalog := classrepo.NewMemoryCatalog()
	if err := catalog.Insert(ctx, class(1, 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	publisher := &mockPublisher{}

	svc := NewBookingService(catalog, repository.NewMemoryLedger(), validator.NewBookingValidator(cfg.Log), publisher, cfg)

	if _, err := svc.Book(ctx, request(1, "Alice", "alice@x.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(publisher.confirmed) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.confirmed))
	}
	if publisher.confirmed[0].ClassID != 1 || publisher.confirmed[0].ID != 1 {
		t.Errorf("published record should carry class and booking ids, got %+v", publisher.confirmed[0])
	}
}

func TestBook_PublishFailureDoesNotFailBooking(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	catalog := classrepo.NewMemoryCatalog()
	if err := catalog.Insert(ctx, class(1, 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	publisher := &mockPublisher{err: errors.New("broker unreachable")}

	svc := NewBookingService(catalog, repository.NewMemoryLedger(), validator.NewBookingValidator(cfg.Log), publisher, cfg)

	if _, err := svc.Book(ctx, request(1, "Alice", "alice@x.com")); err != nil {
		t.Fatalf("booking must succeed despite publish failure, got %v", err)
	}
}
