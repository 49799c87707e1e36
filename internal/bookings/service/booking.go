package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	bookingserrors "fitbooker/internal/bookings/errors"
	"fitbooker/internal/bookings/events"
	"fitbooker/internal/bookings/repository"
	"fitbooker/internal/bookings/validator"
	classerrors "fitbooker/internal/classes/errors"
	classrepo "fitbooker/internal/classes/repository"
	"fitbooker/pkg/config"
	apperrors "fitbooker/pkg/errors"
	"fitbooker/pkg/model"
	"fitbooker/pkg/sanitizer"
)

const confirmationMessage = "Booking successful!"

type BookingService interface {
	Book(ctx context.Context, req *model.BookingRequest) (*model.BookingConfirmation, error)
	ListByEmail(ctx context.Context, email string) ([]*model.BookingRecord, error)
}

// classLocks hands out one mutex per class id. Classes are never deleted,
// so entries live for the process lifetime.
type classLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newClassLocks() *classLocks {
	return &classLocks{locks: make(map[int64]*sync.Mutex)}
}

func (l *classLocks) acquire(classID int64) *sync.Mutex {
	l.mu.Lock()
	m, ok := l.locks[classID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[classID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m
}

type bookingService struct {
	classes   classrepo.ClassRepository
	ledger    repository.BookingRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
	locks     *classLocks
	now       func() time.Time
}

// NewBookingService builds the booking coordinator. publisher may be nil
// when event publishing is disabled.
func NewBookingService(
	classes classrepo.ClassRepository,
	ledger repository.BookingRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		classes:   classes,
		ledger:    ledger,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		locks:     newClassLocks(),
		now:       time.Now,
	}
}

// Book runs the whole check-then-act sequence under the class's exclusive
// lock: resolve class, reject duplicates, take a slot, record the booking.
// The duplicate check runs before the decrement so a retried duplicate
// never consumes a slot. A failed call leaves catalog and ledger unchanged.
func (s *bookingService) Book(ctx context.Context, req *model.BookingRequest) (*model.BookingConfirmation, error) {
	s.sanitize(req)
	if err := s.validate(req); err != nil {
		return nil, err
	}

	confirmation, record, err := s.bookClass(ctx, req)
	if err != nil {
		s.cfg.Log.Warn("Booking rejected",
			"class_id", req.ClassID,
			"client_email", req.ClientEmail,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Booking created successfully",
		"booking_id", confirmation.BookingID,
		"class_id", req.ClassID,
		"class_name", confirmation.ClassName,
		"client_email", req.ClientEmail,
	)

	s.publishConfirmed(ctx, record)
	return confirmation, nil
}

// bookClass holds the per-class lock across the duplicate check, the
// capacity decrement, and the ledger insert, so no interleaving can
// double-book a client or oversell the class.
func (s *bookingService) bookClass(ctx context.Context, req *model.BookingRequest) (*model.BookingConfirmation, *model.BookingRecord, error) {
	lock := s.locks.acquire(req.ClassID)
	defer lock.Unlock()

	class, err := s.classes.Get(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, classerrors.ErrNotFound) {
			return nil, nil, apperrors.Wrap(bookingserrors.ErrClassNotFound,
				apperrors.CodeNotFound, "Class not found", http.StatusNotFound).
				WithDetails(map[string]any{"class_id": req.ClassID})
		}
		return nil, nil, apperrors.Internal("Failed to resolve class", err)
	}

	exists, err := s.ledger.Exists(ctx, req.ClassID, req.ClientEmail)
	if err != nil {
		return nil, nil, apperrors.Internal("Failed to check existing bookings", err)
	}
	if exists {
		return nil, nil, apperrors.Wrap(bookingserrors.ErrDuplicateBooking,
			bookingserrors.CodeDuplicateBooking, "You have already booked this class.", http.StatusConflict)
	}

	if _, err := s.classes.Decrement(ctx, req.ClassID); err != nil {
		if errors.Is(err, classerrors.ErrCapacityExhausted) {
			return nil, nil, apperrors.Wrap(bookingserrors.ErrClassFull,
				bookingserrors.CodeClassFull, "This class is full. No available slots.", http.StatusConflict)
		}
		return nil, nil, apperrors.Internal("Failed to reserve slot", err)
	}

	record := &model.BookingRecord{
		ClassID:     class.ID,
		ClassName:   class.Name,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClassStart:  class.StartTime,
		CreatedAt:   s.now(),
	}

	bookingID, err := s.ledger.Insert(ctx, record)
	if err != nil {
		// Decrement and insert are one failure unit: give the slot back
		// before releasing the lock.
		if restoreErr := s.classes.Restore(ctx, req.ClassID); restoreErr != nil {
			s.cfg.Log.Error("Failed to restore slot after ledger insert failure",
				"class_id", req.ClassID,
				"error", restoreErr,
			)
		}
		return nil, nil, apperrors.Internal("Failed to create booking", err)
	}

	return &model.BookingConfirmation{
		BookingID:   bookingID,
		ClassName:   class.Name,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClassStart:  class.StartTime,
		Message:     confirmationMessage,
	}, record, nil
}

func (s *bookingService) ListByEmail(ctx context.Context, email string) ([]*model.BookingRecord, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}

	bookings, err := s.ledger.ListByEmail(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "client_email", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	s.cfg.Log.Debug("Bookings listed", "client_email", email, "count", len(bookings))
	return bookings, nil
}

// --- Helpers ---

func (s *bookingService) sanitize(req *model.BookingRequest) {
	req.ClientName = sanitizer.NormalizeName(req.ClientName)
	req.ClientEmail = sanitizer.NormalizeEmail(req.ClientEmail)
}

func (s *bookingService) validate(req *model.BookingRequest) error {
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// publishConfirmed runs after the class lock is released; publish failures
// are logged, never surfaced.
func (s *bookingService) publishConfirmed(ctx context.Context, record *model.BookingRecord) {
	if s.publisher == nil {
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.PublishWindow)
	defer cancel()

	if err := s.publisher.BookingConfirmed(publishCtx, record); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"booking_id", record.ID,
			"class_id", record.ClassID,
			"error", err,
		)
	}
}
