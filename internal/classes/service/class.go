package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	classerrors "fitbooker/internal/classes/errors"
	"fitbooker/internal/classes/repository"
	"fitbooker/pkg/config"
	apperrors "fitbooker/pkg/errors"
	"fitbooker/pkg/model"

	"github.com/go-playground/validator/v10"
)

// ClassService exposes the class catalog to the transport layer.
type ClassService interface {
	List(ctx context.Context) ([]*model.ClassSession, error)
	GetByID(ctx context.Context, id int64) (*model.ClassSession, error)
	Availability(ctx context.Context, id int64) (*model.ClassAvailability, error)
	Populate(ctx context.Context, classes []*model.ClassSession) error
}

type classService struct {
	catalog  repository.ClassRepository
	validate *validator.Validate
	cfg      *config.Config
	now      func() time.Time
}

func NewClassService(catalog repository.ClassRepository, cfg *config.Config) ClassService {
	return &classService{
		catalog:  catalog,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *classService) List(ctx context.Context) ([]*model.ClassSession, error) {
	classes, err := s.catalog.List(ctx)
	if err != nil {
		s.cfg.Log.Error("failed to list classes", "error", err)
		return nil, apperrors.Internal("failed to list classes", err)
	}
	return classes, nil
}

func (s *classService) GetByID(ctx context.Context, id int64) (*model.ClassSession, error) {
	class, err := s.catalog.Get(ctx, id)
	if err != nil {
		if errors.Is(err, classerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Class", id)
		}
		s.cfg.Log.Error("failed to get class", "class_id", id, "error", err)
		return nil, apperrors.Internal("failed to get class", err)
	}
	return class, nil
}

// Availability reports slot state for a class. An unknown id is reported
// in the payload rather than as an error so clients can poll freely.
func (s *classService) Availability(ctx context.Context, id int64) (*model.ClassAvailability, error) {
	class, err := s.catalog.Get(ctx, id)
	if err != nil {
		if errors.Is(err, classerrors.ErrNotFound) {
			return &model.ClassAvailability{
				Available: false,
				Message:   "Class not found",
			}, nil
		}
		s.cfg.Log.Error("failed to check availability", "class_id", id, "error", err)
		return nil, apperrors.Internal("failed to check availability", err)
	}

	availability := &model.ClassAvailability{
		Available:      class.AvailableSlots > 0,
		AvailableSlots: class.AvailableSlots,
		TotalSlots:     class.TotalSlots,
		ClassName:      class.Name,
		StartTime:      &class.StartTime,
	}
	if availability.Available {
		availability.Message = "Slots available"
	} else {
		availability.Message = "Class is full"
	}
	return availability, nil
}

// Populate loads the catalog with a generated schedule. Each class is
// validated before insertion; schedules are generated in the future so a
// past start time indicates a seeding bug.
func (s *classService) Populate(ctx context.Context, classes []*model.ClassSession) error {
	now := s.now()
	for _, class := range classes {
		if err := s.validate.Struct(class); err != nil {
			return apperrors.Validation(
				fmt.Sprintf("invalid class %d", class.ID),
				map[string]any{"error": err.Error()})
		}
		if !class.StartTime.After(now) {
			return apperrors.Validation(
				fmt.Sprintf("class %d starts in the past", class.ID), nil)
		}
		if err := s.catalog.Insert(ctx, class); err != nil {
			return apperrors.Internal(fmt.Sprintf("failed to insert class %d", class.ID), err)
		}
	}

	count, err := s.catalog.Count(ctx)
	if err == nil {
		s.cfg.Log.Info("class catalog populated", "classes", count)
	}
	return nil
}
