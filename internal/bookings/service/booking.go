package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	bookingserrors "eventdesk/internal/bookings/errors"
	"eventdesk/internal/bookings/repository"
	"eventdesk/internal/bookings/validator"
	eventserrors "eventdesk/internal/events/errors"
	"eventdesk/pkg/config"
	apperrors "eventdesk/pkg/errors"
	"eventdesk/pkg/kafka"
	"eventdesk/pkg/model"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	GetByEvent(ctx context.Context, eventID string, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) error
	Delete(ctx context.Context, id string) error
}

// EventDirectory answers the one existence query behind the referential
// integrity check. The events repository implements it.
type EventDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Publisher emits domain messages. Nil disables publishing.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type bookingService struct {
	repo      repository.BookingRepository
	events    EventDirectory
	validator *validator.BookingValidator
	publisher Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	events EventDirectory,
	validator *validator.BookingValidator,
	publisher Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		events:    events,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	booking.Email = strings.TrimSpace(booking.Email)
	booking.EventID = strings.TrimSpace(booking.EventID)

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Invalid booking input", map[string]any{"error": err.Error()})
	}

	// New record: the event reference is always checked before persisting.
	if err := s.checkEventExists(ctx, booking.EventID); err != nil {
		return err
	}

	booking.ConfirmationCode = uuid.New().String()

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	s.publish(ctx, booking)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"event_id", booking.EventID,
		"confirmation_code", booking.ConfirmationCode,
	)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) GetByEvent(ctx context.Context, eventID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if eventID == "" {
		return nil, 0, apperrors.InvalidInput("Event ID cannot be empty")
	}

	bookings, err := s.repo.FindByEvent(ctx, eventID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by event", "event_id", eventID, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve bookings", err)
	}

	count, err := s.repo.CountByEvent(ctx, eventID)
	if err != nil {
		s.cfg.Log.Error("Failed to count bookings by event", "event_id", eventID, "error", err)
		return nil, 0, apperrors.Internal("Failed to count bookings", err)
	}

	return bookings, count, nil
}

func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		return apperrors.Internal("Failed to check booking existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := *existing
	if updates.EventID != nil {
		merged.EventID = strings.TrimSpace(*updates.EventID)
	}
	if updates.Email != nil {
		merged.Email = strings.TrimSpace(*updates.Email)
	}

	if err := s.validator.Validate(&merged); err != nil {
		return apperrors.Validation("Invalid booking input", map[string]any{"error": err.Error()})
	}

	// The reference is re-checked only when it was actually moved; unrelated
	// edits skip the existence lookup.
	if merged.EventID != existing.EventID {
		if err := s.checkEventExists(ctx, merged.EventID); err != nil {
			return err
		}
	}

	if _, err := s.repo.Update(ctx, id, &merged); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return apperrors.Internal("Failed to update booking", err)
	}

	s.cfg.Log.Info("Booking updated successfully", "id", id)
	return nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted", "id", id)
	return nil
}

func (s *bookingService) checkEventExists(ctx context.Context, eventID string) error {
	exists, err := s.events.Exists(ctx, eventID)
	if err != nil {
		if errors.Is(err, eventserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid event ID format")
		}
		s.cfg.Log.Error("Failed to check event existence", "event_id", eventID, "error", err)
		return apperrors.Internal("Failed to verify event reference", err)
	}
	if !exists {
		return apperrors.Reference(bookingserrors.ErrEventNotFound.Error(), map[string]any{
			"event_id": eventID,
		})
	}
	return nil
}

// publish is best-effort: a broker failure is logged, never surfaced to the
// caller whose reservation already persisted.
func (s *bookingService) publish(ctx context.Context, booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(booking.ConfirmationCode).
		WithType(kafka.TypeBookingCreated).
		WithSource("bookings").
		WithValue(booking).
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish booking message",
			"booking_id", booking.ID,
			"error", err,
		)
	}
}
