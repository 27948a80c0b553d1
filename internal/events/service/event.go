package service

import (
	"context"
	"errors"
	"sync"

	eventserrors "eventdesk/internal/events/errors"
	"eventdesk/internal/events/repository"
	"eventdesk/internal/events/validator"
	"eventdesk/pkg/config"
	apperrors "eventdesk/pkg/errors"
	"eventdesk/pkg/kafka"
	"eventdesk/pkg/model"
	"eventdesk/pkg/sanitizer"
)

type EventService interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	GetBySlug(ctx context.Context, slug string) (*model.Event, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Event, int64, error)
	Update(ctx context.Context, id string, updates *model.EventUpdate) error
	Delete(ctx context.Context, id string) error
}

// Publisher emits domain messages. Nil disables publishing.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type eventService struct {
	repo      repository.EventRepository
	validator *validator.EventValidator
	publisher Publisher
	cfg       *config.Config
}

func NewEventService(
	repo repository.EventRepository,
	validator *validator.EventValidator,
	publisher Publisher,
	cfg *config.Config,
) EventService {
	return &eventService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *eventService) Create(ctx context.Context, event *model.Event) error {
	s.sanitize(event)

	if err := s.validate(event); err != nil {
		return err
	}
	if err := s.normalize(event); err != nil {
		return err
	}

	event.Slug = sanitizer.Slugify(event.Title)
	if event.Slug == "" {
		return apperrors.Validation("Invalid event input", map[string]any{
			"error": "title must contain at least one alphanumeric character",
		})
	}

	if err := s.repo.Create(ctx, event); err != nil {
		if errors.Is(err, eventserrors.ErrDuplicateSlug) {
			return apperrors.Conflict("an event with this slug already exists").WithDetails(map[string]any{
				"slug": event.Slug,
			})
		}
		s.cfg.Log.Error("Failed to create event", "error", err)
		return apperrors.Internal("Failed to create event", err)
	}

	s.publish(ctx, kafka.TypeEventCreated, event.Slug, event)

	s.cfg.Log.Info("Event created successfully",
		"id", event.ID,
		"slug", event.Slug,
		"date", event.Date,
		"time", event.Time,
	)
	return nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*model.Event, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Event ID cannot be empty")
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Event", id)
		}
		if errors.Is(err, eventserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid event ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve event", err)
	}

	return event, nil
}

func (s *eventService) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	if slug == "" {
		return nil, apperrors.InvalidInput("Event slug cannot be empty")
	}

	event, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, eventserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Event")
		}
		return nil, apperrors.Internal("Failed to retrieve event", err)
	}

	return event, nil
}

func (s *eventService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Event, int64, error) {
	var count int64
	var events []*model.Event
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count events", "error", errCount)
			errCount = apperrors.Internal("Failed to count events", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		events, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list events", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve events", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return events, count, nil
}

func (s *eventService) Update(ctx context.Context, id string, updates *model.EventUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Event ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Event", id)
		}
		if errors.Is(err, eventserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid event ID format")
		}
		return apperrors.Internal("Failed to check event existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Event update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeEventUpdates(existing, updates)
	s.sanitize(merged)

	if err := s.validate(merged); err != nil {
		return err
	}

	// Date and time are renormalized on every save; the slug only moves when
	// the title did.
	if err := s.normalize(merged); err != nil {
		return err
	}
	if merged.Title != existing.Title {
		merged.Slug = sanitizer.Slugify(merged.Title)
		if merged.Slug == "" {
			return apperrors.Validation("Invalid update input", map[string]any{
				"error": "title must contain at least one alphanumeric character",
			})
		}
	} else {
		merged.Slug = existing.Slug
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, eventserrors.ErrDuplicateSlug) {
			return apperrors.Conflict("an event with this slug already exists").WithDetails(map[string]any{
				"slug": merged.Slug,
			})
		}
		if errors.Is(err, eventserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Event", id)
		}
		s.cfg.Log.Error("Failed to update event", "id", id, "error", err)
		return apperrors.Internal("Failed to update event", err)
	}

	s.publish(ctx, kafka.TypeEventUpdated, merged.Slug, merged)

	s.cfg.Log.Info("Event updated successfully", "id", id, "slug", merged.Slug)
	return nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Event ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, eventserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Event", id)
		}
		if errors.Is(err, eventserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid event ID format")
		}
		return apperrors.Internal("Failed to delete event", err)
	}

	s.cfg.Log.Info("Event deleted", "id", id)
	return nil
}

func (s *eventService) sanitize(event *model.Event) {
	event.Title = sanitizer.TrimAndNormalize(event.Title)
	event.Description = sanitizer.TrimAndNormalize(event.Description)
	event.Overview = sanitizer.TrimAndNormalize(event.Overview)
	event.Image = sanitizer.TrimAndNormalize(event.Image)
	event.Venue = sanitizer.TrimAndNormalize(event.Venue)
	event.Location = sanitizer.TrimAndNormalize(event.Location)
	event.Date = sanitizer.TrimAndNormalize(event.Date)
	event.Time = sanitizer.TrimAndNormalize(event.Time)
	event.Mode = sanitizer.TrimAndNormalize(event.Mode)
	event.Audience = sanitizer.TrimAndNormalize(event.Audience)
	event.Organizer = sanitizer.TrimAndNormalize(event.Organizer)
	event.Agenda = sanitizer.SanitizeSlice(event.Agenda, sanitizer.TrimAndNormalize)
	event.Tags = sanitizer.SanitizeSlice(event.Tags, sanitizer.TrimAndNormalize)
}

func (s *eventService) validate(event *model.Event) error {
	if err := s.validator.Validate(event); err != nil {
		s.cfg.Log.Warn("Event validation failed", "error", err)
		return apperrors.Validation("Invalid event input", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *eventService) normalize(event *model.Event) error {
	date, err := validator.NormalizeDate(event.Date)
	if err != nil {
		return apperrors.Validation("Invalid event input", map[string]any{"error": err.Error()})
	}
	event.Date = date

	t, err := validator.NormalizeTime(event.Time)
	if err != nil {
		return apperrors.Validation("Invalid event input", map[string]any{"error": err.Error()})
	}
	event.Time = t

	return nil
}

func (s *eventService) mergeEventUpdates(existing *model.Event, updates *model.EventUpdate) *model.Event {
	merged := *existing

	if updates.Title != nil {
		merged.Title = *updates.Title
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.Overview != nil {
		merged.Overview = *updates.Overview
	}
	if updates.Image != nil {
		merged.Image = *updates.Image
	}
	if updates.Venue != nil {
		merged.Venue = *updates.Venue
	}
	if updates.Location != nil {
		merged.Location = *updates.Location
	}
	if updates.Date != nil {
		merged.Date = *updates.Date
	}
	if updates.Time != nil {
		merged.Time = *updates.Time
	}
	if updates.Mode != nil {
		merged.Mode = *updates.Mode
	}
	if updates.Audience != nil {
		merged.Audience = *updates.Audience
	}
	if updates.Agenda != nil {
		merged.Agenda = *updates.Agenda
	}
	if updates.Organizer != nil {
		merged.Organizer = *updates.Organizer
	}
	if updates.Tags != nil {
		merged.Tags = *updates.Tags
	}

	return &merged
}

// publish is best-effort: a broker failure is logged, never surfaced to the
// caller whose write already succeeded.
func (s *eventService) publish(ctx context.Context, messageType, key string, event *model.Event) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(key).
		WithType(messageType).
		WithSource("events").
		WithValue(event).
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish event message",
			"type", messageType,
			"key", key,
			"error", err,
		)
	}
}
