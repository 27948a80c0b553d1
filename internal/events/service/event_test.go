package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	eventserrors "eventdesk/internal/events/errors"
	"eventdesk/internal/events/validator"
	"eventdesk/pkg/config"
	apperrors "eventdesk/pkg/errors"
	"eventdesk/pkg/logger"
	"eventdesk/pkg/model"
)

// Mock repository for testing
type mockEventRepository struct {
	createFunc   func(ctx context.Context, event *model.Event) error
	findByIDFunc func(ctx context.Context, id string) (*model.Event, error)
	updateFunc   func(ctx context.Context, id string, event *model.Event) (*mongo.UpdateResult, error)
}

func (m *mockEventRepository) Create(ctx context.Context, event *model.Event) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, event)
	}
	return nil
}

func (m *mockEventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, eventserrors.ErrNotFound
}

func (m *mockEventRepository) FindBySlug(ctx context.Context, slug string) (*model.Event, error) {
	return nil, eventserrors.ErrNotFound
}

func (m *mockEventRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Event, error) {
	return []*model.Event{}, nil
}

func (m *mockEventRepository) Update(ctx context.Context, id string, event *model.Event) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, event)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockEventRepository) Exists(ctx context.Context, id string) (bool, error) {
	return true, nil
}

func (m *mockEventRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func newTestService(repo *mockEventRepository) EventService {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return NewEventService(repo, validator.NewEventValidator(log), nil, cfg)
}

func newEvent() *model.Event {
	return &model.Event{
		Title:       "Go Meetup 2026",
		Description: "An evening of Go talks",
		Overview:    "Talks, pizza, networking",
		Image:       "https://cdn.example.com/go-meetup.png",
		Venue:       "Community Hall",
		Location:    "Tel Aviv",
		Date:        "2026-03-14",
		Time:        "18:30:00",
		Mode:        "in-person",
		Audience:    "developers",
		Agenda:      []string{"Opening", "Talks", "Q&A"},
		Organizer:   "Go TLV",
		Tags:        []string{"go", "meetup"},
	}
}

func TestCreate_ComputesSlugAndNormalizes(t *testing.T) {
	var persisted *model.Event
	repo := &mockEventRepository{
		createFunc: func(ctx context.Context, event *model.Event) error {
			persisted = event
			return nil
		},
	}
	svc := newTestService(repo)

	event := newEvent()
	event.Title = "  Go Meetup   2026!  "
	event.Date = "2026-03-14T18:30:00+02:00"

	if err := svc.Create(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if persisted == nil {
		t.Fatal("expected the event to be persisted")
	}
	if persisted.Slug != "go-meetup-2026" {
		t.Errorf("expected slug 'go-meetup-2026', got %q", persisted.Slug)
	}
	if persisted.Date != "2026-03-14" {
		t.Errorf("expected canonical date '2026-03-14', got %q", persisted.Date)
	}
	if persisted.Time != "18:30" {
		t.Errorf("expected canonical time '18:30', got %q", persisted.Time)
	}
}

func TestCreate_EmptyAgendaFailsValidation(t *testing.T) {
	repo := &mockEventRepository{
		createFunc: func(ctx context.Context, event *model.Event) error {
			t.Fatal("persistence must not be reached when validation fails")
			return nil
		},
	}
	svc := newTestService(repo)

	event := newEvent()
	event.Agenda = []string{}

	err := svc.Create(context.Background(), event)
	if err == nil {
		t.Fatal("expected validation error for empty agenda")
	}
	if code := apperrors.AsAppError(err).Code; code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, code)
	}
}

func TestCreate_SingleAgendaItemSucceeds(t *testing.T) {
	svc := newTestService(&mockEventRepository{})

	event := newEvent()
	event.Agenda = []string{"Opening"}

	if err := svc.Create(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreate_BadDateFailsValidation(t *testing.T) {
	svc := newTestService(&mockEventRepository{})

	event := newEvent()
	event.Date = "sometime soon"

	err := svc.Create(context.Background(), event)
	if err == nil {
		t.Fatal("expected validation error for unparseable date")
	}
	if code := apperrors.AsAppError(err).Code; code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, code)
	}
}

func TestCreate_DuplicateSlugConflicts(t *testing.T) {
	repo := &mockEventRepository{
		createFunc: func(ctx context.Context, event *model.Event) error {
			return fmt.Errorf("%w: %s", eventserrors.ErrDuplicateSlug, event.Slug)
		},
	}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), newEvent())
	if err == nil {
		t.Fatal("expected conflict error for duplicate slug")
	}
	if code := apperrors.AsAppError(err).Code; code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, code)
	}
}

func TestUpdate_SlugRegeneratedOnlyWhenTitleChanges(t *testing.T) {
	stored := newEvent()
	stored.ID = "507f1f77bcf86cd799439011"
	stored.Slug = "go-meetup-2026"

	tests := []struct {
		name     string
		updates  *model.EventUpdate
		wantSlug string
	}{
		{
			name: "unrelated edit keeps slug",
			updates: &model.EventUpdate{
				Venue: strPtr("Bigger Hall"),
			},
			wantSlug: "go-meetup-2026",
		},
		{
			name: "same title keeps slug",
			updates: &model.EventUpdate{
				Title: strPtr("Go Meetup 2026"),
			},
			wantSlug: "go-meetup-2026",
		},
		{
			name: "new title regenerates slug",
			updates: &model.EventUpdate{
				Title: strPtr("Go Conference 2027"),
			},
			wantSlug: "go-conference-2027",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var persisted *model.Event
			repo := &mockEventRepository{
				findByIDFunc: func(ctx context.Context, id string) (*model.Event, error) {
					copied := *stored
					return &copied, nil
				},
				updateFunc: func(ctx context.Context, id string, event *model.Event) (*mongo.UpdateResult, error) {
					persisted = event
					return &mongo.UpdateResult{MatchedCount: 1}, nil
				},
			}
			svc := newTestService(repo)

			if err := svc.Update(context.Background(), stored.ID, tt.updates); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if persisted.Slug != tt.wantSlug {
				t.Errorf("expected slug %q, got %q", tt.wantSlug, persisted.Slug)
			}
		})
	}
}

func TestUpdate_TimeRenormalizedOnEverySave(t *testing.T) {
	stored := newEvent()
	stored.ID = "507f1f77bcf86cd799439011"
	stored.Slug = "go-meetup-2026"
	stored.Time = "18:30"

	var persisted *model.Event
	repo := &mockEventRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Event, error) {
			copied := *stored
			return &copied, nil
		},
		updateFunc: func(ctx context.Context, id string, event *model.Event) (*mongo.UpdateResult, error) {
			persisted = event
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	svc := newTestService(repo)

	updates := &model.EventUpdate{Time: strPtr("09:05:30")}
	if err := svc.Update(context.Background(), stored.ID, updates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if persisted.Time != "09:05" {
		t.Errorf("expected time '09:05', got %q", persisted.Time)
	}
}

func strPtr(s string) *string {
	return &s
}
