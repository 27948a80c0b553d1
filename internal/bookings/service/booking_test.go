package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "eventdesk/internal/bookings/errors"
	"eventdesk/internal/bookings/validator"
	"eventdesk/pkg/config"
	apperrors "eventdesk/pkg/errors"
	"eventdesk/pkg/logger"
	"eventdesk/pkg/model"
)

// Mock repository for testing
type mockBookingRepository struct {
	createFunc   func(ctx context.Context, booking *model.Booking) error
	findByIDFunc func(ctx context.Context, id string) (*model.Booking, error)
	updateFunc   func(ctx context.Context, id string, booking *model.Booking) (*mongo.UpdateResult, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByEvent(ctx context.Context, eventID string, limit int, offset int64) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepository) Update(ctx context.Context, id string, booking *model.Booking) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, booking)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockBookingRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

// Mock event directory for the referential check
type mockEventDirectory struct {
	existsFunc func(ctx context.Context, id string) (bool, error)
	calls      int
}

func (m *mockEventDirectory) Exists(ctx context.Context, id string) (bool, error) {
	m.calls++
	if m.existsFunc != nil {
		return m.existsFunc(ctx, id)
	}
	return true, nil
}

func newTestService(repo *mockBookingRepository, events *mockEventDirectory) BookingService {
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
	return NewBookingService(repo, events, validator.NewBookingValidator(log), nil, cfg)
}

const testEventID = "507f1f77bcf86cd799439011"

func TestCreate_BadEmailFailsValidation(t *testing.T) {
	events := &mockEventDirectory{}
	svc := newTestService(&mockBookingRepository{}, events)

	booking := &model.Booking{
		EventID: testEventID,
		Email:   "not-an-email",
	}

	err := svc.Create(context.Background(), booking)
	if err == nil {
		t.Fatal("expected validation error for bad email")
	}
	if code := apperrors.AsAppError(err).Code; code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, code)
	}
	if events.calls != 0 {
		t.Errorf("existence check must not run when validation fails, got %d calls", events.calls)
	}
}

func TestCreate_ExistingEventSucceeds(t *testing.T) {
	var persisted *model.Booking
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			persisted = booking
			return nil
		},
	}
	events := &mockEventDirectory{}
	svc := newTestService(repo, events)

	booking := &model.Booking{
		EventID: testEventID,
		Email:   "a@b.co",
	}

	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if events.calls != 1 {
		t.Errorf("expected exactly 1 existence check, got %d", events.calls)
	}
	if persisted == nil {
		t.Fatal("expected the booking to be persisted")
	}
	if persisted.ConfirmationCode == "" {
		t.Error("expected a confirmation code to be generated")
	}
}

func TestCreate_MissingEventFailsReferenceCheck(t *testing.T) {
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			t.Fatal("persistence must not be reached when the reference check fails")
			return nil
		},
	}
	events := &mockEventDirectory{
		existsFunc: func(ctx context.Context, id string) (bool, error) {
			return false, nil
		},
	}
	svc := newTestService(repo, events)

	booking := &model.Booking{
		EventID: testEventID,
		Email:   "a@b.co",
	}

	err := svc.Create(context.Background(), booking)
	if err == nil {
		t.Fatal("expected reference error for missing event")
	}
	if code := apperrors.AsAppError(err).Code; code != apperrors.CodeReference {
		t.Errorf("expected code %s, got %s", apperrors.CodeReference, code)
	}
}

func TestUpdate_UnrelatedEditSkipsExistenceCheck(t *testing.T) {
	stored := &model.Booking{
		ID:      "64f000000000000000000001",
		EventID: testEventID,
		Email:   "a@b.co",
	}
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			copied := *stored
			return &copied, nil
		},
	}
	events := &mockEventDirectory{}
	svc := newTestService(repo, events)

	updates := &model.BookingUpdate{Email: strPtr("new@example.org")}
	if err := svc.Update(context.Background(), stored.ID, updates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if events.calls != 0 {
		t.Errorf("unrelated edit must skip the existence check, got %d calls", events.calls)
	}
}

func TestUpdate_ChangedReferenceIsRechecked(t *testing.T) {
	stored := &model.Booking{
		ID:      "64f000000000000000000001",
		EventID: testEventID,
		Email:   "a@b.co",
	}
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			copied := *stored
			return &copied, nil
		},
	}
	events := &mockEventDirectory{
		existsFunc: func(ctx context.Context, id string) (bool, error) {
			return false, nil
		},
	}
	svc := newTestService(repo, events)

	updates := &model.BookingUpdate{EventID: strPtr("507f1f77bcf86cd799439099")}
	err := svc.Update(context.Background(), stored.ID, updates)
	if err == nil {
		t.Fatal("expected reference error when the new event does not exist")
	}
	if code := apperrors.AsAppError(err).Code; code != apperrors.CodeReference {
		t.Errorf("expected code %s, got %s", apperrors.CodeReference, code)
	}
	if events.calls != 1 {
		t.Errorf("expected exactly 1 existence check, got %d", events.calls)
	}
}

func strPtr(s string) *string {
	return &s
}
