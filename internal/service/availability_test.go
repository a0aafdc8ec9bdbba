package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rulezero/playerconnector/internal/model"
)

func newTestAvailabilityService(availability *mockAvailabilityRepo, users *mockUserRepo) *AvailabilityService {
	if availability == nil {
		availability = &mockAvailabilityRepo{}
	}
	if users == nil {
		users = &mockUserRepo{}
	}
	return NewAvailabilityService(AvailabilityServiceConfig{
		Availability: availability,
		Users:        users,
	})
}

func TestCreateForUser_OwnerMustExist(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var created bool
	availability := &mockAvailabilityRepo{
		createForUserFunc: func(ctx context.Context, userID string, availability *model.Availability) error {
			created = true
			return nil
		},
	}
	svc := newTestAvailabilityService(availability, nil)

	_, err := svc.CreateForUser(ctx, "user:nobody", &model.CreateAvailabilityRequest{
		DayOfWeek: "Monday",
		StartTime: "18:00",
		EndTime:   "21:00",
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if created {
		t.Error("no slot should be created for a missing owner")
	}
}

func TestCreateForUser_Success(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var ownerID string
	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
	}
	availability := &mockAvailabilityRepo{
		createForUserFunc: func(ctx context.Context, userID string, availability *model.Availability) error {
			ownerID = userID
			availability.ID = "availability:mon"
			return nil
		},
	}
	svc := newTestAvailabilityService(availability, users)

	data, err := svc.CreateForUser(ctx, "user:alice", &model.CreateAvailabilityRequest{
		DayOfWeek: "Monday",
		StartTime: "18:00",
		EndTime:   "21:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ownerID != "user:alice" {
		t.Errorf("expected slot attached to user:alice, got %q", ownerID)
	}
	if data.AvailabilityID != "availability:mon" {
		t.Errorf("expected id 'availability:mon', got %q", data.AvailabilityID)
	}
	if data.DayOfWeek != "Monday" || data.StartTime != "18:00" || data.EndTime != "21:00" {
		t.Errorf("unexpected slot data: %+v", data)
	}
}

func TestListForUser_OwnerMustExist(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestAvailabilityService(nil, nil)

	_, err := svc.ListForUser(ctx, "user:nobody")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListForUser_PreservesCollectionOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{
				ID:              id,
				AvailabilityIDs: []string{"availability:b", "availability:a"},
			}, nil
		},
	}
	availability := &mockAvailabilityRepo{
		getByIDsFunc: func(ctx context.Context, ids []string) ([]*model.Availability, error) {
			result := make([]*model.Availability, 0, len(ids))
			for _, id := range ids {
				result = append(result, &model.Availability{ID: id})
			}
			return result, nil
		},
	}
	svc := newTestAvailabilityService(availability, users)

	result, err := svc.ListForUser(ctx, "user:alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(result))
	}
	if result[0].AvailabilityID != "availability:b" || result[1].AvailabilityID != "availability:a" {
		t.Errorf("expected collection order [b a], got [%s %s]", result[0].AvailabilityID, result[1].AvailabilityID)
	}
}

func TestGetAvailability_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestAvailabilityService(nil, nil)

	_, err := svc.GetAvailability(ctx, "availability:nothing")
	if !errors.Is(err, ErrAvailabilityNotFound) {
		t.Errorf("expected ErrAvailabilityNotFound, got %v", err)
	}
}

func TestUpdateAvailability_FullReplace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var updated *model.Availability
	availability := &mockAvailabilityRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Availability, error) {
			return &model.Availability{ID: id, DayOfWeek: "Monday", StartTime: "18:00", EndTime: "21:00"}, nil
		},
		updateFunc: func(ctx context.Context, availability *model.Availability) error {
			updated = availability
			return nil
		},
	}
	svc := newTestAvailabilityService(availability, nil)

	data, err := svc.UpdateAvailability(ctx, "availability:mon", &model.UpdateAvailabilityRequest{
		DayOfWeek: "Tuesday",
		StartTime: "19:00",
		EndTime:   "22:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil {
		t.Fatal("expected update to be persisted")
	}
	if updated.DayOfWeek != "Tuesday" || updated.StartTime != "19:00" || updated.EndTime != "22:00" {
		t.Errorf("expected all fields replaced, got %+v", updated)
	}
	if data.AvailabilityID != "availability:mon" {
		t.Errorf("id should survive the replace, got %q", data.AvailabilityID)
	}
}

func TestUpdateAvailability_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestAvailabilityService(nil, nil)

	_, err := svc.UpdateAvailability(ctx, "availability:nothing", &model.UpdateAvailabilityRequest{
		DayOfWeek: "Tuesday",
	})
	if !errors.Is(err, ErrAvailabilityNotFound) {
		t.Errorf("expected ErrAvailabilityNotFound, got %v", err)
	}
}

func TestDeleteAvailability_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var deleted bool
	availability := &mockAvailabilityRepo{
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	svc := newTestAvailabilityService(availability, nil)

	err := svc.DeleteAvailability(ctx, "availability:nothing")
	if !errors.Is(err, ErrAvailabilityNotFound) {
		t.Errorf("expected ErrAvailabilityNotFound, got %v", err)
	}
	if deleted {
		t.Error("delete should not run for a missing slot")
	}
}

func TestDeleteAvailability_Success(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var deletedID string
	availability := &mockAvailabilityRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Availability, error) {
			return &model.Availability{ID: id}, nil
		},
		deleteFunc: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	svc := newTestAvailabilityService(availability, nil)

	if err := svc.DeleteAvailability(ctx, "availability:mon"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletedID != "availability:mon" {
		t.Errorf("expected delete on availability:mon, got %q", deletedID)
	}
}
