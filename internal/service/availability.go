package service

import (
	"context"

	"github.com/rulezero/playerconnector/internal/model"
)

// AvailabilityRepository defines the interface for availability storage.
// Availability records only exist under an owning user, so creation always
// goes through CreateForUser.
type AvailabilityRepository interface {
	CreateForUser(ctx context.Context, userID string, availability *model.Availability) error
	GetByID(ctx context.Context, id string) (*model.Availability, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.Availability, error)
	GetAll(ctx context.Context) ([]*model.Availability, error)
	Update(ctx context.Context, availability *model.Availability) error
	Delete(ctx context.Context, id string) error
}

// AvailabilityService handles availability business logic
type AvailabilityService struct {
	availability AvailabilityRepository
	users        UserRepository
}

// AvailabilityServiceConfig holds configuration for the availability service
type AvailabilityServiceConfig struct {
	Availability AvailabilityRepository
	Users        UserRepository
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(cfg AvailabilityServiceConfig) *AvailabilityService {
	return &AvailabilityService{
		availability: cfg.Availability,
		users:        cfg.Users,
	}
}

// CreateForUser creates an availability slot owned by the given user and
// appends it to the user's collection.
func (s *AvailabilityService) CreateForUser(ctx context.Context, userID string, req *model.CreateAvailabilityRequest) (*model.AvailabilityData, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	availability := req.Entity()
	if err := s.availability.CreateForUser(ctx, user.ID, availability); err != nil {
		return nil, err
	}

	return availability.Data(), nil
}

// ListForUser retrieves a user's availability slots in insertion order
func (s *AvailabilityService) ListForUser(ctx context.Context, userID string) ([]*model.AvailabilityData, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	availabilities, err := s.availability.GetByIDs(ctx, user.AvailabilityIDs)
	if err != nil {
		return nil, err
	}
	return availabilitiesToData(availabilities), nil
}

// ListAll retrieves every availability slot in the system
func (s *AvailabilityService) ListAll(ctx context.Context) ([]*model.AvailabilityData, error) {
	availabilities, err := s.availability.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return availabilitiesToData(availabilities), nil
}

// GetAvailability retrieves an availability slot by id
func (s *AvailabilityService) GetAvailability(ctx context.Context, id string) (*model.AvailabilityData, error) {
	availability, err := s.availability.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if availability == nil {
		return nil, ErrAvailabilityNotFound
	}
	return availability.Data(), nil
}

// UpdateAvailability overwrites all mutable fields of an availability slot.
// This is a full replace, not a patch.
func (s *AvailabilityService) UpdateAvailability(ctx context.Context, id string, req *model.UpdateAvailabilityRequest) (*model.AvailabilityData, error) {
	availability, err := s.availability.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if availability == nil {
		return nil, ErrAvailabilityNotFound
	}

	availability.DayOfWeek = req.DayOfWeek
	availability.StartTime = req.StartTime
	availability.EndTime = req.EndTime

	if err := s.availability.Update(ctx, availability); err != nil {
		return nil, err
	}

	return availability.Data(), nil
}

// DeleteAvailability removes an availability slot by id. The owning user's
// collection is detached in the same unit of work without loading the owner.
func (s *AvailabilityService) DeleteAvailability(ctx context.Context, id string) error {
	availability, err := s.availability.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if availability == nil {
		return ErrAvailabilityNotFound
	}

	return s.availability.Delete(ctx, availability.ID)
}

func availabilitiesToData(availabilities []*model.Availability) []*model.AvailabilityData {
	data := make([]*model.AvailabilityData, 0, len(availabilities))
	for _, availability := range availabilities {
		data = append(data, availability.Data())
	}
	return data
}
