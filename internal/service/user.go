package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rulezero/playerconnector/internal/database"
	"github.com/rulezero/playerconnector/internal/model"
)

// UserRepository defines the interface for user storage. Create and
// UpdateWithGameLinks commit the row write and its membership edge edits as
// one unit of work, so a rejected write leaves no partial state behind.
type UserRepository interface {
	Create(ctx context.Context, user *model.User, gameIDs []string) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetAll(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdateWithGameLinks(ctx context.Context, user *model.User, add, remove []string) error
	SearchByName(ctx context.Context, query string) ([]*model.User, error)
	DeleteCascade(ctx context.Context, user *model.User) error
}

// UserService handles user business logic
type UserService struct {
	users        UserRepository
	games        GameRepository
	availability AvailabilityRepository
	hasher       PasswordHasher
}

// UserServiceConfig holds configuration for the user service
type UserServiceConfig struct {
	Users        UserRepository
	Games        GameRepository
	Availability AvailabilityRepository
	Hasher       PasswordHasher
}

// NewUserService creates a new user service
func NewUserService(cfg UserServiceConfig) *UserService {
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = NewBcryptHasher()
	}
	return &UserService{
		users:        cfg.Users,
		games:        cfg.Games,
		availability: cfg.Availability,
		hasher:       hasher,
	}
}

// CreateUser persists a new user. A referenced availability id is attached
// as the user's representative slot and referenced game ids become
// membership links. All referenced ids are resolved before anything is
// written, so a missing reference fails the whole operation.
func (s *UserService) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.UserData, error) {
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := req.Entity()
	user.Hash = hash

	if req.AvailabilityID != nil {
		availability, err := s.availability.GetByID(ctx, *req.AvailabilityID)
		if err != nil {
			return nil, err
		}
		if availability == nil {
			return nil, ErrAvailabilityNotFound
		}
		user.AvailabilityIDs = []string{availability.ID}
	}

	gameIDs := dedupeIDs(req.GameIDs)
	if err := s.resolveGames(ctx, gameIDs); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user, gameIDs); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	user.GameIDs = gameIDs

	return user.Data(), nil
}

// GetUser retrieves a user by id
func (s *UserService) GetUser(ctx context.Context, id string) (*model.UserData, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user.Data(), nil
}

// ListUsers retrieves all users
func (s *UserService) ListUsers(ctx context.Context) ([]*model.UserData, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return usersToData(users), nil
}

// SearchUsers retrieves users whose first or last name contains the query,
// case-insensitively. An empty or blank query yields an empty result, never
// the full user list.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]*model.UserData, error) {
	if strings.TrimSpace(query) == "" {
		return []*model.UserData{}, nil
	}

	users, err := s.users.SearchByName(ctx, query)
	if err != nil {
		return nil, err
	}
	return usersToData(users), nil
}

// PatchUser applies the non-nil fields of the request to an existing user.
// A provided game-id list replaces the whole membership set via
// reconciliation; a provided availability id links that record as the
// representative slot.
func (s *UserService) PatchUser(ctx context.Context, id string, req *model.UpdateUserRequest) (*model.UserData, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.AvailabilityID != nil {
		availability, err := s.availability.GetByID(ctx, *req.AvailabilityID)
		if err != nil {
			return nil, err
		}
		if availability == nil {
			return nil, ErrAvailabilityNotFound
		}
		user.AvailabilityIDs = promoteID(user.AvailabilityIDs, availability.ID)
	}

	req.Apply(user)

	if req.GameIDs != nil {
		desired := dedupeIDs(*req.GameIDs)
		if err := s.resolveGames(ctx, desired); err != nil {
			return nil, err
		}

		// Profile write and edge diff travel in one transaction so a
		// rejected write (duplicate login name or email) cannot leave
		// membership half-reconciled.
		diff := DiffMembership(user.GameIDs, desired)
		if err := s.users.UpdateWithGameLinks(ctx, user, diff.Add, diff.Remove); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				return nil, ErrDuplicateUser
			}
			return nil, err
		}
		user.GameIDs = desired
		return user.Data(), nil
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	return user.Data(), nil
}

// DeleteUser removes a user, detaching it from every game's member set and
// destroying all owned availability records.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	return s.users.DeleteCascade(ctx, user)
}

// DeleteUsers deletes users best-effort per id: ids that fail (typically
// not found) are reported in the aggregate result while the remaining
// deletions still apply.
func (s *UserService) DeleteUsers(ctx context.Context, ids []string) (*model.BulkDeleteResult, error) {
	result := &model.BulkDeleteResult{Deleted: []string{}}
	for _, id := range dedupeIDs(ids) {
		if err := s.DeleteUser(ctx, id); err != nil {
			result.Failures = append(result.Failures, model.BulkFailure{
				ID:     id,
				Reason: err.Error(),
			})
			continue
		}
		result.Deleted = append(result.Deleted, id)
	}
	return result, nil
}

// UpdateUserAvailability links an existing availability record to a user as
// its representative slot.
func (s *UserService) UpdateUserAvailability(ctx context.Context, userID, availabilityID string) (*model.UserData, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	availability, err := s.availability.GetByID(ctx, availabilityID)
	if err != nil {
		return nil, err
	}
	if availability == nil {
		return nil, ErrAvailabilityNotFound
	}

	user.AvailabilityIDs = promoteID(user.AvailabilityIDs, availability.ID)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.Data(), nil
}

// resolveGames fails with ErrGameNotFound unless every id resolves to an
// existing game. Called before any membership mutation.
func (s *UserService) resolveGames(ctx context.Context, ids []string) error {
	for _, id := range ids {
		game, err := s.games.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if game == nil {
			return ErrGameNotFound
		}
	}
	return nil
}

func usersToData(users []*model.User) []*model.UserData {
	data := make([]*model.UserData, 0, len(users))
	for _, user := range users {
		data = append(data, user.Data())
	}
	return data
}
