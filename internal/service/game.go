package service

import (
	"context"
	"strings"

	"github.com/rulezero/playerconnector/internal/model"
)

// GameRepository defines the interface for game storage. Create and
// UpdateWithPlayerLinks commit the row write and its member edge edits as
// one unit of work.
type GameRepository interface {
	Create(ctx context.Context, game *model.Game, userIDs []string) error
	GetByID(ctx context.Context, id string) (*model.Game, error)
	GetAll(ctx context.Context) ([]*model.Game, error)
	Update(ctx context.Context, game *model.Game) error
	UpdateWithPlayerLinks(ctx context.Context, game *model.Game, add, remove []string) error
	SearchByName(ctx context.Context, query string) ([]*model.Game, error)
	ApplyPlayerLinks(ctx context.Context, gameID string, add, remove []string) error
	DeleteCascade(ctx context.Context, gameID string) error
}

// GamesService handles game business logic
type GamesService struct {
	games GameRepository
	users UserRepository
}

// GamesServiceConfig holds configuration for the games service
type GamesServiceConfig struct {
	Games GameRepository
	Users UserRepository
}

// NewGamesService creates a new games service
func NewGamesService(cfg GamesServiceConfig) *GamesService {
	return &GamesService{
		games: cfg.Games,
		users: cfg.Users,
	}
}

// CreateGame persists a new game. Referenced user ids become membership
// links; every id is resolved before anything is written.
func (s *GamesService) CreateGame(ctx context.Context, req *model.CreateGameRequest) (*model.GameData, error) {
	userIDs := dedupeIDs(req.UserIDs)
	if err := s.resolveUsers(ctx, userIDs); err != nil {
		return nil, err
	}

	game := req.Entity()
	if err := s.games.Create(ctx, game, userIDs); err != nil {
		return nil, err
	}
	game.UserIDs = userIDs

	return game.Data(), nil
}

// GetGame retrieves a game by id
func (s *GamesService) GetGame(ctx context.Context, id string) (*model.GameData, error) {
	game, err := s.games.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	return game.Data(), nil
}

// ListGames retrieves all games
func (s *GamesService) ListGames(ctx context.Context) ([]*model.GameData, error) {
	games, err := s.games.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return gamesToData(games), nil
}

// SearchGames retrieves games whose name contains the query,
// case-insensitively. An empty or blank query yields an empty result.
func (s *GamesService) SearchGames(ctx context.Context, query string) ([]*model.GameData, error) {
	if strings.TrimSpace(query) == "" {
		return []*model.GameData{}, nil
	}

	games, err := s.games.SearchByName(ctx, query)
	if err != nil {
		return nil, err
	}
	return gamesToData(games), nil
}

// PatchGame applies the non-nil fields of the request to an existing game.
// A provided user-id list replaces the whole member set via reconciliation.
func (s *GamesService) PatchGame(ctx context.Context, id string, req *model.UpdateGameRequest) (*model.GameData, error) {
	game, err := s.games.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	req.Apply(game)

	if req.UserIDs != nil {
		desired := dedupeIDs(*req.UserIDs)
		if err := s.resolveUsers(ctx, desired); err != nil {
			return nil, err
		}

		// Scalar write and edge diff travel in one transaction.
		diff := DiffMembership(game.UserIDs, desired)
		if err := s.games.UpdateWithPlayerLinks(ctx, game, diff.Add, diff.Remove); err != nil {
			return nil, err
		}
		game.UserIDs = desired
		return game.Data(), nil
	}

	if err := s.games.Update(ctx, game); err != nil {
		return nil, err
	}

	return game.Data(), nil
}

// UpdateGamePlayers replaces a game's member set with the given users,
// keeping the relation symmetric on both sides.
func (s *GamesService) UpdateGamePlayers(ctx context.Context, id string, userIDs []string) (*model.GameData, error) {
	game, err := s.games.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	if err := s.reconcilePlayers(ctx, game, userIDs); err != nil {
		return nil, err
	}

	return game.Data(), nil
}

// DeleteGame removes a game, detaching it from every member user's game set
func (s *GamesService) DeleteGame(ctx context.Context, id string) error {
	game, err := s.games.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if game == nil {
		return ErrGameNotFound
	}

	return s.games.DeleteCascade(ctx, game.ID)
}

// DeleteGames deletes games best-effort per id: ids that fail are reported
// in the aggregate result while the remaining deletions still apply.
func (s *GamesService) DeleteGames(ctx context.Context, ids []string) (*model.BulkDeleteResult, error) {
	result := &model.BulkDeleteResult{Deleted: []string{}}
	for _, id := range dedupeIDs(ids) {
		if err := s.DeleteGame(ctx, id); err != nil {
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

// reconcilePlayers resolves the desired user ids, applies the minimal edge
// diff, and updates the in-memory member set.
func (s *GamesService) reconcilePlayers(ctx context.Context, game *model.Game, userIDs []string) error {
	desired := dedupeIDs(userIDs)
	if err := s.resolveUsers(ctx, desired); err != nil {
		return err
	}

	diff := DiffMembership(game.UserIDs, desired)
	if !diff.Empty() {
		if err := s.games.ApplyPlayerLinks(ctx, game.ID, diff.Add, diff.Remove); err != nil {
			return err
		}
	}
	game.UserIDs = desired
	return nil
}

// resolveUsers fails with ErrUserNotFound unless every id resolves to an
// existing user. Called before any membership mutation.
func (s *GamesService) resolveUsers(ctx context.Context, ids []string) error {
	for _, id := range ids {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
	}
	return nil
}

func gamesToData(games []*model.Game) []*model.GameData {
	data := make([]*model.GameData, 0, len(games))
	for _, game := range games {
		data = append(data, game.Data())
	}
	return data
}
