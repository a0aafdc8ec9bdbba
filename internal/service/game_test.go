package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rulezero/playerconnector/internal/model"
)

func newTestGamesService(games *mockGameRepo, users *mockUserRepo) *GamesService {
	if games == nil {
		games = &mockGameRepo{}
	}
	if users == nil {
		users = &mockUserRepo{}
	}
	return NewGamesService(GamesServiceConfig{
		Games: games,
		Users: users,
	})
}

// ============================================================================
// CreateGame Tests
// ============================================================================

func TestCreateGame_Success(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	games := &mockGameRepo{
		createFunc: func(ctx context.Context, game *model.Game, userIDs []string) error {
			game.ID = "game:catan"
			return nil
		},
	}
	svc := newTestGamesService(games, nil)

	data, err := svc.CreateGame(ctx, &model.CreateGameRequest{
		Name:       "Catan",
		MinPlayers: 3,
		MaxPlayers: 4,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.GameID != "game:catan" {
		t.Errorf("expected game id 'game:catan', got %q", data.GameID)
	}
	if data.MinPlayers != 3 || data.MaxPlayers != 4 {
		t.Errorf("expected player bounds 3..4, got %d..%d", data.MinPlayers, data.MaxPlayers)
	}
	if len(data.UserIDs) != 0 {
		t.Errorf("expected empty member set, got %v", data.UserIDs)
	}
}

func TestCreateGame_WithMembers_LinksBothSides(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var linkedUsers []string
	games := &mockGameRepo{
		createFunc: func(ctx context.Context, game *model.Game, userIDs []string) error {
			game.ID = "game:catan"
			linkedUsers = userIDs
			return nil
		},
	}
	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
	}
	svc := newTestGamesService(games, users)

	data, err := svc.CreateGame(ctx, &model.CreateGameRequest{
		Name:    "Catan",
		UserIDs: []string{"user:alice", "user:bob", "user:alice"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(linkedUsers, []string{"user:alice", "user:bob"}) {
		t.Errorf("expected deduped links [user:alice user:bob], got %v", linkedUsers)
	}
	if !reflect.DeepEqual(data.UserIDs, []string{"user:alice", "user:bob"}) {
		t.Errorf("expected member set [user:alice user:bob], got %v", data.UserIDs)
	}
}

func TestCreateGame_MissingUser_NothingPersisted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var created bool
	games := &mockGameRepo{
		createFunc: func(ctx context.Context, game *model.Game, userIDs []string) error {
			created = true
			return nil
		},
	}
	svc := newTestGamesService(games, nil)

	_, err := svc.CreateGame(ctx, &model.CreateGameRequest{
		Name:    "Catan",
		UserIDs: []string{"user:missing"},
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if created {
		t.Error("game should not be persisted when a referenced user is missing")
	}
}

// ============================================================================
// GetGame / SearchGames Tests
// ============================================================================

func TestGetGame_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestGamesService(nil, nil)

	_, err := svc.GetGame(ctx, "game:nothing")
	if !errors.Is(err, ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}
}

func TestSearchGames_EmptyQuery_ReturnsEmptyList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var searched bool
	games := &mockGameRepo{
		searchByNameFunc: func(ctx context.Context, query string) ([]*model.Game, error) {
			searched = true
			return []*model.Game{{ID: "game:catan"}}, nil
		},
	}
	svc := newTestGamesService(games, nil)

	for _, query := range []string{"", "  "} {
		result, err := svc.SearchGames(ctx, query)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result) != 0 {
			t.Errorf("expected empty result for blank query %q, got %d games", query, len(result))
		}
	}
	if searched {
		t.Error("repository search should not run for blank queries")
	}
}

func TestSearchGames_DelegatesToRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	games := &mockGameRepo{
		searchByNameFunc: func(ctx context.Context, query string) ([]*model.Game, error) {
			if query != "cat" {
				t.Errorf("expected query 'cat', got %q", query)
			}
			return []*model.Game{{ID: "game:catan", Name: "Catan"}}, nil
		},
	}
	svc := newTestGamesService(games, nil)

	result, err := svc.SearchGames(ctx, "cat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 || result[0].GameID != "game:catan" {
		t.Errorf("expected [game:catan], got %+v", result)
	}
}

// ============================================================================
// PatchGame / UpdateGamePlayers Tests
// ============================================================================

func TestPatchGame_ScalarFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var updated *model.Game
	games := &mockGameRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Game, error) {
			return &model.Game{ID: id, Name: "Catan", MinPlayers: 3, MaxPlayers: 4}, nil
		},
		updateFunc: func(ctx context.Context, game *model.Game) error {
			updated = game
			return nil
		},
	}
	svc := newTestGamesService(games, nil)

	maxPlayers := 6
	data, err := svc.PatchGame(ctx, "game:catan", &model.UpdateGameRequest{MaxPlayers: &maxPlayers})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil || updated.MaxPlayers != 6 {
		t.Errorf("expected max players update to be persisted, got %+v", updated)
	}
	if data.Name != "Catan" || data.MinPlayers != 3 {
		t.Errorf("untouched fields should survive the patch, got %+v", data)
	}
}

func TestPatchGame_ReconcilesMembers_MinimalDiff(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var linkedAdd, linkedRemove []string
	games := &mockGameRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Game, error) {
			return &model.Game{ID: id, UserIDs: []string{"user:alice", "user:bob"}}, nil
		},
		updateWithPlayerLinksFunc: func(ctx context.Context, game *model.Game, add, remove []string) error {
			linkedAdd, linkedRemove = add, remove
			return nil
		},
	}
	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
	}
	svc := newTestGamesService(games, users)

	desired := []string{"user:bob", "user:carol"}
	data, err := svc.PatchGame(ctx, "game:catan", &model.UpdateGameRequest{UserIDs: &desired})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(linkedAdd, []string{"user:carol"}) {
		t.Errorf("expected to add only user:carol, got %v", linkedAdd)
	}
	if !reflect.DeepEqual(linkedRemove, []string{"user:alice"}) {
		t.Errorf("expected to remove only user:alice, got %v", linkedRemove)
	}
	if !reflect.DeepEqual(data.UserIDs, desired) {
		t.Errorf("expected member set %v, got %v", desired, data.UserIDs)
	}
}

func TestPatchGame_RejectedWrite_NoSeparateMembershipCommit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var rowWrites int
	games := &mockGameRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Game, error) {
			return &model.Game{ID: id, UserIDs: []string{"user:alice"}}, nil
		},
		updateWithPlayerLinksFunc: func(ctx context.Context, game *model.Game, add, remove []string) error {
			return errors.New("write rejected")
		},
		updateFunc: func(ctx context.Context, game *model.Game) error {
			rowWrites++
			return nil
		},
	}
	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
	}
	svc := newTestGamesService(games, users)

	desired := []string{"user:alice", "user:bob"}
	_, err := svc.PatchGame(ctx, "game:catan", &model.UpdateGameRequest{UserIDs: &desired})
	if err == nil {
		t.Fatal("expected the rejected write to surface an error")
	}
	if rowWrites != 0 {
		t.Errorf("expected no separate row write after the rejected combined write, got %d", rowWrites)
	}
}

func TestUpdateGamePlayers_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestGamesService(nil, nil)

	_, err := svc.UpdateGamePlayers(ctx, "game:nothing", []string{"user:alice"})
	if !errors.Is(err, ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}
}

func TestUpdateGamePlayers_EmptySet_RemovesAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var linkedAdd, linkedRemove []string
	games := &mockGameRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Game, error) {
			return &model.Game{ID: id, UserIDs: []string{"user:alice", "user:bob"}}, nil
		},
		applyPlayerLinksFunc: func(ctx context.Context, gameID string, add, remove []string) error {
			linkedAdd, linkedRemove = add, remove
			return nil
		},
	}
	svc := newTestGamesService(games, nil)

	data, err := svc.UpdateGamePlayers(ctx, "game:catan", []string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(linkedAdd) != 0 {
		t.Errorf("expected no additions, got %v", linkedAdd)
	}
	if !reflect.DeepEqual(linkedRemove, []string{"user:alice", "user:bob"}) {
		t.Errorf("expected all members removed, got %v", linkedRemove)
	}
	if len(data.UserIDs) != 0 {
		t.Errorf("expected empty member set, got %v", data.UserIDs)
	}
}

func TestUpdateGamePlayers_MissingUser_NoMutation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var mutated bool
	games := &mockGameRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Game, error) {
			return &model.Game{ID: id, UserIDs: []string{"user:alice"}}, nil
		},
		applyPlayerLinksFunc: func(ctx context.Context, gameID string, add, remove []string) error {
			mutated = true
			return nil
		},
	}
	svc := newTestGamesService(games, nil)

	_, err := svc.UpdateGamePlayers(ctx, "game:catan", []string{"user:missing"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if mutated {
		t.Error("no edge edits should be applied when a referenced user is missing")
	}
}

// ============================================================================
// Delete Tests
// ============================================================================

func TestDeleteGame_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var cascaded bool
	games := &mockGameRepo{
		deleteCascadeFunc: func(ctx context.Context, gameID string) error {
			cascaded = true
			return nil
		},
	}
	svc := newTestGamesService(games, nil)

	err := svc.DeleteGame(ctx, "game:nothing")
	if !errors.Is(err, ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}
	if cascaded {
		t.Error("cascade should not run for a missing game")
	}
}

func TestDeleteGame_Cascades(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var cascaded string
	games := &mockGameRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Game, error) {
			return &model.Game{ID: id, UserIDs: []string{"user:alice"}}, nil
		},
		deleteCascadeFunc: func(ctx context.Context, gameID string) error {
			cascaded = gameID
			return nil
		},
	}
	svc := newTestGamesService(games, nil)

	if err := svc.DeleteGame(ctx, "game:catan"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cascaded != "game:catan" {
		t.Errorf("expected cascade on game:catan, got %q", cascaded)
	}
}

func TestDeleteGames_BestEffortAggregate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	games := &mockGameRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Game, error) {
			if id == "game:missing" {
				return nil, nil
			}
			return &model.Game{ID: id}, nil
		},
	}
	svc := newTestGamesService(games, nil)

	result, err := svc.DeleteGames(ctx, []string{"game:a", "game:missing", "game:b", "game:a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(result.Deleted, []string{"game:a", "game:b"}) {
		t.Errorf("expected deleted [game:a game:b], got %v", result.Deleted)
	}
	if len(result.Failures) != 1 || result.Failures[0].ID != "game:missing" {
		t.Errorf("expected single failure for game:missing, got %+v", result.Failures)
	}
}
