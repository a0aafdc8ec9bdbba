package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rulezero/playerconnector/internal/database"
	"github.com/rulezero/playerconnector/internal/model"
)

// GameRepository handles game data access
type GameRepository struct {
	db database.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db database.Database) *GameRepository {
	return &GameRepository{db: db}
}

// gameProjection selects the game row together with its member users from
// the plays edges.
const gameProjection = `*, <-plays<-user AS user_ids`

// newGameID mints a client-side record id so the row creation and its
// membership RELATE statements can travel in the same transaction.
func newGameID() string {
	return "game:" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// Create creates a new game together with its initial member edges in a
// single transaction. The assigned id is written back to game.ID.
func (r *GameRepository) Create(ctx context.Context, game *model.Game, userIDs []string) error {
	if len(userIDs) == 0 {
		return r.createRecord(ctx, game)
	}

	game.ID = newGameID()

	batch := database.NewAtomicBatch()
	vars := gameContentVars(game)
	vars["id"] = game.ID
	batch.Add(`
		CREATE type::record($id) CONTENT {
			name: $name,
			description: IF $description IS NOT NULL THEN $description ELSE NONE END,
			min_players: $min_players,
			max_players: $max_players
		}
	`, vars)
	for _, userID := range userIDs {
		stagePlaysLink(batch, userID, game.ID)
	}

	if err := batch.Execute(ctx, r.db); err != nil {
		game.ID = ""
		return err
	}
	return nil
}

// createRecord creates a bare game row with a database-assigned id
func (r *GameRepository) createRecord(ctx context.Context, game *model.Game) error {
	query := `
		CREATE game CONTENT {
			name: $name,
			description: IF $description IS NOT NULL THEN $description ELSE NONE END,
			min_players: $min_players,
			max_players: $max_players
		}
	`

	result, err := r.db.Query(ctx, query, gameContentVars(game))
	if err != nil {
		return err
	}

	id, err := extractCreatedID(result)
	if err != nil {
		return err
	}

	game.ID = id
	return nil
}

// GetByID retrieves a game by ID, including its member projection. Returns
// nil (no error) when the game does not exist.
func (r *GameRepository) GetByID(ctx context.Context, id string) (*model.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM type::record($id)`, gameProjection)
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	game, err := parseGameResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return game, nil
}

// GetAll retrieves all games
func (r *GameRepository) GetAll(ctx context.Context) ([]*model.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM game`, gameProjection)

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return parseGameList(results)
}

// Update persists the game's scalar fields. Membership lives on plays edges;
// use UpdateWithPlayerLinks when the same operation also edits membership.
func (r *GameRepository) Update(ctx context.Context, game *model.Game) error {
	return r.UpdateWithPlayerLinks(ctx, game, nil, nil)
}

// UpdateWithPlayerLinks persists the game's scalar fields and applies the
// member edge diff in a single transaction, so a rejected row write rolls
// the edge edits back with it.
func (r *GameRepository) UpdateWithPlayerLinks(ctx context.Context, game *model.Game, add, remove []string) error {
	vars := gameContentVars(game)
	vars["id"] = game.ID

	batch := database.NewAtomicBatch()
	batch.Add(`
		UPDATE type::record($id) SET
			name = $name,
			description = IF $description IS NOT NULL THEN $description ELSE NONE END,
			min_players = $min_players,
			max_players = $max_players
	`, vars)
	for _, userID := range add {
		stagePlaysLink(batch, userID, game.ID)
	}
	for _, userID := range remove {
		stagePlaysUnlink(batch, userID, game.ID)
	}

	return batch.Execute(ctx, r.db)
}

// SearchByName retrieves games whose name contains the query, case-insensitively
func (r *GameRepository) SearchByName(ctx context.Context, query string) ([]*model.Game, error) {
	q := fmt.Sprintf(`
		SELECT %s FROM game
		WHERE string::contains(string::lowercase(name), $query)
	`, gameProjection)
	vars := map[string]interface{}{"query": strings.ToLower(query)}

	results, err := r.db.Query(ctx, q, vars)
	if err != nil {
		return nil, err
	}

	return parseGameList(results)
}

// ApplyPlayerLinks edits the game's member edges without touching the row
// itself: one RELATE per added user, one edge deletion per removed user, all
// in a single transaction.
func (r *GameRepository) ApplyPlayerLinks(ctx context.Context, gameID string, add, remove []string) error {
	batch := database.NewAtomicBatch()
	for _, userID := range add {
		stagePlaysLink(batch, userID, gameID)
	}
	for _, userID := range remove {
		stagePlaysUnlink(batch, userID, gameID)
	}
	return batch.Execute(ctx, r.db)
}

// DeleteCascade removes the game and all of its plays edges as one atomic
// unit of work, so no member user keeps a reciprocal reference to it.
func (r *GameRepository) DeleteCascade(ctx context.Context, gameID string) error {
	batch := database.NewAtomicBatch()
	stageDetachGame(batch, gameID)
	batch.Add(`DELETE type::record($id)`, map[string]interface{}{"id": gameID})
	return batch.Execute(ctx, r.db)
}

// gameContentVars collects the game's writable fields as query variables
func gameContentVars(game *model.Game) map[string]interface{} {
	return map[string]interface{}{
		"name":        game.Name,
		"description": nilIfEmpty(game.Description),
		"min_players": game.MinPlayers,
		"max_players": game.MaxPlayers,
	}
}

func parseGameResult(result interface{}) (*model.Game, error) {
	data, err := unwrapResult(result)
	if err != nil {
		return nil, err
	}
	return parseGameData(data)
}

func parseGameData(data map[string]interface{}) (*model.Game, error) {
	var game model.Game
	if err := decodeRecord(data, []string{"user_ids"}, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func parseGameList(results []interface{}) ([]*model.Game, error) {
	records := unwrapResults(results)
	games := make([]*model.Game, 0, len(records))
	for _, data := range records {
		game, err := parseGameData(data)
		if err != nil {
			return nil, fmt.Errorf("parse game record: %w", err)
		}
		games = append(games, game)
	}
	return games, nil
}
