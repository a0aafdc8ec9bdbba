package repository

import (
	"github.com/rulezero/playerconnector/internal/database"
)

// The plays relation (user->plays->game) is the single source of truth for
// User-Game membership. Both UserRepository and GameRepository edit it
// through these helpers so a membership change is always one edge edit, not
// two collection writes that could drift apart.

// stagePlaysLink stages the creation of a membership edge
func stagePlaysLink(batch *database.AtomicBatch, userID, gameID string) {
	query := `RELATE (SELECT * FROM type::record($user_id))->plays->(SELECT * FROM type::record($game_id))`
	batch.Add(query, map[string]interface{}{
		"user_id": userID,
		"game_id": gameID,
	})
}

// stagePlaysUnlink stages the removal of a membership edge
func stagePlaysUnlink(batch *database.AtomicBatch, userID, gameID string) {
	query := `DELETE plays WHERE in = type::record($user_id) AND out = type::record($game_id)`
	batch.Add(query, map[string]interface{}{
		"user_id": userID,
		"game_id": gameID,
	})
}

// stageDetachUser stages the removal of every membership edge a user holds
func stageDetachUser(batch *database.AtomicBatch, userID string) {
	batch.Add(`DELETE plays WHERE in = type::record($user_id)`, map[string]interface{}{
		"user_id": userID,
	})
}

// stageDetachGame stages the removal of every membership edge a game holds
func stageDetachGame(batch *database.AtomicBatch, gameID string) {
	batch.Add(`DELETE plays WHERE out = type::record($game_id)`, map[string]interface{}{
		"game_id": gameID,
	})
}
