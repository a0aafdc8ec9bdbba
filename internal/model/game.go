package model

// Game represents a game that users can be members of.
//
// UserIDs is the projection of the plays relation from the game side and is
// symmetric with each member user's GameIDs. Player-count bounds carry no
// range validation.
type Game struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	MinPlayers  int      `json:"min_players"`
	MaxPlayers  int      `json:"max_players"`
	UserIDs     []string `json:"user_ids,omitempty"`
}

// GameData is the transfer representation of a Game
type GameData struct {
	GameID      string   `json:"game_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	MinPlayers  int      `json:"min_players"`
	MaxPlayers  int      `json:"max_players"`
	UserIDs     []string `json:"user_ids"`
}

// Data converts the game to its transfer representation
func (g *Game) Data() *GameData {
	userIDs := g.UserIDs
	if userIDs == nil {
		userIDs = []string{}
	}
	return &GameData{
		GameID:      g.ID,
		Name:        g.Name,
		Description: g.Description,
		MinPlayers:  g.MinPlayers,
		MaxPlayers:  g.MaxPlayers,
		UserIDs:     userIDs,
	}
}

// CreateGameRequest is the payload for creating a game. UserIDs, when
// present, links the listed users as initial members.
type CreateGameRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	MinPlayers  int      `json:"min_players"`
	MaxPlayers  int      `json:"max_players"`
	UserIDs     []string `json:"user_ids,omitempty"`
}

// Entity converts the creation payload to a Game. Membership links are
// resolved by the service layer.
func (r *CreateGameRequest) Entity() *Game {
	return &Game{
		Name:        r.Name,
		Description: r.Description,
		MinPlayers:  r.MinPlayers,
		MaxPlayers:  r.MaxPlayers,
	}
}

// UpdateGameRequest is the payload for partially updating a game. Nil
// fields are untouched. A non-nil UserIDs replaces the whole member set
// (full reconciliation, not a merge).
type UpdateGameRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	MinPlayers  *int      `json:"min_players,omitempty"`
	MaxPlayers  *int      `json:"max_players,omitempty"`
	UserIDs     *[]string `json:"user_ids,omitempty"`
}

// Apply overwrites the game's scalar fields with the non-nil fields of the
// request. Membership is handled by the service layer.
func (r *UpdateGameRequest) Apply(g *Game) {
	if r.Name != nil {
		g.Name = *r.Name
	}
	if r.Description != nil {
		g.Description = *r.Description
	}
	if r.MinPlayers != nil {
		g.MinPlayers = *r.MinPlayers
	}
	if r.MaxPlayers != nil {
		g.MaxPlayers = *r.MaxPlayers
	}
}
