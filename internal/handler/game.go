package handler

import (
	"net/http"

	"github.com/rulezero/playerconnector/internal/model"
	"github.com/rulezero/playerconnector/internal/service"
)

// GameHandler handles game HTTP requests
type GameHandler struct {
	svc *service.GamesService
}

// NewGameHandler creates a new game handler
func NewGameHandler(svc *service.GamesService) *GameHandler {
	return &GameHandler{svc: svc}
}

// UpdatePlayersRequest is the payload for replacing a game's member set
type UpdatePlayersRequest struct {
	UserIDs []string `json:"user_ids"`
}

// Create handles POST /v1/games - create a new game
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateGameRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	game, err := h.svc.CreateGame(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, game)
}

// List handles GET /v1/games - list all games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.svc.ListGames(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, games)
}

// Get handles GET /v1/games/{gameId} - get game details
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameId")
	if gameID == "" {
		WriteError(w, model.NewBadRequestError("game ID required"))
		return
	}

	game, err := h.svc.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, game)
}

// Search handles GET /v1/games/search?q= - substring search by name.
// An empty or missing query yields an empty list, never all games.
func (h *GameHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	games, err := h.svc.SearchGames(r.Context(), query)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, games)
}

// Update handles PATCH /v1/games/{gameId} - partially update a game
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameId")
	if gameID == "" {
		WriteError(w, model.NewBadRequestError("game ID required"))
		return
	}

	var req model.UpdateGameRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	game, err := h.svc.PatchGame(r.Context(), gameID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, game)
}

// UpdatePlayers handles PATCH /v1/games/{gameId}/players - replace the
// game's member set, reconciling memberships symmetrically
func (h *GameHandler) UpdatePlayers(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameId")
	if gameID == "" {
		WriteError(w, model.NewBadRequestError("game ID required"))
		return
	}

	var req UpdatePlayersRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	game, err := h.svc.UpdateGamePlayers(r.Context(), gameID, req.UserIDs)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, game)
}

// Delete handles DELETE /v1/games/{gameId} - delete a game and detach it
// from every member's game set
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameId")
	if gameID == "" {
		WriteError(w, model.NewBadRequestError("game ID required"))
		return
	}

	if err := h.svc.DeleteGame(r.Context(), gameID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// BulkDelete handles DELETE /v1/games - delete several games, best-effort
// per id, returning an aggregate result
func (h *GameHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.svc.DeleteGames(r.Context(), req.IDs)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, result)
}
