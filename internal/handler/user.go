package handler

import (
	"net/http"

	"github.com/rulezero/playerconnector/internal/model"
	"github.com/rulezero/playerconnector/internal/service"
)

// UserHandler handles user HTTP requests
type UserHandler struct {
	svc *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// BulkDeleteRequest is the payload for bulk deletion endpoints
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// LinkAvailabilityRequest is the payload for linking an existing
// availability record as a user's representative slot
type LinkAvailabilityRequest struct {
	AvailabilityID string `json:"availability_id"`
}

// Create handles POST /v1/users - create a new user
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	user, err := h.svc.CreateUser(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, user)
}

// List handles GET /v1/users - list all users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, users)
}

// Get handles GET /v1/users/{userId} - get user details
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		WriteError(w, model.NewBadRequestError("user ID required"))
		return
	}

	user, err := h.svc.GetUser(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, user)
}

// Search handles GET /v1/users/search?q= - substring search by name.
// An empty or missing query yields an empty list, never all users.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	users, err := h.svc.SearchUsers(r.Context(), query)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, users)
}

// Update handles PATCH /v1/users/{userId} - partially update a user
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		WriteError(w, model.NewBadRequestError("user ID required"))
		return
	}

	var req model.UpdateUserRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	user, err := h.svc.PatchUser(r.Context(), userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, user)
}

// Delete handles DELETE /v1/users/{userId} - delete a user and cascade to
// its availability records and game memberships
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		WriteError(w, model.NewBadRequestError("user ID required"))
		return
	}

	if err := h.svc.DeleteUser(r.Context(), userID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// BulkDelete handles DELETE /v1/users - delete several users, best-effort
// per id, returning an aggregate result
func (h *UserHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.svc.DeleteUsers(r.Context(), req.IDs)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, result)
}

// LinkAvailability handles PATCH /v1/users/{userId}/availability - link an
// existing availability record as the user's representative slot
func (h *UserHandler) LinkAvailability(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		WriteError(w, model.NewBadRequestError("user ID required"))
		return
	}

	var req LinkAvailabilityRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if req.AvailabilityID == "" {
		WriteError(w, model.NewBadRequestError("availability ID required"))
		return
	}

	user, err := h.svc.UpdateUserAvailability(r.Context(), userID, req.AvailabilityID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, user)
}
