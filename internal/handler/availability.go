package handler

import (
	"net/http"

	"github.com/rulezero/playerconnector/internal/model"
	"github.com/rulezero/playerconnector/internal/service"
)

// AvailabilityHandler handles availability HTTP requests
type AvailabilityHandler struct {
	svc *service.AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

// CreateForUser handles POST /v1/users/{userId}/availability - create an
// availability record owned by the user
func (h *AvailabilityHandler) CreateForUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		WriteError(w, model.NewBadRequestError("user ID required"))
		return
	}

	var req model.CreateAvailabilityRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	availability, err := h.svc.CreateForUser(r.Context(), userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, availability)
}

// ListForUser handles GET /v1/users/{userId}/availability - list the user's
// availability records in ownership order
func (h *AvailabilityHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		WriteError(w, model.NewBadRequestError("user ID required"))
		return
	}

	availabilities, err := h.svc.ListForUser(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, availabilities)
}

// List handles GET /v1/availability - list all availability records
func (h *AvailabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	availabilities, err := h.svc.ListAll(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, availabilities)
}

// Get handles GET /v1/availability/{availabilityId}
func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	availabilityID := r.PathValue("availabilityId")
	if availabilityID == "" {
		WriteError(w, model.NewBadRequestError("availability ID required"))
		return
	}

	availability, err := h.svc.GetAvailability(r.Context(), availabilityID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, availability)
}

// Update handles PUT /v1/availability/{availabilityId} - full replace of
// the record's fields
func (h *AvailabilityHandler) Update(w http.ResponseWriter, r *http.Request) {
	availabilityID := r.PathValue("availabilityId")
	if availabilityID == "" {
		WriteError(w, model.NewBadRequestError("availability ID required"))
		return
	}

	var req model.UpdateAvailabilityRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	availability, err := h.svc.UpdateAvailability(r.Context(), availabilityID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, availability)
}

// Delete handles DELETE /v1/availability/{availabilityId} - delete the
// record and detach it from its owner
func (h *AvailabilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	availabilityID := r.PathValue("availabilityId")
	if availabilityID == "" {
		WriteError(w, model.NewBadRequestError("availability ID required"))
		return
	}

	if err := h.svc.DeleteAvailability(r.Context(), availabilityID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
