package handler

import (
	"errors"

	"github.com/rulezero/playerconnector/internal/model"
	"github.com/rulezero/playerconnector/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrGameNotFound):
		return model.NewNotFoundError("game")
	case errors.Is(err, service.ErrAvailabilityNotFound):
		return model.NewNotFoundError("availability")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrDuplicateUser):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "password", Message: err.Error()}})

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("an unexpected error occurred")
	}
}
