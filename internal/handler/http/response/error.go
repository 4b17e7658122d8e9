package response

import (
	"errors"
	"net/http"

	"github.com/codelever/company-registry-go/internal/domain/auth"
	"github.com/codelever/company-registry-go/internal/domain/company"
	"github.com/codelever/company-registry-go/internal/domain/user"
	"github.com/codelever/company-registry-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials.")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserNameExists):
		Conflict(w, "A user with that name already exists.")

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrUserAlreadyAssigned):
		Conflict(w, "A user is already associated with a company.")
	// Duplicate company names are a 400 here, not a 409. Clients depend
	// on that status.
	case errors.Is(err, company.ErrCompanyNameExists):
		BadRequest(w, "A company with that name already exists.", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
