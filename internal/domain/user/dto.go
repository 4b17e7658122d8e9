package user

import (
	"github.com/codelever/company-registry-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses. The password hash is
// never part of it.
type UserResponse struct {
	ID      int64            `json:"id"`
	Name    string           `json:"name"`
	Surname string           `json:"surname"`
	Email   string           `json:"email"`
	Company *CompanyResponse `json:"company"`
}

// CompanyResponse is the company as nested inside a user response.
type CompanyResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateUserRequest represents request to create a user directly. The
// company reference is stored as given, without an existence check.
type CreateUserRequest struct {
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	CompanyID *int64 `json:"company_id"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Surname) {
		errs = append(errs, validator.ValidationError{
			Field:   "surname",
			Message: "surname is required",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateUserRequest represents the reassignment/profile patch. All fields
// are optional; which ones actually apply depends on the assignment state
// of the target user (see the user service).
type UpdateUserRequest struct {
	Name      *string `json:"name,omitempty"`
	Surname   *string `json:"surname,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
	CompanyID *int64  `json:"company_id,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Surname != nil && validator.IsEmpty(*r.Surname) {
		errs = append(errs, validator.ValidationError{
			Field:   "surname",
			Message: "surname must not be empty",
		})
	}

	if r.Email != nil {
		if validator.IsEmpty(*r.Email) {
			errs = append(errs, validator.ValidationError{
				Field:   "email",
				Message: "email must not be empty",
			})
		} else if !validator.IsValidEmail(*r.Email) {
			errs = append(errs, validator.ValidationError{
				Field:   "email",
				Message: "invalid email format",
			})
		}
	}

	if r.Password != nil && validator.IsEmpty(*r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
