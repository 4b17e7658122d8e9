package company

import (
	"github.com/codelever/company-registry-go/internal/pkg/validator"
)

// CompanyResponse represents company data in API responses, including the
// derived member list.
type CompanyResponse struct {
	ID    int64            `json:"id"`
	Name  string           `json:"name"`
	Users []MemberResponse `json:"users"`
}

// MemberResponse is a user as nested inside a company response. No
// password, no company_id echoed back.
type MemberResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

// CreateCompanyRequest represents request to create a company.
type CreateCompanyRequest struct {
	Name string `json:"name"`
}

func (r *CreateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
