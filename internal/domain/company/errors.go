package company

import "errors"

var (
	ErrCompanyNotFound = errors.New("company not found")
	// ErrCompanyNameExists maps to 400, not the usual 409. Clients
	// depend on that status.
	ErrCompanyNameExists = errors.New("a company with that name already exists")
	// ErrUserAlreadyAssigned guards both sides of the one-company-per-user
	// rule: creating a company while the requester holds one, and
	// assigning a user to a company that already has a member.
	ErrUserAlreadyAssigned = errors.New("a user is already associated with a company")
)
