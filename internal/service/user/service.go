package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/codelever/company-registry-go/internal/domain/company"
	"github.com/codelever/company-registry-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceImpl carries the assignment rules between users and
// companies. The one-company-per-user invariant lives here, not in the
// database: membership is derived on demand from live references and
// checked before every mutation.
type UserServiceImpl struct {
	userRepo    user.UserRepository
	companyRepo company.CompanyRepository
}

func NewUserService(userRepo user.UserRepository, companyRepo company.CompanyRepository) user.UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		companyRepo: companyRepo,
	}
}

// Create implements user.UserService. The company reference is stored
// exactly as given: no existence check, a reference to a missing company
// simply resolves to no company on later reads.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	hash, err := hashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, err
	}

	created, err := s.userRepo.Create(ctx, user.User{
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		PasswordHash: hash,
		CompanyID:    req.CompanyID,
	})
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return s.toResponse(ctx, created)
}

// GetByID implements user.UserService.
func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (user.UserResponse, error) {
	found, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	return s.toResponse(ctx, found)
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, page, limit int) ([]user.UserResponse, int64, error) {
	offset := (page - 1) * limit

	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		resp, err := s.toResponse(ctx, u)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, resp)
	}

	return responses, total, nil
}

// Update implements user.UserService. Three mutually exclusive outcomes:
//
//  1. The patch targets a company that already has a live member: rejected.
//     This fires even when that member is the user being updated, so
//     re-sending a user's current assignment is a conflict too. Surprising,
//     but callers depend on it.
//  2. The user's current reference resolves to a live company: the
//     reference is cleared and that company is deleted outright, however
//     many members it still had. The rest of the patch is discarded.
//  3. Otherwise the profile patch applies. The patch's company is attached
//     only when the user holds no reference at all and the company exists;
//     a dangling current reference blocks reassignment but is kept as-is.
//     A missing user is created under the requested id as a fallback.
func (s *UserServiceImpl) Update(ctx context.Context, id int64, req user.UpdateUserRequest) (user.UserResponse, error) {
	if req.CompanyID != nil {
		members, err := s.userRepo.ListByCompany(ctx, *req.CompanyID)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to derive target company members: %w", err)
		}
		if len(members) >= 1 {
			return user.UserResponse{}, company.ErrUserAlreadyAssigned
		}
	}

	current, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, user.ErrUserNotFound) {
		return s.createFromPatch(ctx, id, req)
	}
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if current.HasCompanyRef() {
		members, err := s.userRepo.ListByCompany(ctx, *current.CompanyID)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to derive current company members: %w", err)
		}
		if len(members) >= 1 {
			return s.unassignAndCascade(ctx, current)
		}
	}

	return s.applyPatch(ctx, current, req)
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// unassignAndCascade clears the user's reference and then deletes the
// company it pointed at. The two writes are separate store calls; a crash
// in between leaves an empty, not-yet-deleted company behind, which is an
// accepted inconsistency window.
func (s *UserServiceImpl) unassignAndCascade(ctx context.Context, u user.User) (user.UserResponse, error) {
	oldCompanyID := *u.CompanyID

	u.CompanyID = nil
	updated, err := s.userRepo.Update(ctx, u)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to clear company reference: %w", err)
	}

	if err := s.companyRepo.Delete(ctx, oldCompanyID); err != nil && !errors.Is(err, company.ErrCompanyNotFound) {
		return user.UserResponse{}, fmt.Errorf("failed to cascade delete company: %w", err)
	}

	return user.UserResponse{
		ID:      updated.ID,
		Name:    updated.Name,
		Surname: updated.Surname,
		Email:   updated.Email,
		Company: nil,
	}, nil
}

// applyPatch is the profile-update path for a user with no live company.
func (s *UserServiceImpl) applyPatch(ctx context.Context, current user.User, req user.UpdateUserRequest) (user.UserResponse, error) {
	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Surname != nil {
		current.Surname = *req.Surname
	}
	if req.Email != nil {
		current.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return user.UserResponse{}, err
		}
		current.PasswordHash = hash
	}

	// Only a user with no reference at all picks up the patch company,
	// and only when that company exists. A dangling reference stays.
	if !current.HasCompanyRef() && req.CompanyID != nil {
		_, err := s.companyRepo.GetByID(ctx, *req.CompanyID)
		if err == nil {
			current.CompanyID = req.CompanyID
		} else if !errors.Is(err, company.ErrCompanyNotFound) {
			return user.UserResponse{}, fmt.Errorf("failed to resolve patch company: %w", err)
		}
	}

	updated, err := s.userRepo.Update(ctx, current)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	return s.toResponse(ctx, updated)
}

// createFromPatch is the upsert fallback: the update targeted an id with
// no user behind it, so one is created under that id from the patch. The
// company reference is stored as given, unchecked.
func (s *UserServiceImpl) createFromPatch(ctx context.Context, id int64, req user.UpdateUserRequest) (user.UserResponse, error) {
	newUser := user.User{ID: id, CompanyID: req.CompanyID}
	if req.Name != nil {
		newUser.Name = *req.Name
	}
	if req.Surname != nil {
		newUser.Surname = *req.Surname
	}
	if req.Email != nil {
		newUser.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return user.UserResponse{}, err
		}
		newUser.PasswordHash = hash
	}

	created, err := s.userRepo.CreateWithID(ctx, newUser)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to create user from patch: %w", err)
	}

	return s.toResponse(ctx, created)
}

// toResponse resolves the company reference at read time: a reference to
// a company that no longer exists comes back as no company, not an error.
func (s *UserServiceImpl) toResponse(ctx context.Context, u user.User) (user.UserResponse, error) {
	resp := user.UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Surname: u.Surname,
		Email:   u.Email,
	}

	if u.HasCompanyRef() {
		c, err := s.companyRepo.GetByID(ctx, *u.CompanyID)
		if err == nil {
			resp.Company = &user.CompanyResponse{ID: c.ID, Name: c.Name}
		} else if !errors.Is(err, company.ErrCompanyNotFound) {
			return user.UserResponse{}, fmt.Errorf("failed to resolve user company: %w", err)
		}
	}

	return resp, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
