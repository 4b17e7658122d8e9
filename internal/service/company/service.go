package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/codelever/company-registry-go/internal/domain/company"
	"github.com/codelever/company-registry-go/internal/domain/user"
)

type CompanyServiceImpl struct {
	companyRepo company.CompanyRepository
	userRepo    user.UserRepository
}

func NewCompanyService(companyRepo company.CompanyRepository, userRepo user.UserRepository) company.CompanyService {
	return &CompanyServiceImpl{
		companyRepo: companyRepo,
		userRepo:    userRepo,
	}
}

// Create implements company.CompanyService.
//
// The requester is blocked when their own company reference resolves to a
// live company, whatever company that is. Name uniqueness is checked by
// lookup before the insert, so the duplicate case comes back as a typed
// error instead of a driver-specific constraint violation.
func (s *CompanyServiceImpl) Create(ctx context.Context, requesterID int64, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return company.CompanyResponse{}, fmt.Errorf("failed to get requester: %w", err)
	}
	if err == nil && requester.HasCompanyRef() {
		if _, err := s.companyRepo.GetByID(ctx, *requester.CompanyID); err == nil {
			return company.CompanyResponse{}, company.ErrUserAlreadyAssigned
		} else if !errors.Is(err, company.ErrCompanyNotFound) {
			return company.CompanyResponse{}, fmt.Errorf("failed to resolve requester company: %w", err)
		}
	}

	if _, err := s.companyRepo.GetByName(ctx, req.Name); err == nil {
		return company.CompanyResponse{}, company.ErrCompanyNameExists
	} else if !errors.Is(err, company.ErrCompanyNotFound) {
		return company.CompanyResponse{}, fmt.Errorf("failed to check company name: %w", err)
	}

	created, err := s.companyRepo.Create(ctx, company.Company{Name: req.Name})
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to create company: %w", err)
	}

	return company.CompanyResponse{
		ID:    created.ID,
		Name:  created.Name,
		Users: []company.MemberResponse{},
	}, nil
}

// GetByID implements company.CompanyService.
func (s *CompanyServiceImpl) GetByID(ctx context.Context, id int64) (company.CompanyResponse, error) {
	found, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.CompanyResponse{}, company.ErrCompanyNotFound
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to get company: %w", err)
	}

	return s.toResponse(ctx, found)
}

// List implements company.CompanyService.
func (s *CompanyServiceImpl) List(ctx context.Context, page, limit int) ([]company.CompanyResponse, int64, error) {
	offset := (page - 1) * limit

	companies, err := s.companyRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}

	total, err := s.companyRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	responses := make([]company.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		resp, err := s.toResponse(ctx, c)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, resp)
	}

	return responses, total, nil
}

// Delete implements company.CompanyService. References held by users are
// left dangling; reads resolve them to no company.
func (s *CompanyServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.companyRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to delete company: %w", err)
	}
	return nil
}

// toResponse attaches the derived member set.
func (s *CompanyServiceImpl) toResponse(ctx context.Context, c company.Company) (company.CompanyResponse, error) {
	members, err := s.userRepo.ListByCompany(ctx, c.ID)
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to list company members: %w", err)
	}

	users := make([]company.MemberResponse, 0, len(members))
	for _, m := range members {
		users = append(users, company.MemberResponse{
			ID:      m.ID,
			Name:    m.Name,
			Surname: m.Surname,
			Email:   m.Email,
		})
	}

	return company.CompanyResponse{ID: c.ID, Name: c.Name, Users: users}, nil
}
