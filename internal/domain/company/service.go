package company

import "context"

type CompanyService interface {
	// Create rejects the request when the requester identity already holds
	// a live company association, before checking name uniqueness.
	Create(ctx context.Context, requesterID int64, req CreateCompanyRequest) (CompanyResponse, error)
	GetByID(ctx context.Context, id int64) (CompanyResponse, error)
	List(ctx context.Context, page, limit int) ([]CompanyResponse, int64, error)
	Delete(ctx context.Context, id int64) error
}
