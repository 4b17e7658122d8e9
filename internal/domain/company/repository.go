package company

import "context"

type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (Company, error)
	GetByName(ctx context.Context, name string) (Company, error)
	Create(ctx context.Context, newCompany Company) (Company, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]Company, error)
	Count(ctx context.Context) (int64, error)
}
