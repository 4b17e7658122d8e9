package postgresql

import (
	"context"
	"errors"

	"github.com/codelever/company-registry-go/internal/domain/company"
	"github.com/codelever/company-registry-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// GetByID implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByID(ctx context.Context, id int64) (company.Company, error) {
	query := `SELECT id, name FROM companies WHERE id = $1`

	var found company.Company
	err := r.db.QueryRow(ctx, query, id).Scan(&found.ID, &found.Name)
	if err != nil {
		return company.Company{}, mapCompanyErr(err)
	}

	return found, nil
}

// GetByName implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByName(ctx context.Context, name string) (company.Company, error) {
	query := `SELECT id, name FROM companies WHERE name = $1`

	var found company.Company
	err := r.db.QueryRow(ctx, query, name).Scan(&found.ID, &found.Name)
	if err != nil {
		return company.Company{}, mapCompanyErr(err)
	}

	return found, nil
}

// Create implements company.CompanyRepository.
func (r *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	query := `
		INSERT INTO companies (name)
		VALUES ($1)
		RETURNING id, name
	`

	var created company.Company
	err := r.db.QueryRow(ctx, query, newCompany.Name).Scan(&created.ID, &created.Name)
	if err != nil {
		return company.Company{}, err
	}

	return created, nil
}

// Delete implements company.CompanyRepository. User references to the
// deleted company are left in place on purpose.
func (r *companyRepositoryImpl) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}

// List implements company.CompanyRepository.
func (r *companyRepositoryImpl) List(ctx context.Context, limit, offset int) ([]company.Company, error) {
	query := `
		SELECT id, name
		FROM companies
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := make([]company.Company, 0)
	for rows.Next() {
		var c company.Company
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// Count implements company.CompanyRepository.
func (r *companyRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func mapCompanyErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return company.ErrCompanyNotFound
	}
	return err
}
