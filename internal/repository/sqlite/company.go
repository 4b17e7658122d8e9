package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/codelever/company-registry-go/internal/domain/company"
)

type companyRepo struct {
	db *sql.DB
}

func NewCompanyRepository(s *Store) company.CompanyRepository {
	return &companyRepo{db: s.db}
}

func (r *companyRepo) GetByID(ctx context.Context, id int64) (company.Company, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name FROM companies WHERE id = ?`, id)
	return scanCompany(row)
}

func (r *companyRepo) GetByName(ctx context.Context, name string) (company.Company, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name FROM companies WHERE name = ?`, name)
	return scanCompany(row)
}

func (r *companyRepo) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO companies (name) VALUES (?)`, newCompany.Name)
	if err != nil {
		return company.Company{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return company.Company{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the company only. User references to it are left in
// place on purpose.
func (r *companyRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}

func (r *companyRepo) List(ctx context.Context, limit, offset int) ([]company.Company, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM companies ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
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

func (r *companyRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func scanCompany(row *sql.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}
