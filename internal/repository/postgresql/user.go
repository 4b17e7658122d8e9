package postgresql

import (
	"context"
	"errors"

	"github.com/codelever/company-registry-go/internal/domain/user"
	"github.com/codelever/company-registry-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id int64) (user.User, error) {
	query := `
		SELECT id, name, surname, email, password_hash, company_id
		FROM users
		WHERE id = $1
	`

	var found user.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.Name,
		&found.Surname,
		&found.Email,
		&found.PasswordHash,
		&found.CompanyID,
	)
	if err != nil {
		return user.User{}, mapUserErr(err)
	}

	return found, nil
}

// GetByName implements user.UserRepository.
func (r *userRepositoryImpl) GetByName(ctx context.Context, name string) (user.User, error) {
	query := `
		SELECT id, name, surname, email, password_hash, company_id
		FROM users
		WHERE name = $1
	`

	var found user.User
	err := r.db.QueryRow(ctx, query, name).Scan(
		&found.ID,
		&found.Name,
		&found.Surname,
		&found.Email,
		&found.PasswordHash,
		&found.CompanyID,
	)
	if err != nil {
		return user.User{}, mapUserErr(err)
	}

	return found, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	query := `
		INSERT INTO users (name, surname, email, password_hash, company_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, surname, email, password_hash, company_id
	`

	var created user.User
	err := r.db.QueryRow(ctx, query,
		newUser.Name,
		newUser.Surname,
		newUser.Email,
		newUser.PasswordHash,
		newUser.CompanyID,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Surname,
		&created.Email,
		&created.PasswordHash,
		&created.CompanyID,
	)
	if err != nil {
		return user.User{}, err
	}

	return created, nil
}

// CreateWithID implements user.UserRepository.
func (r *userRepositoryImpl) CreateWithID(ctx context.Context, newUser user.User) (user.User, error) {
	query := `
		INSERT INTO users (id, name, surname, email, password_hash, company_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, surname, email, password_hash, company_id
	`

	var created user.User
	err := r.db.QueryRow(ctx, query,
		newUser.ID,
		newUser.Name,
		newUser.Surname,
		newUser.Email,
		newUser.PasswordHash,
		newUser.CompanyID,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Surname,
		&created.Email,
		&created.PasswordHash,
		&created.CompanyID,
	)
	if err != nil {
		return user.User{}, err
	}

	return created, nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) (user.User, error) {
	query := `
		UPDATE users
		SET name = $1, surname = $2, email = $3, password_hash = $4, company_id = $5
		WHERE id = $6
		RETURNING id, name, surname, email, password_hash, company_id
	`

	var updated user.User
	err := r.db.QueryRow(ctx, query,
		u.Name,
		u.Surname,
		u.Email,
		u.PasswordHash,
		u.CompanyID,
		u.ID,
	).Scan(
		&updated.ID,
		&updated.Name,
		&updated.Surname,
		&updated.Email,
		&updated.PasswordHash,
		&updated.CompanyID,
	)
	if err != nil {
		return user.User{}, mapUserErr(err)
	}

	return updated, nil
}

// Delete implements user.UserRepository.
func (r *userRepositoryImpl) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, limit, offset int) ([]user.User, error) {
	query := `
		SELECT id, name, surname, email, password_hash, company_id
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

// Count implements user.UserRepository.
func (r *userRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListByCompany implements user.UserRepository. The join keeps users with
// a dangling company reference out of the result.
func (r *userRepositoryImpl) ListByCompany(ctx context.Context, companyID int64) ([]user.User, error) {
	query := `
		SELECT u.id, u.name, u.surname, u.email, u.password_hash, u.company_id
		FROM users u
		JOIN companies c ON c.id = u.company_id
		WHERE c.id = $1
		ORDER BY u.id
	`

	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

func scanUsers(rows pgx.Rows) ([]user.User, error) {
	users := make([]user.User, 0)
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.PasswordHash, &u.CompanyID); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func mapUserErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return user.ErrUserNotFound
	}
	return err
}
