package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/codelever/company-registry-go/internal/domain/user"
)

type userRepo struct {
	db *sql.DB
}

func NewUserRepository(s *Store) user.UserRepository {
	return &userRepo{db: s.db}
}

const userColumns = `id, name, surname, email, password_hash, company_id`

func (r *userRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *userRepo) GetByName(ctx context.Context, name string) (user.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE name = ?`, name)
	return scanUser(row)
}

func (r *userRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, surname, email, password_hash, company_id)
		 VALUES (?, ?, ?, ?, ?)`,
		newUser.Name, newUser.Surname, newUser.Email, newUser.PasswordHash, newUser.CompanyID)
	if err != nil {
		return user.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return user.User{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *userRepo) CreateWithID(ctx context.Context, newUser user.User) (user.User, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, surname, email, password_hash, company_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		newUser.ID, newUser.Name, newUser.Surname, newUser.Email, newUser.PasswordHash, newUser.CompanyID)
	if err != nil {
		return user.User{}, err
	}
	return r.GetByID(ctx, newUser.ID)
}

func (r *userRepo) Update(ctx context.Context, u user.User) (user.User, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET name = ?, surname = ?, email = ?, password_hash = ?, company_id = ?
		 WHERE id = ?`,
		u.Name, u.Surname, u.Email, u.PasswordHash, u.CompanyID, u.ID)
	if err != nil {
		return user.User{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return user.User{}, err
	}
	if affected == 0 {
		return user.User{}, user.ErrUserNotFound
	}
	return r.GetByID(ctx, u.ID)
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepo) List(ctx context.Context, limit, offset int) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListByCompany joins against companies so members behind a dangling
// reference never show up.
func (r *userRepo) ListByCompany(ctx context.Context, companyID int64) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.name, u.surname, u.email, u.password_hash, u.company_id
		 FROM users u
		 JOIN companies c ON c.id = u.company_id
		 WHERE c.id = ?
		 ORDER BY u.id`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

func scanUser(row *sql.Row) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.PasswordHash, &u.CompanyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func scanUsers(rows *sql.Rows) ([]user.User, error) {
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
