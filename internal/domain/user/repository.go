package user

import "context"

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (User, error)
	GetByName(ctx context.Context, name string) (User, error)
	// Create inserts a user and lets the store assign the id.
	Create(ctx context.Context, newUser User) (User, error)
	// CreateWithID inserts a user under a caller-chosen id. Used by the
	// update upsert fallback.
	CreateWithID(ctx context.Context, newUser User) (User, error)
	Update(ctx context.Context, u User) (User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]User, error)
	Count(ctx context.Context) (int64, error)
	// ListByCompany returns users joined against an existing company row,
	// so members behind a dangling reference never show up.
	ListByCompany(ctx context.Context, companyID int64) ([]User, error)
}
