package sqlite

import (
	"context"
	"testing"

	"github.com/codelever/company-registry-go/internal/domain/company"
	"github.com/codelever/company-registry-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.ApplyMigrations())
	return store
}

func insertUser(t *testing.T, repo user.UserRepository, name string, companyID *int64) user.User {
	t.Helper()
	created, err := repo.Create(context.Background(), user.User{
		Name:         name,
		Surname:      "Tester",
		Email:        name + "@example.com",
		PasswordHash: "hash",
		CompanyID:    companyID,
	})
	require.NoError(t, err)
	return created
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := NewUserRepository(store)

	created := insertUser(t, repo, "alice", nil)
	assert.NotZero(t, created.ID)
	assert.Nil(t, created.CompanyID)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byName, err := repo.GetByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created, byName)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepo_CreateWithID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := NewUserRepository(store)

	created, err := repo.CreateWithID(ctx, user.User{
		ID:           4242,
		Name:         "ghost",
		Surname:      "Writer",
		Email:        "ghost@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4242), created.ID)

	// The sequence moves past explicitly chosen ids.
	next := insertUser(t, repo, "alice", nil)
	assert.Greater(t, next.ID, int64(4242))
}

func TestUserRepo_Update(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := NewUserRepository(store)

	created := insertUser(t, repo, "alice", nil)
	created.Surname = "Jones"
	companyID := int64(7)
	created.CompanyID = &companyID

	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Jones", updated.Surname)
	require.NotNil(t, updated.CompanyID)
	assert.Equal(t, int64(7), *updated.CompanyID)

	_, err = repo.Update(ctx, user.User{ID: 9999, Name: "nobody"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepo_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := NewUserRepository(store)

	created := insertUser(t, repo, "alice", nil)
	require.NoError(t, repo.Delete(ctx, created.ID))

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), user.ErrUserNotFound)
}

func TestUserRepo_ListByCompany_ExcludesDangling(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	userRepo := NewUserRepository(store)
	companyRepo := NewCompanyRepository(store)

	acme, err := companyRepo.Create(ctx, company.Company{Name: "Acme"})
	require.NoError(t, err)

	member := insertUser(t, userRepo, "alice", &acme.ID)
	dangling := int64(999)
	insertUser(t, userRepo, "bob", &dangling)
	insertUser(t, userRepo, "carol", nil)

	members, err := userRepo.ListByCompany(ctx, acme.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, member.ID, members[0].ID)

	// A deleted company has no members, whatever references remain.
	ghosts, err := userRepo.ListByCompany(ctx, dangling)
	require.NoError(t, err)
	assert.Empty(t, ghosts)
}

func TestUserRepo_ListAndCount(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := NewUserRepository(store)

	for _, name := range []string{"alice", "bob", "carol"} {
		insertUser(t, repo, name, nil)
	}

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	page, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "alice", page[0].Name)

	rest, err := repo.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
