package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codelever/company-registry-go/internal/pkg/jwt"
	"github.com/codelever/company-registry-go/internal/repository/sqlite"
	authService "github.com/codelever/company-registry-go/internal/service/auth"
	companyService "github.com/codelever/company-registry-go/internal/service/company"
	userService "github.com/codelever/company-registry-go/internal/service/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		TotalItems int64 `json:"total_items"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.ApplyMigrations())

	userRepo := sqlite.NewUserRepository(store)
	companyRepo := sqlite.NewCompanyRepository(store)

	jwtService := jwt.NewJWTService("test-secret-key", "1h")

	authSvc := authService.NewAuthService(userRepo, jwtService)
	userSvc := userService.NewUserService(userRepo, companyRepo)
	companySvc := companyService.NewCompanyService(companyRepo, userRepo)

	return NewRouter(
		jwtService,
		NewAuthHandler(authSvc),
		NewUserHandler(userSvc),
		NewCompanyHandler(companySvc),
	)
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func registerAndLogin(t *testing.T, router http.Handler, name string) string {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"surname":"Tester","email":"%s@example.com","password":"password123"}`, name, name)
	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	return login(t, router, name, "password123")
}

func login(t *testing.T, router http.Handler, name, password string) string {
	t.Helper()

	rec, env := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "",
		fmt.Sprintf(`{"name":%q,"password":%q}`, name, password))
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func dataID(t *testing.T, env envelope) int64 {
	t.Helper()

	var data struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotZero(t, data.ID)
	return data.ID
}

func TestRouter_RegisterAndLogin(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "",
		`{"name":"bob","surname":"Tester","email":"bob@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)

	// Same name again conflicts.
	rec, env = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "",
		`{"name":"bob","surname":"Other","email":"other@example.com","password":"password123"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)

	token := login(t, router, "bob", "password123")
	assert.NotEmpty(t, token)

	rec, env = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "",
		`{"name":"bob","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

func TestRouter_RequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/v1/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/companies", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RegisterValidation(t *testing.T) {
	router := newTestRouter(t)

	// Missing fields come back per field.
	rec, env := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "",
		`{"name":"bob"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "surname")
	assert.Contains(t, env.Error.Details, "email")
	assert.Contains(t, env.Error.Details, "password")

	// Unknown fields are rejected rather than silently dropped.
	rec, env = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "",
		`{"name":"bob","surname":"T","email":"bob@example.com","password":"password123","nickname":"bobby"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "nickname")

	// Not JSON at all.
	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_AuthRateLimit(t *testing.T) {
	router := newTestRouter(t)

	var last int
	for i := 0; i < 11; i++ {
		rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "",
			`{"name":"nobody","password":"wrong"}`)
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestRouter_CompanyAndUserLifecycle(t *testing.T) {
	router := newTestRouter(t)

	bobToken := registerAndLogin(t, router, "bob")

	// Bob founds Acme. Founding does not associate him with it.
	rec, env := doJSON(t, router, http.MethodPost, "/api/v1/companies", bobToken,
		`{"name":"Acme"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	acmeID := dataID(t, env)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/companies", bobToken,
		`{"name":"Acme"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "duplicate company name")

	rec, env = doJSON(t, router, http.MethodPost, "/api/v1/companies", bobToken,
		`{"name":"Globex"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	globexID := dataID(t, env)

	// Carol joins Acme at creation time.
	rec, env = doJSON(t, router, http.MethodPost, "/api/v1/users", bobToken,
		fmt.Sprintf(`{"name":"carol","surname":"Member","email":"carol@example.com","password":"password123","company_id":%d}`, acmeID))
	require.Equal(t, http.StatusCreated, rec.Code)
	carolID := dataID(t, env)

	// Carol, already placed, cannot found a company of her own.
	carolToken := login(t, router, "carol", "password123")
	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/companies", carolToken,
		`{"name":"Carol Inc"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Acme's member list is derived from live references.
	rec, env = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/companies/%d", acmeID), bobToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var acme struct {
		Name  string `json:"name"`
		Users []struct {
			Name string `json:"name"`
		} `json:"users"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &acme))
	require.Len(t, acme.Users, 1)
	assert.Equal(t, "carol", acme.Users[0].Name)

	// Re-sending her current assignment is still a conflict.
	rec, _ = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", carolID), bobToken,
		fmt.Sprintf(`{"company_id":%d}`, acmeID))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Moving her to Globex detaches her and tears Acme down.
	rec, env = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", carolID), bobToken,
		fmt.Sprintf(`{"company_id":%d}`, globexID))
	require.Equal(t, http.StatusOK, rec.Code)
	var carol struct {
		Company *struct {
			ID int64 `json:"id"`
		} `json:"company"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &carol))
	assert.Nil(t, carol.Company)

	rec, _ = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/companies/%d", acmeID), bobToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/companies/%d", globexID), bobToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Cleanup endpoints answer with plain confirmations.
	rec, env = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/companies/%d", globexID), bobToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Company deleted", env.Message)

	rec, env = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", carolID), bobToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted.", env.Message)

	rec, _ = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", carolID), bobToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_UserListPagination(t *testing.T) {
	router := newTestRouter(t)

	token := registerAndLogin(t, router, "bob")

	for _, name := range []string{"alice", "carol", "dave"} {
		rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/users", token,
			fmt.Sprintf(`{"name":%q,"surname":"Tester","email":"%s@example.com","password":"password123"}`, name, name))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	// Four users total, bob included.
	rec, env := doJSON(t, router, http.MethodGet, "/api/v1/users?page=1&limit=3", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(4), env.Meta.TotalItems)
	assert.Equal(t, 2, env.Meta.TotalPages)

	var users []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.Len(t, users, 3)
}
