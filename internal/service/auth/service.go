package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/codelever/company-registry-go/internal/domain/auth"
	"github.com/codelever/company-registry-go/internal/domain/user"
	"github.com/codelever/company-registry-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register implements auth.AuthService. Registered users always start
// without a company.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) error {
	_, err := a.userRepo.GetByName(ctx, req.Name)
	if err == nil {
		return user.ErrUserNameExists
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return fmt.Errorf("failed to check user name: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.User{
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		PasswordHash: string(hash),
		CompanyID:    nil,
	}
	if _, err := a.userRepo.Create(ctx, newUser); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Login implements auth.AuthService. Unknown name and wrong password are
// indistinguishable to the caller.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	userData, err := a.userRepo.GetByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by name: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{AccessToken: token, ExpiresAt: expiresAt}, nil
}
