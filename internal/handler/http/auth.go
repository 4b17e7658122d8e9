package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/codelever/company-registry-go/internal/domain/auth"
	"github.com/codelever/company-registry-go/internal/handler/http/response"
	"github.com/codelever/company-registry-go/internal/pkg/validator"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{authService: authService}
}

// Register implements AuthHandler.
func (a *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var registerReq auth.RegisterRequest

	if err := validator.DecodeJSONStrict(r.Body, &registerReq); err != nil {
		if errors.Is(err, validator.ErrMalformedBody) {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
		response.HandleError(w, err)
		return
	}

	if err := registerReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := a.authService.Register(r.Context(), registerReq); err != nil {
		slog.Error("Register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created successfully.", nil)
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := validator.DecodeJSONStrict(r.Body, &loginReq); err != nil {
		if errors.Is(err, validator.ErrMalformedBody) {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
		response.HandleError(w, err)
		return
	}

	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, tokenResponse)
}
