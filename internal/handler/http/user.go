package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/codelever/company-registry-go/internal/domain/user"
	"github.com/codelever/company-registry-go/internal/handler/http/response"
	"github.com/codelever/company-registry-go/internal/pkg/validator"
)

type UserHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// Create implements UserHandler.
func (u *UserHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq user.CreateUserRequest

	if err := validator.DecodeJSONStrict(r.Body, &createReq); err != nil {
		if errors.Is(err, validator.ErrMalformedBody) {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
		response.HandleError(w, err)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := u.userService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created successfully", created)
}

// GetByID implements UserHandler.
func (u *UserHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "userID")
	if !ok {
		response.HandleError(w, user.ErrUserNotFound)
		return
	}

	found, err := u.userService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements UserHandler.
func (u *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	users, total, err := u.userService.List(r.Context(), page, limit)
	if err != nil {
		slog.Error("List users service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, users, &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages(total, limit),
	})
}

// Update implements UserHandler. This is the reassignment endpoint; which
// parts of the patch take effect depends on the user's assignment state.
func (u *UserHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "userID")
	if !ok {
		response.HandleError(w, user.ErrUserNotFound)
		return
	}

	var updateReq user.UpdateUserRequest
	if err := validator.DecodeJSONStrict(r.Body, &updateReq); err != nil {
		if errors.Is(err, validator.ErrMalformedBody) {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
		response.HandleError(w, err)
		return
	}

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := u.userService.Update(r.Context(), id, updateReq)
	if err != nil {
		slog.Error("Update user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// Delete implements UserHandler.
func (u *UserHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "userID")
	if !ok {
		response.HandleError(w, user.ErrUserNotFound)
		return
	}

	if err := u.userService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deleted.", nil)
}
