package user

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserNameExists = errors.New("a user with that name already exists")
)
