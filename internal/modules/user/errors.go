package user

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrNoFields           = errors.New("no fields to update")
	ErrSelfDelete         = errors.New("cannot delete your own account")
	ErrWrongPassword      = errors.New("current password is incorrect")
)
