package models

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUserExists   = errors.New("user already exists")

	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrForbidden      = errors.New("access forbidden")
	ErrSelfRoleChange = errors.New("cannot change own role")
	ErrSelfDelete     = errors.New("cannot delete own account")

	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")
	ErrRoleNotFound = errors.New("role not found")
)
