package auth

import "errors"

var (
	ErrMissingCredential     = errors.New("no token provided")
	ErrInvalidCredential     = errors.New("invalid or expired token")
	ErrInsufficientPrivilege = errors.New("insufficient privilege")
	ErrUnknownIdentity       = errors.New("user not found")
	ErrBadSecret             = errors.New("invalid password")
)
