package auth

import "errors"

var (
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrEmployeeProfileRequired = errors.New("no employee profile is linked to this account")
	ErrCurrentPasswordMismatch = errors.New("current password is incorrect")
)
