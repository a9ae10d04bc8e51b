package auth

import "errors"

// Auth domain errors
var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrInvalidToken       = errors.New("invalid or missing token")
	ErrOTPRequired        = errors.New("a one-time code is required for admin login")
	ErrInvalidOTP         = errors.New("invalid or expired one-time code")
)
