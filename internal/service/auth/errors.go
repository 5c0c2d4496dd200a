package auth

import "errors"

// Token errors returned by JWTService.ValidateToken and the auth middleware.
var (
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrExpiredToken     = errors.New("authentication token has expired")
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken means the request carried no Authorization header.
	ErrMissingToken = errors.New("authentication token is missing")
)
