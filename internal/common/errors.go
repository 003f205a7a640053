package common

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// Token errors, shared by the client session and the server interceptor.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
