package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable            = errors.New("backend unavailable")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrNotSupported           = errors.New("operation not supported by backend")
)

// RejectedError is a refusal reported by a reachable backend.
type RejectedError struct {
	Op      string
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected: %s", e.Op, e.Message)
}
