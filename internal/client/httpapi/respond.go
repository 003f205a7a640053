package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/blueprint/internal/client/builder"
	"github.com/dmitrijs2005/blueprint/internal/client/client"
	"github.com/dmitrijs2005/blueprint/internal/client/seed"
	"github.com/dmitrijs2005/blueprint/internal/client/store"
	"github.com/dmitrijs2005/blueprint/internal/common"
)

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

const (
	CodeBadRequest          = "BAD_REQUEST"
	CodeNotFound            = "NOT_FOUND"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeAuthRequired        = "AUTHENTICATION_REQUIRED"
	CodeBackendNotReady     = "BACKEND_NOT_READY"
	CodeRemoteRejected      = "REMOTE_REJECTED"
	CodeNotSupported        = "NOT_SUPPORTED"
	CodeLocalStorageFull    = "LOCAL_STORAGE_FULL"
	CodeLocalStorageBlocked = "LOCAL_STORAGE_BLOCKED"
	CodeLocalStorageError   = "LOCAL_STORAGE_ERROR"
	CodeInternal            = "INTERNAL_ERROR"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

func respondError(w http.ResponseWriter, status int, e apiError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(apiResponse{Success: false, Error: &e})
}

// classify maps a service error to its HTTP status and error body.
func classify(err error) (int, apiError) {
	var (
		ve *builder.ValidationError
		re *client.RejectedError
		se *store.StorageError
	)

	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, apiError{Code: CodeValidationFailed, Message: ve.Error(), Field: ve.Field}
	case errors.Is(err, client.ErrAuthenticationRequired):
		return http.StatusUnauthorized, apiError{Code: CodeAuthRequired, Message: "sign in to continue"}
	case errors.Is(err, client.ErrUnavailable):
		return http.StatusServiceUnavailable, apiError{Code: CodeBackendNotReady, Message: "the backend is not reachable right now"}
	case errors.As(err, &re):
		return http.StatusConflict, apiError{Code: CodeRemoteRejected, Message: re.Message}
	case errors.Is(err, seed.ErrAlreadyPurchased):
		return http.StatusConflict, apiError{Code: CodeRemoteRejected, Message: err.Error()}
	case errors.Is(err, client.ErrNotSupported):
		return http.StatusNotImplemented, apiError{Code: CodeNotSupported, Message: err.Error()}
	case errors.As(err, &se):
		switch se.Kind {
		case store.KindFull:
			return http.StatusInsufficientStorage, apiError{Code: CodeLocalStorageFull, Message: se.Kind.Remedy()}
		case store.KindBlocked:
			return http.StatusLocked, apiError{Code: CodeLocalStorageBlocked, Message: se.Kind.Remedy()}
		default:
			return http.StatusInternalServerError, apiError{Code: CodeLocalStorageError, Message: se.Kind.Remedy()}
		}
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, apiError{Code: CodeNotFound, Message: err.Error()}
	}
	return http.StatusInternalServerError, apiError{Code: CodeInternal, Message: "internal error"}
}
