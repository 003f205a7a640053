package store

import (
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrStorageFull    = errors.New("local storage is full")
	ErrStorageBlocked = errors.New("local storage is blocked")
	ErrStorage        = errors.New("local storage error")
)

type Kind int

const (
	KindUnknown Kind = iota
	KindFull
	KindBlocked
)

func (k Kind) sentinel() error {
	switch k {
	case KindFull:
		return ErrStorageFull
	case KindBlocked:
		return ErrStorageBlocked
	default:
		return ErrStorage
	}
}

// Remedy is the user-facing hint for a failure kind.
func (k Kind) Remedy() string {
	switch k {
	case KindFull:
		return "free up local storage space and try again"
	case KindBlocked:
		return "local storage is disabled or read-only; enable it and try again"
	default:
		return "try again"
	}
}

// StorageError is returned by every store for a failed read or write. It
// matches exactly one of ErrStorageFull, ErrStorageBlocked and ErrStorage.
type StorageError struct {
	Kind Kind
	Op   string
	Key  string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Key, e.Kind.sentinel(), e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{e.Kind.sentinel(), e.Err}
}

func wrap(op, key string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Kind: Classify(err), Op: op, Key: key, Err: err}
}

// Classify maps a driver error to a failure kind. SQLite result codes are
// checked first; the message is the fallback for errors that lost their type.
func Classify(err error) Kind {
	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) {
		switch sqlErr.Code() & 0xff {
		case sqlite3.SQLITE_FULL:
			return KindFull
		case sqlite3.SQLITE_READONLY, sqlite3.SQLITE_PERM, sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_AUTH:
			return KindBlocked
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "database or disk is full"), strings.Contains(msg, "quota"):
		return KindFull
	case strings.Contains(msg, "readonly"), strings.Contains(msg, "read-only"),
		strings.Contains(msg, "permission denied"), strings.Contains(msg, "access denied"),
		strings.Contains(msg, "unable to open database"):
		return KindBlocked
	}
	return KindUnknown
}
