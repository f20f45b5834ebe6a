package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// StorageUnavailableError means the store could not be reached or refused the
// schema. Callers may retry the operation later.
type StorageUnavailableError struct {
	Op  string
	Err error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable during %s: %v", e.Op, e.Err)
}

func (e *StorageUnavailableError) Unwrap() error { return e.Err }

// StorageWriteError means the store rejected the data itself (constraint or
// value out of range). Retrying the same payload will fail again.
type StorageWriteError struct {
	Op  string
	Err error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("storage rejected %s: %v", e.Op, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

// SQLSTATE classes that describe bad data rather than an unhealthy store
var writeErrorClasses = map[string]bool{
	"22": true, // data exception
	"23": true, // integrity constraint violation
}

// duplicate_database
const codeDuplicateDatabase = "42P04"

func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 && writeErrorClasses[pgErr.Code[:2]] {
		return &StorageWriteError{Op: op, Err: err}
	}
	return &StorageUnavailableError{Op: op, Err: err}
}
