package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("month entry not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// StorageError wraps any failure reading or writing the persisted document.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// WrapStorage returns nil for a nil err.
func WrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}

	return &StorageError{Op: op, Err: err}
}
