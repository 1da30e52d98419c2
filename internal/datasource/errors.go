package datasource

import (
	"errors"
	"fmt"
)

var ErrCreationFailed = errors.New("creation failed")

// SyncError is a transport failure reported by the store.
type SyncError struct {
	Op   string
	Path string
	Err  error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// DecodeError is a stored record that does not map to its entity.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return e.Path + " not found"
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsSync(err error) bool {
	var se *SyncError
	return errors.As(err, &se)
}
