package repository

import (
	"errors"
	"fmt"

	"fieldrep/internal/model"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDoctorNotFound  = errors.New("doctor entry not found")
	ErrOwnerRequired   = errors.New("record has no owner")
	ErrUnknownKind     = errors.New("unknown record kind")
)

// RemoteError reports a failed fetch or create against the record store.
// It is never retried here; callers decide whether to re-invoke.
type RemoteError struct {
	Op   string
	Kind model.Kind
	Err  error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func remoteErr(op string, kind model.Kind, err error) error {
	return &RemoteError{Op: op, Kind: kind, Err: err}
}

// IsRemote reports whether err carries a RemoteError.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
