package service

import (
	"errors"
	"fmt"

	"msdsapi/internal/repository"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage failure")

	// ErrTransientInconsistency marks a blob and a database row that disagree after a
	// partial failure. It is logged, never returned to callers.
	ErrTransientInconsistency = errors.New("transient inconsistency")
)

// eventTransientInconsistency is the stable log event name for orphaned blobs.
const eventTransientInconsistency = "transient_inconsistency"

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// translate maps repository sentinels onto service sentinels. what names the addressed record.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, repository.ErrConflict):
		return fmt.Errorf("%w: %s already exists", ErrConflict, what)
	default:
		return err
	}
}
