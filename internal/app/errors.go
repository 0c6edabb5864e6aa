// Package app holds the application services and business logic.
package app

import (
	"errors"
	"fmt"

	"petdiary/internal/domain"
)

var (
	// ErrUnauthorized indicates a missing or wrong access key.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrServerMisconfigured indicates that a required server-side secret is absent.
	ErrServerMisconfigured = errors.New("server configuration error")
	// ErrValidation indicates a malformed or incomplete payload.
	ErrValidation = errors.New("invalid request")
	// ErrUpstream indicates that the text-generation service failed.
	ErrUpstream = errors.New("upstream failure")
	// ErrPersistence indicates that the record store failed.
	ErrPersistence = errors.New("database error")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// storeErr tags repository failures as persistence errors. Not-found passes
// through untouched so callers can tell it apart.
func storeErr(err error) error {
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
