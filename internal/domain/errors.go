package domain

import "errors"

var (
	// ErrNotFound: an explicitly requested hotel is absent or inactive.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCatalog: no active hotel exists at all.
	ErrEmptyCatalog = errors.New("no active hotels")
	// ErrAccessDenied: a remote feed refused our credentials.
	ErrAccessDenied = errors.New("access denied")
)
