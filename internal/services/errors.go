package services

import "errors"

// Service-level verdicts. Handlers map these onto HTTP statuses; the bodies
// stay generic so denial responses never explain themselves.
var (
	// ErrForbidden: authenticated but outside the caller's authority
	// (wrong role, or targeting a subject the caller does not own).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound: the record does not exist within the caller's scope.
	// Ownership mismatches surface as this same error.
	ErrNotFound = errors.New("not found")

	// ErrConflict: a create operation targeting an identity that already
	// exists.
	ErrConflict = errors.New("already exists")

	// ErrBadRequest: structurally invalid input, e.g. a grant for an
	// unregistered resource tag or a non-staff subject.
	ErrBadRequest = errors.New("bad request")
)
