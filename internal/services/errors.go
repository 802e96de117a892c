package services

import "errors"

// Sentinel errors shared across the membership, invitation and access
// services. Handlers translate these to HTTP statuses; everything else is
// surfaced as a generic server error.
var (
	// ErrForbidden means the caller's role lacks the required capability.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidRole means a role outside the invitable set was requested.
	ErrInvalidRole = errors.New("invalid role")

	// ErrDuplicateMembership means the (project, user) pair already exists.
	ErrDuplicateMembership = errors.New("user is already a member of this project")

	// ErrCannotRemoveOwner protects the single-owner invariant.
	ErrCannotRemoveOwner = errors.New("project owner cannot be removed")

	// ErrNotFound is returned for missing projects/tasks, not for missing
	// memberships or invite tokens (those soft-fail).
	ErrNotFound = errors.New("not found")
)
