package entity

import "errors"

var (
	// ErrNotFound covers absent identities, profiles, resources and roles.
	ErrNotFound = errors.New("not found")

	// ErrSelfFollow rejects a follow edge whose endpoints are the same
	// identity.
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrDuplicateEdge rejects a follow edge that already exists.
	ErrDuplicateEdge = errors.New("follow edge already exists")

	// ErrDuplicateAssignment rejects assigning a role an identity already
	// holds.
	ErrDuplicateAssignment = errors.New("role already assigned")

	// ErrRoleNotFound rejects assigning a role name that is not registered.
	// Roles are never auto-created by the store.
	ErrRoleNotFound = errors.New("role not found")

	// ErrDuplicateUsername and ErrDuplicateEmail reject registration
	// against taken identifiers.
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")

	// ErrInactiveIdentity marks a caller that has been deactivated.
	// Inactive identities are denied all actions.
	ErrInactiveIdentity = errors.New("identity is deactivated")

	// ErrValidation marks malformed input rejected before it reaches a
	// store: bad usernames, weak passwords, malformed link URLs.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned by login for any mismatch, without
	// distinguishing unknown identity from wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrStoreUnavailable wraps transient store failures. It is never
	// converted into an Allow and never retried below the transport layer.
	ErrStoreUnavailable = errors.New("store unavailable")
)
