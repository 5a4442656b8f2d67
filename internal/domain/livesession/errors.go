package livesession

import (
	goerrors "errors"

	"streetside/internal/shared/errors"
)

// NotApprovedError indicates a non-approved vendor attempted to go live.
type NotApprovedError struct {
	*errors.AppError
}

// NewNotApprovedError creates a not approved error
func NewNotApprovedError(vendorSID string) *NotApprovedError {
	return &NotApprovedError{
		AppError: errors.NewForbiddenError("vendor is not approved to go live", vendorSID),
	}
}

// Unwrap exposes the underlying AppError to errors.As chains.
func (e *NotApprovedError) Unwrap() error {
	return e.AppError
}

// IsNotApproved reports whether err is a not approved error.
func IsNotApproved(err error) bool {
	var e *NotApprovedError
	return goerrors.As(err, &e)
}

// AlreadyActiveError indicates the vendor already has an active session.
type AlreadyActiveError struct {
	*errors.AppError
}

// NewAlreadyActiveError creates a session already active error
func NewAlreadyActiveError(vendorSID string) *AlreadyActiveError {
	return &AlreadyActiveError{
		AppError: errors.NewConflictError("vendor already has an active live session", vendorSID),
	}
}

// Unwrap exposes the underlying AppError to errors.As chains.
func (e *AlreadyActiveError) Unwrap() error {
	return e.AppError
}

// IsAlreadyActive reports whether err is a session already active error.
func IsAlreadyActive(err error) bool {
	var e *AlreadyActiveError
	return goerrors.As(err, &e)
}

// NoActiveSessionError indicates there is no active session to stop.
type NoActiveSessionError struct {
	*errors.AppError
}

// NewNoActiveSessionError creates a no active session error
func NewNoActiveSessionError(vendorSID string) *NoActiveSessionError {
	return &NoActiveSessionError{
		AppError: errors.NewConflictError("vendor has no active live session", vendorSID),
	}
}

// Unwrap exposes the underlying AppError to errors.As chains.
func (e *NoActiveSessionError) Unwrap() error {
	return e.AppError
}

// IsNoActiveSession reports whether err is a no active session error.
func IsNoActiveSession(err error) bool {
	var e *NoActiveSessionError
	return goerrors.As(err, &e)
}

// NotFoundError indicates the live session does not exist.
type NotFoundError struct {
	*errors.AppError
}

// NewNotFoundError creates a live session not found error
func NewNotFoundError(sid string) *NotFoundError {
	return &NotFoundError{
		AppError: errors.NewNotFoundError("live session not found", sid),
	}
}

// Unwrap exposes the underlying AppError to errors.As chains.
func (e *NotFoundError) Unwrap() error {
	return e.AppError
}

// IsNotFound reports whether err is a live session not found error.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return goerrors.As(err, &e)
}
