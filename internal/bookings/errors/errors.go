package errors

import "errors"

var (
	ErrStatusChangeForbidden = errors.New("only hosts and agents can change booking status")

	ErrCleanupForbidden = errors.New("only agents can clean up expired bookings")

	ErrInvalidViewer = errors.New("viewer identity is missing or invalid")

	ErrBookingsUnavailable = errors.New("failed to load bookings")
)

var ErrViewStateNotFound = errors.New("view state not found")
