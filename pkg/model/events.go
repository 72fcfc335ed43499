package model

import "time"

// BookingStatusChanged is published after a host or agent moved a booking to
// a new status through the dashboard.
type BookingStatusChanged struct {
	BookingID string    `json:"booking_id"`
	PlaceID   string    `json:"place_id,omitempty"`
	Status    Status    `json:"status"`
	Previous  Status    `json:"previous,omitempty"`
	ChangedBy Viewer    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

type BookingCleanupCompleted struct {
	DeletedCount int       `json:"deleted_count"`
	Message      string    `json:"message"`
	RequestedBy  Viewer    `json:"requested_by"`
	CompletedAt  time.Time `json:"completed_at"`
}
