package model

import "time"

// ViewState holds the list selections a viewer last used on the bookings
// dashboard. It is persisted per (user, role).
type ViewState struct {
	ID           string    `json:"-" bson:"_id,omitempty"`
	UserID       string    `json:"user_id" bson:"user_id"`
	Role         Role      `json:"role" bson:"role"`
	StatusFilter string    `json:"status_filter" bson:"status_filter"`
	SearchTerm   string    `json:"search_term" bson:"search_term"`
	SortBy       string    `json:"sort_by" bson:"sort_by"`
	SortOrder    string    `json:"sort_order" bson:"sort_order"`
	CurrentPage  int       `json:"current_page" bson:"current_page"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

func DefaultViewState(viewer Viewer) ViewState {
	return ViewState{
		UserID:       viewer.UserID,
		Role:         viewer.Role,
		StatusFilter: "all",
		SortBy:       "createdAt",
		SortOrder:    "desc",
		CurrentPage:  1,
	}
}
