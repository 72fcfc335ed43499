package service

import (
	"spacebook/internal/bookings/listing"
	"spacebook/pkg/model"
)

// Row is one booking as the dashboard renders it.
type Row struct {
	Booking           *model.Booking   `json:"booking"`
	DisplayPrice      string           `json:"displayPrice,omitempty"`
	CounterpartName   string           `json:"counterpartName,omitempty"`
	CounterpartPhone  string           `json:"counterpartPhone,omitempty"`
	CompetingBookings []*model.Booking `json:"competingBookings,omitempty"`
}

type Dashboard struct {
	Stats       listing.Stats     `json:"stats"`
	Page        listing.Page[Row] `json:"page"`
	View        model.ViewState   `json:"view"`
	Preferences model.Preferences `json:"preferences"`
	Warning     string            `json:"warning,omitempty"`
}
