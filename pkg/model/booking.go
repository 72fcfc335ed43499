package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusSelected Status = "selected"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsAwaitingDecision reports whether the booking is still open for a host
// decision. Selected is a temporary sub-state of pending.
func (s Status) IsAwaitingDecision() bool {
	return s == StatusPending || s == StatusSelected
}

type Role string

const (
	RoleClient Role = "client"
	RoleHost   Role = "host"
	RoleAgent  Role = "agent"
)

// Viewer is the authenticated caller a dashboard is derived for.
type Viewer struct {
	UserID string `json:"user_id" validate:"required,max=64"`
	Role   Role   `json:"role" validate:"required,oneof=client host agent"`
}

type TimeSlot struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type UserRef struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// DisplayName prefers the explicit name and falls back to first + last.
func (u *UserRef) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type Place struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Address  string   `json:"address"`
	Currency string   `json:"currency"`
	Owner    *UserRef `json:"owner,omitempty"`
}

// Decimal keeps a monetary amount exactly as the bookings API sent it. The
// API serializes DECIMAL columns as strings, but plain numbers are accepted too.
type Decimal string

func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Decimal(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = Decimal(n.String())
	return nil
}

// Float parses the amount. Unparseable or empty amounts yield 0 and false.
func (d Decimal) Float() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(d)), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

type Booking struct {
	ID              string     `json:"id"`
	UniqueRequestID string     `json:"uniqueRequestId"`
	Status          Status     `json:"status"`
	PaidToHost      bool       `json:"paidToHost"`
	CreatedAt       string     `json:"createdAt"`
	CheckInDate     string     `json:"checkInDate"`
	CheckOutDate    string     `json:"checkOutDate"`
	TotalPrice      Decimal    `json:"totalPrice"`
	TimeSlots       []TimeSlot `json:"timeSlots"`
	Place           *Place     `json:"place,omitempty"`
	User            *UserRef   `json:"user,omitempty"`
}

func (b *Booking) PlaceTitle() string {
	if b.Place == nil {
		return ""
	}
	return b.Place.Title
}

func (b *Booking) PlaceAddress() string {
	if b.Place == nil {
		return ""
	}
	return b.Place.Address
}

func (b *Booking) PlaceID() string {
	if b.Place == nil {
		return ""
	}
	return b.Place.ID
}

func (b *Booking) Currency() string {
	if b.Place == nil {
		return ""
	}
	return b.Place.Currency
}

func (b *Booking) ClientName() string {
	return b.User.DisplayName()
}

func (b *Booking) HostName() string {
	if b.Place == nil {
		return ""
	}
	return b.Place.Owner.DisplayName()
}

// RawField returns the string form of a top-level field addressed by its
// wire name. Unknown names yield "".
func (b *Booking) RawField(name string) string {
	switch name {
	case "id":
		return b.ID
	case "uniqueRequestId":
		return b.UniqueRequestID
	case "status":
		return string(b.Status)
	case "paidToHost":
		return strconv.FormatBool(b.PaidToHost)
	case "createdAt":
		return b.CreatedAt
	case "checkInDate":
		return b.CheckInDate
	case "checkOutDate":
		return b.CheckOutDate
	case "totalPrice":
		return string(b.TotalPrice)
	}
	return ""
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate accepts the timestamp shapes the bookings API emits.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type StatusUpdate struct {
	Status Status `json:"status" validate:"required,oneof=pending selected approved rejected"`
}

type CleanupResult struct {
	Success      bool   `json:"success"`
	DeletedCount int    `json:"deletedCount"`
	Message      string `json:"message"`
}
