package listing

import (
	"strings"

	"spacebook/pkg/model"
	"spacebook/pkg/sanitizer"
)

const (
	FilterAll        = "all"
	FilterPending    = "pending"
	FilterApproved   = "approved"
	FilterPaidToHost = "paid_to_host"
	FilterPaid       = "paid"
)

// Filter returns the bookings matching both the status filter token and the
// free-text search term. The input slice is not modified.
func Filter(bookings []*model.Booking, role model.Role, statusFilter, searchTerm string) []*model.Booking {
	out := make([]*model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b == nil {
			continue
		}
		if !MatchesStatus(b, role, statusFilter) {
			continue
		}
		if !MatchesSearch(b, role, searchTerm) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func MatchesStatus(b *model.Booking, role model.Role, statusFilter string) bool {
	switch statusFilter {
	case "", FilterAll:
		return true
	case FilterPending:
		return b.Status.IsAwaitingDecision()
	case FilterPaidToHost, FilterPaid:
		return b.Status == model.StatusApproved && b.PaidToHost
	case FilterApproved:
		if b.Status != model.StatusApproved {
			return false
		}
		return role == model.RoleClient || !b.PaidToHost
	default:
		return string(b.Status) == statusFilter
	}
}

// MatchesSearch reports whether any field visible to the role contains the
// search term, ignoring case. A blank term matches everything.
func MatchesSearch(b *model.Booking, role model.Role, searchTerm string) bool {
	term := sanitizer.NormalizeSearchTerm(searchTerm)
	if term == "" {
		return true
	}
	for _, field := range searchableFields(b, role) {
		if field != "" && strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func searchableFields(b *model.Booking, role model.Role) []string {
	fields := []string{b.PlaceTitle(), b.PlaceAddress()}

	switch role {
	case model.RoleHost:
		fields = append(fields, b.UniqueRequestID, b.ClientName())
	case model.RoleAgent:
		fields = append(fields, b.UniqueRequestID, b.ClientName(), b.HostName())
	case model.RoleClient:
		fields = append(fields, b.HostName())
	}
	return fields
}
