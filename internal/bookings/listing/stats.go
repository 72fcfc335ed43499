package listing

import "spacebook/pkg/model"

// Stats is the per-bucket count shown above a viewer's bookings list.
type Stats struct {
	Pending         int `json:"pending"`
	Approved        int `json:"approved"`
	Rejected        int `json:"rejected"`
	PaidToHostCount int `json:"paidToHostCount"`
	// Unknown counts bookings whose status is not one of the four known
	// values, so Total always equals the number of bookings.
	Unknown int `json:"unknown"`
	Total   int `json:"total"`
}

// CalculateStats buckets bookings by status for the given viewer role.
// Selected bookings count as pending. For hosts and agents an approved
// booking already paid out to the host moves to PaidToHostCount.
func CalculateStats(bookings []*model.Booking, role model.Role) Stats {
	stats := Stats{Total: len(bookings)}

	for _, b := range bookings {
		if b == nil {
			stats.Unknown++
			continue
		}
		switch b.Status {
		case model.StatusPending, model.StatusSelected:
			stats.Pending++
		case model.StatusApproved:
			if role != model.RoleClient && b.PaidToHost {
				stats.PaidToHostCount++
			} else {
				stats.Approved++
			}
		case model.StatusRejected:
			stats.Rejected++
		default:
			stats.Unknown++
		}
	}

	return stats
}
