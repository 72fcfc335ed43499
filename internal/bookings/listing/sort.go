package listing

import (
	"cmp"
	"sort"
	"strings"

	"spacebook/pkg/model"
)

const (
	SortByCreatedAt   = "createdAt"
	SortByCheckInDate = "checkInDate"
	SortByTotalPrice  = "totalPrice"
	SortByPlace       = "place"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Sort returns a newly ordered copy of bookings. Any order other than "asc"
// sorts descending. Unknown fields are compared by their raw string value.
func Sort(bookings []*model.Booking, sortBy, sortOrder string) []*model.Booking {
	out := make([]*model.Booking, len(bookings))
	copy(out, bookings)

	compare := comparatorFor(sortBy)
	ascending := strings.EqualFold(sortOrder, OrderAsc)

	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j])
		if ascending {
			return c < 0
		}
		return c > 0
	})
	return out
}

type comparator func(a, b *model.Booking) int

func comparatorFor(sortBy string) comparator {
	switch sortBy {
	case SortByCreatedAt:
		return compareDates(func(b *model.Booking) string { return b.CreatedAt })
	case SortByCheckInDate:
		return compareDates(func(b *model.Booking) string { return b.CheckInDate })
	case SortByTotalPrice:
		return func(a, b *model.Booking) int {
			return cmp.Compare(price(a), price(b))
		}
	case SortByPlace:
		return func(a, b *model.Booking) int {
			return strings.Compare(safe(a).PlaceTitle(), safe(b).PlaceTitle())
		}
	default:
		return func(a, b *model.Booking) int {
			return strings.Compare(safe(a).RawField(sortBy), safe(b).RawField(sortBy))
		}
	}
}

// Unparseable dates sort as the zero time.
func compareDates(field func(*model.Booking) string) comparator {
	return func(a, b *model.Booking) int {
		ta, _ := model.ParseDate(field(safe(a)))
		tb, _ := model.ParseDate(field(safe(b)))
		return ta.Compare(tb)
	}
}

func price(b *model.Booking) float64 {
	f, _ := safe(b).TotalPrice.Float()
	return f
}

var emptyBooking = &model.Booking{}

func safe(b *model.Booking) *model.Booking {
	if b == nil {
		return emptyBooking
	}
	return b
}
