package listing

import (
	"fmt"

	"spacebook/pkg/model"
)

func booking(id string, status model.Status, paid bool) *model.Booking {
	return &model.Booking{
		ID:              id,
		UniqueRequestID: "REQ-" + id,
		Status:          status,
		PaidToHost:      paid,
	}
}

func withPlace(b *model.Booking, title, address, owner string) *model.Booking {
	b.Place = &model.Place{
		ID:       "place-" + b.ID,
		Title:    title,
		Address:  address,
		Currency: "UZS",
		Owner:    &model.UserRef{ID: "owner-" + b.ID, Name: owner},
	}
	return b
}

func withClient(b *model.Booking, first, last string) *model.Booking {
	b.User = &model.UserRef{ID: "client-" + b.ID, FirstName: first, LastName: last}
	return b
}

func manyBookings(n int) []*model.Booking {
	out := make([]*model.Booking, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, booking(fmt.Sprintf("%02d", i), model.StatusPending, false))
	}
	return out
}

func ids(bookings []*model.Booking) []string {
	out := make([]string, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID)
	}
	return out
}
