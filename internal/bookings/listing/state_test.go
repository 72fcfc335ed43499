package listing

import (
	"testing"

	"spacebook/pkg/model"
)

func ptr[T any](v T) *T { return &v }

func TestApply_ResetsPageOnSelectionChange(t *testing.T) {
	base := model.ViewState{
		StatusFilter: "all",
		SortBy:       SortByCreatedAt,
		SortOrder:    OrderDesc,
		CurrentPage:  2,
	}

	tests := []struct {
		name     string
		update   Update
		wantPage int
	}{
		{name: "status filter change", update: Update{StatusFilter: ptr("pending")}, wantPage: 1},
		{name: "search change", update: Update{SearchTerm: ptr("loft")}, wantPage: 1},
		{name: "sort field change", update: Update{SortBy: ptr(SortByTotalPrice)}, wantPage: 1},
		{name: "sort order change", update: Update{SortOrder: ptr(OrderAsc)}, wantPage: 1},
		{name: "filter change beats explicit page", update: Update{StatusFilter: ptr("approved"), Page: ptr(3)}, wantPage: 1},
		{name: "same filter keeps page", update: Update{StatusFilter: ptr("all")}, wantPage: 2},
		{name: "whitespace-only search keeps page", update: Update{SearchTerm: ptr("   ")}, wantPage: 2},
		{name: "inner spacing is a new search", update: Update{SearchTerm: ptr("room  12")}, wantPage: 1},
		{name: "page only", update: Update{Page: ptr(3)}, wantPage: 3},
		{name: "invalid page clamps", update: Update{Page: ptr(-4)}, wantPage: 1},
		{name: "no change", update: Update{}, wantPage: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(base, tt.update)
			if got.CurrentPage != tt.wantPage {
				t.Errorf("CurrentPage = %d, want %d", got.CurrentPage, tt.wantPage)
			}
		})
	}
}

func TestApply_ResetEvenWhenPageStillValid(t *testing.T) {
	bookings := manyBookings(30)
	state := model.ViewState{StatusFilter: "all", SortBy: SortByCreatedAt, SortOrder: OrderDesc, CurrentPage: 2}

	next := Apply(state, Update{StatusFilter: ptr("pending")})
	result := Run(bookings, model.RoleHost, QueryFromState(next, 10))

	if result.Page.TotalPages < 2 {
		t.Fatalf("test setup: expected page 2 to remain valid, got %d pages", result.Page.TotalPages)
	}
	if next.CurrentPage != 1 || result.Page.CurrentPage != 1 {
		t.Errorf("expected reset to page 1, got state=%d page=%d", next.CurrentPage, result.Page.CurrentPage)
	}
}

func TestApply_NormalizesSearchTerm(t *testing.T) {
	got := Apply(model.ViewState{CurrentPage: 1}, Update{SearchTerm: ptr("  blue   room ")})
	if got.SearchTerm != "blue room" {
		t.Errorf("SearchTerm = %q, want %q", got.SearchTerm, "blue room")
	}
}

func TestRun(t *testing.T) {
	bookings := manyBookings(25)
	bookings[0].Status = model.StatusApproved
	bookings[1].Status = model.StatusRejected

	res := Run(bookings, model.RoleHost, Query{
		StatusFilter: FilterPending,
		SortBy:       "id",
		SortOrder:    OrderAsc,
		CurrentPage:  3,
		ItemsPerPage: 10,
	})

	if res.Stats.Total != 25 || res.Stats.Pending != 23 {
		t.Errorf("stats must cover the unfiltered list, got %+v", res.Stats)
	}
	if res.Page.TotalItems != 23 || res.Page.TotalPages != 3 {
		t.Errorf("page totals = %d items / %d pages, want 23 / 3", res.Page.TotalItems, res.Page.TotalPages)
	}
	if len(res.Page.Items) != 3 || res.Page.ShowingFrom != 21 || res.Page.ShowingTo != 23 {
		t.Errorf("page 3 = %d items showing %d-%d", len(res.Page.Items), res.Page.ShowingFrom, res.Page.ShowingTo)
	}
	if res.Page.Items[0].ID != "23" {
		t.Errorf("first item on page 3 = %s, want 23", res.Page.Items[0].ID)
	}
}
