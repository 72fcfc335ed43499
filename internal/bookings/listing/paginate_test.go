package listing

import (
	"math"
	"slices"
	"testing"
)

func TestPaginate(t *testing.T) {
	items := manyBookings(25)

	tests := []struct {
		name        string
		page        int
		wantLen     int
		wantFrom    int
		wantTo      int
		wantCurrent int
	}{
		{name: "first page", page: 1, wantLen: 10, wantFrom: 1, wantTo: 10, wantCurrent: 1},
		{name: "second page", page: 2, wantLen: 10, wantFrom: 11, wantTo: 20, wantCurrent: 2},
		{name: "last partial page", page: 3, wantLen: 5, wantFrom: 21, wantTo: 25, wantCurrent: 3},
		{name: "past the end", page: 4, wantLen: 0, wantFrom: 0, wantTo: 0, wantCurrent: 4},
		{name: "zero page treated as first", page: 0, wantLen: 10, wantFrom: 1, wantTo: 10, wantCurrent: 1},
		{name: "huge page", page: math.MaxInt / 5, wantLen: 0, wantFrom: 0, wantTo: 0, wantCurrent: math.MaxInt / 5},
		{name: "max int page", page: math.MaxInt, wantLen: 0, wantFrom: 0, wantTo: 0, wantCurrent: math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(items, tt.page, 10)
			if p.TotalPages != 3 {
				t.Errorf("TotalPages = %d, want 3", p.TotalPages)
			}
			if len(p.Items) != tt.wantLen {
				t.Errorf("len(Items) = %d, want %d", len(p.Items), tt.wantLen)
			}
			if p.ShowingFrom != tt.wantFrom || p.ShowingTo != tt.wantTo {
				t.Errorf("showing %d-%d, want %d-%d", p.ShowingFrom, p.ShowingTo, tt.wantFrom, tt.wantTo)
			}
			if p.CurrentPage != tt.wantCurrent {
				t.Errorf("CurrentPage = %d, want %d", p.CurrentPage, tt.wantCurrent)
			}
			if p.TotalItems != 25 {
				t.Errorf("TotalItems = %d, want 25", p.TotalItems)
			}
		})
	}
}

func TestPaginate_LastPageContents(t *testing.T) {
	p := Paginate(manyBookings(25), 3, 10)
	want := []string{"21", "22", "23", "24", "25"}
	if got := ids(p.Items); !slices.Equal(got, want) {
		t.Errorf("page 3 = %v, want %v", got, want)
	}
}

func TestPaginate_EmptyAndDefaults(t *testing.T) {
	p := Paginate([]int{}, 1, 0)
	if p.ItemsPerPage != DefaultItemsPerPage {
		t.Errorf("ItemsPerPage = %d, want %d", p.ItemsPerPage, DefaultItemsPerPage)
	}
	if p.TotalPages != 0 || p.ShowingFrom != 0 || p.ShowingTo != 0 {
		t.Errorf("empty page = %+v", p)
	}
	if p.Items == nil {
		t.Error("Items should be an empty slice, not nil")
	}

	exact := Paginate(make([]int, 20), 2, 10)
	if exact.TotalPages != 2 || exact.ShowingTo != 20 {
		t.Errorf("exact multiple: %+v", exact)
	}
}
