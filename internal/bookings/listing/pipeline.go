package listing

import "spacebook/pkg/model"

type Query struct {
	StatusFilter string
	SearchTerm   string
	SortBy       string
	SortOrder    string
	CurrentPage  int
	ItemsPerPage int
}

func QueryFromState(state model.ViewState, itemsPerPage int) Query {
	return Query{
		StatusFilter: state.StatusFilter,
		SearchTerm:   state.SearchTerm,
		SortBy:       state.SortBy,
		SortOrder:    state.SortOrder,
		CurrentPage:  state.CurrentPage,
		ItemsPerPage: itemsPerPage,
	}
}

type Result struct {
	Stats Stats
	Page  Page[*model.Booking]
}

// Run derives the dashboard list. Stats cover every booking the viewer can
// see; the page covers only what survives the filter.
func Run(bookings []*model.Booking, role model.Role, q Query) Result {
	filtered := Filter(bookings, role, q.StatusFilter, q.SearchTerm)
	sorted := Sort(filtered, q.SortBy, q.SortOrder)

	return Result{
		Stats: CalculateStats(bookings, role),
		Page:  Paginate(sorted, q.CurrentPage, q.ItemsPerPage),
	}
}
