package listing

import (
	"strings"

	"spacebook/pkg/model"
)

// Update carries the selections a viewer changed. Nil fields keep the
// stored value.
type Update struct {
	StatusFilter *string
	SearchTerm   *string
	SortBy       *string
	SortOrder    *string
	Page         *int
}

// Apply returns the next view state. Any change to the filter, search or sort
// selections sends the viewer back to page 1, even when the requested page
// would still exist in the new result.
func Apply(state model.ViewState, u Update) model.ViewState {
	next := state
	reset := false

	if u.StatusFilter != nil && *u.StatusFilter != state.StatusFilter {
		next.StatusFilter = *u.StatusFilter
		reset = true
	}
	if u.SearchTerm != nil {
		term := strings.TrimSpace(*u.SearchTerm)
		if term != state.SearchTerm {
			next.SearchTerm = term
			reset = true
		}
	}
	if u.SortBy != nil && *u.SortBy != state.SortBy {
		next.SortBy = *u.SortBy
		reset = true
	}
	if u.SortOrder != nil && *u.SortOrder != state.SortOrder {
		next.SortOrder = *u.SortOrder
		reset = true
	}
	if u.Page != nil {
		next.CurrentPage = *u.Page
	}

	if reset || next.CurrentPage < 1 {
		next.CurrentPage = 1
	}
	return next
}
