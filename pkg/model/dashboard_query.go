package model

// DashboardQuery carries the list selections sent with a dashboard request.
// A nil field keeps the viewer's persisted selection.
type DashboardQuery struct {
	StatusFilter *string `json:"status,omitempty" validate:"omitempty,max=32,list_token"`
	SearchTerm   *string `json:"search,omitempty" validate:"omitempty,max=200"`
	SortBy       *string `json:"sort_by,omitempty" validate:"omitempty,max=64,list_token"`
	SortOrder    *string `json:"sort_order,omitempty" validate:"omitempty,oneof=asc desc"`
	Page         *int    `json:"page,omitempty" validate:"omitempty,min=1,max=100000"`
	ItemsPerPage *int    `json:"per_page,omitempty" validate:"omitempty,min=1,max=100"`
}
