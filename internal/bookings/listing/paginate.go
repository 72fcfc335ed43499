package listing

const DefaultItemsPerPage = 10

type Page[T any] struct {
	Items        []T `json:"items"`
	CurrentPage  int `json:"currentPage"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalItems   int `json:"totalItems"`
	TotalPages   int `json:"totalPages"`
	ShowingFrom  int `json:"showingFrom"`
	ShowingTo    int `json:"showingTo"`
}

// Paginate slices items to the 1-based page. Pages past the end come back
// empty with ShowingFrom and ShowingTo set to 0.
func Paginate[T any](items []T, currentPage, itemsPerPage int) Page[T] {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}
	if currentPage < 1 {
		currentPage = 1
	}

	total := len(items)
	page := Page[T]{
		Items:        []T{},
		CurrentPage:  currentPage,
		ItemsPerPage: itemsPerPage,
		TotalItems:   total,
		TotalPages:   (total + itemsPerPage - 1) / itemsPerPage,
	}

	// Checked before multiplying so huge page numbers cannot overflow start.
	if currentPage > page.TotalPages {
		return page
	}
	start := (currentPage - 1) * itemsPerPage
	end := min(start+itemsPerPage, total)

	page.Items = items[start:end]
	page.ShowingFrom = start + 1
	page.ShowingTo = end
	return page
}
