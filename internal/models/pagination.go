package models

// Pagination describes one page of a list result.
type Pagination struct {
	TotalItems   int  `json:"total_items"`
	TotalPages   int  `json:"total_pages"`
	CurrentPage  int  `json:"current_page"`
	ItemsPerPage int  `json:"items_per_page"`
	HasPrevious  bool `json:"has_previous"`
	HasNext      bool `json:"has_next"`
}

// NewPagination computes page math for totalItems. The requested page is
// clamped into [1, totalPages]; an empty result set still reports page 1 of 0.
func NewPagination(totalItems, page, perPage int) Pagination {
	if perPage < 1 {
		perPage = 1
	}
	totalPages := (totalItems + perPage - 1) / perPage

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	return Pagination{
		TotalItems:   totalItems,
		TotalPages:   totalPages,
		CurrentPage:  page,
		ItemsPerPage: perPage,
		HasPrevious:  page > 1,
		HasNext:      page < totalPages,
	}
}

// Offset returns the row offset of the page.
func (p Pagination) Offset() int {
	return (p.CurrentPage - 1) * p.ItemsPerPage
}
