package search

// Server-side pagination policy: callers cannot exceed maxLimit, anything
// out of range falls back to the default, pages start at 1.
const (
	defaultLimit = 20
	maxLimit     = 50
)

func clampLimit(limit int) int {
	if limit < 1 || limit > maxLimit {
		return defaultLimit
	}
	return limit
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalResults int64 `json:"total_results"`
	Limit        int   `json:"limit"`
}

func newPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalResults: total,
		Limit:        limit,
	}
}
