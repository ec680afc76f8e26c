// Package pager provides windowing and ordering over row collections.
package pager

// TotalPages returns the number of pages needed for n rows. An empty
// collection still has one (empty) page.
func TotalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// Clamp moves page into [1, TotalPages(n, size)].
func Clamp(page, n, size int) int {
	last := TotalPages(n, size)
	if page > last {
		page = last
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Window describes one page of a collection.
type Window struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	TotalRows  int `json:"totalRows"`
	Start      int `json:"start"`
	End        int `json:"end"`
}

// NewWindow clamps page and computes the half-open row range [Start, End)
// it covers.
func NewWindow(page, n, size int) Window {
	page = Clamp(page, n, size)
	if size <= 0 {
		return Window{Page: page, TotalPages: 1, TotalRows: n, Start: 0, End: n}
	}

	start := (page - 1) * size
	end := start + size
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	return Window{
		Page:       page,
		TotalPages: TotalPages(n, size),
		TotalRows:  n,
		Start:      start,
		End:        end,
	}
}

// Paginate returns the rows of the (clamped) page together with its window.
// The returned slice shares storage with rows.
func Paginate[T any](rows []T, page, size int) ([]T, Window) {
	w := NewWindow(page, len(rows), size)
	return rows[w.Start:w.End], w
}
