package workflow

// DefaultRowsPerPage is the page size of locally paginated lists.
const DefaultRowsPerPage = 5

// TotalPages is the number of pages needed for n items, never less than one.
func TotalPages(n, rowsPerPage int) int {
	if rowsPerPage <= 0 {
		rowsPerPage = DefaultRowsPerPage
	}
	if n <= 0 {
		return 1
	}
	return (n + rowsPerPage - 1) / rowsPerPage
}

// Bounds returns the half-open index range of page p over n items. Pages
// outside the valid range yield an empty range.
func Bounds(n, page, rowsPerPage int) (start, end int) {
	if rowsPerPage <= 0 {
		rowsPerPage = DefaultRowsPerPage
	}
	if page < 1 {
		return 0, 0
	}
	start = (page - 1) * rowsPerPage
	if start >= n {
		return n, n
	}
	end = start + rowsPerPage
	if end > n {
		end = n
	}
	return start, end
}

// Slice returns the elements shown on page p.
func Slice[T any](items []T, page, rowsPerPage int) []T {
	start, end := Bounds(len(items), page, rowsPerPage)
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// Clamp keeps page inside [1, total].
func Clamp(page, total int) int {
	if total < 1 {
		total = 1
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// PageLink is one entry of the page selector. Ellipsis entries carry no page.
type PageLink struct {
	Page     int  `json:"page,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// Window lists the page links around current: current±2, plus the first
// and last page when they fall outside, with an ellipsis only over a gap.
func Window(current, total int) []PageLink {
	if total < 1 {
		total = 1
	}
	current = Clamp(current, total)

	lo, hi := current-2, current+2
	if lo < 1 {
		lo = 1
	}
	if hi > total {
		hi = total
	}

	var links []PageLink
	if lo > 1 {
		links = append(links, PageLink{Page: 1})
		if lo > 2 {
			links = append(links, PageLink{Ellipsis: true})
		}
	}
	for p := lo; p <= hi; p++ {
		links = append(links, PageLink{Page: p, Current: p == current})
	}
	if hi < total {
		if hi < total-1 {
			links = append(links, PageLink{Ellipsis: true})
		}
		links = append(links, PageLink{Page: total})
	}
	return links
}

type Controls struct {
	Page         int        `json:"page"`
	TotalPages   int        `json:"totalPages"`
	PrevDisabled bool       `json:"prevDisabled"`
	NextDisabled bool       `json:"nextDisabled"`
	Links        []PageLink `json:"links"`
}

func NewControls(current, total int) Controls {
	if total < 1 {
		total = 1
	}
	current = Clamp(current, total)
	return Controls{
		Page:         current,
		TotalPages:   total,
		PrevDisabled: current <= 1,
		NextDisabled: current >= total,
		Links:        Window(current, total),
	}
}
