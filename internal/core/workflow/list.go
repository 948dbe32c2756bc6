package workflow

import "context"

// Record is anything a list can hold and find again by identity.
type Record interface {
	Key() string
}

// Mode is where paging happens.
type Mode string

const (
	// ModeLocal fetches the whole collection once and slices it in memory.
	ModeLocal Mode = "local"
	// ModeServer fetches one page per request and trusts the server's page count.
	ModeServer Mode = "server"
)

type Page[T any] struct {
	Items      []T
	Page       int
	TotalPages int
}

type (
	FetchAll[T any]  func(ctx context.Context) ([]T, error)
	FetchPage[T any] func(ctx context.Context, page, limit int) (Page[T], error)
)

// List is a paginated view of one collection.
type List[T Record] struct {
	Kind        string            `json:"kind"`
	Mode        Mode              `json:"mode"`
	Items       []T               `json:"items"`
	Filters     map[string]string `json:"filters,omitempty"`
	Page        int               `json:"page"`
	RowsPerPage int               `json:"rowsPerPage"`
	ServerPages int               `json:"serverPages,omitempty"`
}

func NewList[T Record](kind string, mode Mode, rowsPerPage int) *List[T] {
	if rowsPerPage <= 0 {
		rowsPerPage = DefaultRowsPerPage
	}
	return &List[T]{Kind: kind, Mode: mode, Page: 1, RowsPerPage: rowsPerPage, ServerPages: 1}
}

// Load replaces the collection with a fresh fetch and returns to page 1. A
// failed fetch leaves an empty collection and the error is returned for logging.
func (l *List[T]) Load(ctx context.Context, fetch FetchAll[T]) error {
	l.Page = 1
	items, err := fetch(ctx)
	if err != nil {
		l.Items = nil
		return err
	}
	l.Items = items
	return nil
}

// LoadPage fetches one server page.
func (l *List[T]) LoadPage(ctx context.Context, page int, fetch FetchPage[T]) error {
	if page < 1 {
		page = 1
	}
	p, err := fetch(ctx, page, l.RowsPerPage)
	if err != nil {
		l.Items = nil
		l.Page = 1
		l.ServerPages = 1
		return err
	}
	l.Items = p.Items
	l.ServerPages = p.TotalPages
	if l.ServerPages < 1 {
		l.ServerPages = 1
	}
	l.Page = page
	if p.Page > 0 {
		l.Page = p.Page
	}
	return nil
}

func (l *List[T]) TotalPages() int {
	if l.Mode == ModeServer {
		if l.ServerPages < 1 {
			return 1
		}
		return l.ServerPages
	}
	return TotalPages(len(l.Items), l.RowsPerPage)
}

// GoTo moves a local list to page p, clamped to the valid range.
func (l *List[T]) GoTo(p int) int {
	l.Page = Clamp(p, l.TotalPages())
	return l.Page
}

// Visible returns the rows of the current page.
func (l *List[T]) Visible() []T {
	if l.Mode == ModeServer {
		out := make([]T, len(l.Items))
		copy(out, l.Items)
		return out
	}
	return Slice(l.Items, Clamp(l.Page, l.TotalPages()), l.RowsPerPage)
}

func (l *List[T]) Find(key string) (T, bool) {
	for _, it := range l.Items {
		if it.Key() == key {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Replace swaps the item with the same identity in place.
func (l *List[T]) Replace(item T) bool {
	for i := range l.Items {
		if l.Items[i].Key() == item.Key() {
			l.Items[i] = item
			return true
		}
	}
	return false
}

// Remove drops the item with the given identity and keeps the page in range.
func (l *List[T]) Remove(key string) bool {
	for i := range l.Items {
		if l.Items[i].Key() == key {
			l.Items = append(l.Items[:i:i], l.Items[i+1:]...)
			l.Page = Clamp(l.Page, l.TotalPages())
			return true
		}
	}
	return false
}

func (l *List[T]) Append(item T) {
	l.Items = append(l.Items, item)
}

// View is the rendered state of a list page.
type View[T any] struct {
	Kind     string   `json:"kind"`
	Rows     []T      `json:"rows"`
	Total    int      `json:"total"`
	Controls Controls `json:"controls"`
}

func (l *List[T]) View() View[T] {
	return View[T]{
		Kind:     l.Kind,
		Rows:     l.Visible(),
		Total:    len(l.Items),
		Controls: NewControls(l.Page, l.TotalPages()),
	}
}
