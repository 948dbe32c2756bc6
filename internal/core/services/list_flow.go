package services

import (
	"context"
	"errors"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/workflow"
)

type (
	FetchAllHook[T any]  func(ctx context.Context, session *domain.Session, filters map[string]string) ([]T, error)
	FetchPageHook[T any] func(ctx context.Context, session *domain.Session, filters map[string]string, page, limit int) (workflow.Page[T], error)
)

// ListFlow keeps one paginated list per session and kind.
type ListFlow[T workflow.Record] struct {
	cfg       FlowConfig
	kind      string
	mode      workflow.Mode
	rows      int
	fetchAll  FetchAllHook[T]
	fetchPage FetchPageHook[T]
}

// NewLocalListFlow fetches the whole collection and pages it in memory.
func NewLocalListFlow[T workflow.Record](cfg FlowConfig, kind string, fetch FetchAllHook[T]) *ListFlow[T] {
	return &ListFlow[T]{cfg: cfg, kind: kind, mode: workflow.ModeLocal, rows: cfg.RowsPerPage, fetchAll: fetch}
}

// NewServerListFlow fetches one page of limit rows per request.
func NewServerListFlow[T workflow.Record](cfg FlowConfig, kind string, limit int, fetch FetchPageHook[T]) *ListFlow[T] {
	return &ListFlow[T]{cfg: cfg, kind: kind, mode: workflow.ModeServer, rows: limit, fetchPage: fetch}
}

func (l *ListFlow[T]) key(session *domain.Session) string {
	return stateKey("list", session, l.kind)
}

func (l *ListFlow[T]) state(session *domain.Session) (*workflow.List[T], error) {
	return loadState[workflow.List[T]](l.cfg.Cache, l.key(session))
}

func (l *ListFlow[T]) store(session *domain.Session, list *workflow.List[T]) error {
	return saveState(l.cfg.Cache, l.key(session), list, stateTTL(session, l.cfg.StateTTL))
}

// degrade logs a failed fetch. Only an expired session is reported back.
func (l *ListFlow[T]) degrade(err error) error {
	if err == nil {
		return nil
	}
	l.cfg.Logger.Warn("List fetch failed, showing empty list", map[string]interface{}{
		"kind":  l.kind,
		"error": err.Error(),
	})
	if errors.Is(err, domain.ErrSessionExpired) {
		return err
	}
	return nil
}

// Load refetches with new filters and shows the first page.
func (l *ListFlow[T]) Load(ctx context.Context, session *domain.Session, filters map[string]string) (workflow.View[T], error) {
	list := workflow.NewList[T](l.kind, l.mode, l.rows)
	list.Filters = filters

	var fetchErr error
	if l.mode == workflow.ModeServer {
		fetchErr = list.LoadPage(ctx, 1, l.pageFetcher(session, filters))
	} else {
		fetchErr = list.Load(ctx, func(ctx context.Context) ([]T, error) {
			return l.fetchAll(ctx, session, filters)
		})
	}
	if err := l.degrade(fetchErr); err != nil {
		return list.View(), err
	}

	if err := l.store(session, list); err != nil {
		return workflow.View[T]{}, err
	}
	return list.View(), nil
}

// Page moves to page p, loading the list first when the session has none.
func (l *ListFlow[T]) Page(ctx context.Context, session *domain.Session, page int) (workflow.View[T], error) {
	list, err := l.state(session)
	if errors.Is(err, ErrStateNotFound) {
		if _, err := l.Load(ctx, session, nil); err != nil {
			return workflow.View[T]{}, err
		}
		list, err = l.state(session)
	}
	if err != nil {
		return workflow.View[T]{}, err
	}

	if l.mode == workflow.ModeServer {
		if err := l.degrade(list.LoadPage(ctx, page, l.pageFetcher(session, list.Filters))); err != nil {
			return list.View(), err
		}
	} else {
		list.GoTo(page)
	}

	if err := l.store(session, list); err != nil {
		return workflow.View[T]{}, err
	}
	return list.View(), nil
}

func (l *ListFlow[T]) View(session *domain.Session) (workflow.View[T], error) {
	list, err := l.state(session)
	if err != nil {
		return workflow.View[T]{}, err
	}
	return list.View(), nil
}

func (l *ListFlow[T]) Find(session *domain.Session, key string) (T, bool) {
	list, err := l.state(session)
	if err != nil {
		var zero T
		return zero, false
	}
	return list.Find(key)
}

func (l *ListFlow[T]) Append(session *domain.Session, item T) {
	l.patch(session, func(list *workflow.List[T]) { list.Append(item) })
}

func (l *ListFlow[T]) Replace(session *domain.Session, item T) {
	l.patch(session, func(list *workflow.List[T]) { list.Replace(item) })
}

func (l *ListFlow[T]) Remove(session *domain.Session, key string) {
	l.patch(session, func(list *workflow.List[T]) { list.Remove(key) })
}

// patch edits the stored list in place. A session without a list is left alone.
func (l *ListFlow[T]) patch(session *domain.Session, edit func(*workflow.List[T])) {
	list, err := l.state(session)
	if err != nil {
		return
	}
	edit(list)
	if err := l.store(session, list); err != nil {
		l.cfg.Logger.Warn("Failed to store list", map[string]interface{}{
			"kind":  l.kind,
			"error": err.Error(),
		})
	}
}

func (l *ListFlow[T]) pageFetcher(session *domain.Session, filters map[string]string) workflow.FetchPage[T] {
	return func(ctx context.Context, page, limit int) (workflow.Page[T], error) {
		return l.fetchPage(ctx, session, filters, page, limit)
	}
}
