package services

import (
	"context"
	"errors"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/workflow"
)

var ErrNotSupported = errors.New("operation not supported")

type (
	FetchOneHook[T any] func(ctx context.Context, session *domain.Session, id string) (T, error)
	UpdateHook[T any]   func(ctx context.Context, session *domain.Session, record T) (T, error)
	DeleteHook          func(ctx context.Context, session *domain.Session, id string) error
)

// DetailFlow keeps the view/edit panel of one collection in the session
// store. The backend call of a save or delete runs outside the gate so the
// operator can open another record meanwhile; a result that no longer matches
// the open record is dropped.
type DetailFlow[T workflow.Record] struct {
	cfg    FlowConfig
	kind   string
	wf     *workflow.DetailWorkflow[T]
	gate   workflow.Gate
	list   *ListFlow[T]
	fetch  FetchOneHook[T]
	update UpdateHook[T]
	remove DeleteHook
}

type DetailHooks[T any] struct {
	Fetch  FetchOneHook[T]
	Update UpdateHook[T]
	Delete DeleteHook
}

func NewDetailFlow[T workflow.Record](
	cfg FlowConfig,
	kind string,
	codec workflow.Codec[T],
	messages workflow.DetailMessages,
	gate workflow.Gate,
	list *ListFlow[T],
	hooks DetailHooks[T],
) *DetailFlow[T] {
	if gate == nil {
		gate = workflow.NewLocalGate()
	}
	return &DetailFlow[T]{
		cfg:    cfg,
		kind:   kind,
		wf:     workflow.NewDetailWorkflow(codec, nil, messages),
		gate:   gate,
		list:   list,
		fetch:  hooks.Fetch,
		update: hooks.Update,
		remove: hooks.Delete,
	}
}

func (f *DetailFlow[T]) key(session *domain.Session) string {
	return stateKey("detail", session, f.kind)
}

func (f *DetailFlow[T]) state(session *domain.Session) (*workflow.Detail[T], error) {
	d, err := loadState[workflow.Detail[T]](f.cfg.Cache, f.key(session))
	if errors.Is(err, ErrStateNotFound) {
		return f.wf.New(f.key(session), f.kind), nil
	}
	return d, err
}

func (f *DetailFlow[T]) store(session *domain.Session, d *workflow.Detail[T]) error {
	return saveState(f.cfg.Cache, f.key(session), d, stateTTL(session, f.cfg.StateTTL))
}

func (f *DetailFlow[T]) Get(session *domain.Session) (*workflow.Detail[T], error) {
	return f.state(session)
}

// locked runs step on the stored detail while holding the gate and stores the result.
func (f *DetailFlow[T]) locked(ctx context.Context, session *domain.Session, step func(*workflow.Detail[T]) error) (*workflow.Detail[T], error) {
	release, err := f.gate.Acquire(ctx, f.key(session))
	if err != nil {
		return nil, err
	}
	defer release()

	d, err := f.state(session)
	if err != nil {
		return nil, err
	}
	if err := step(d); err != nil {
		return d, err
	}
	if err := f.store(session, d); err != nil {
		return nil, err
	}
	return d, nil
}

// View opens the record with the given id. The row already held by the list
// is shown when present, otherwise the record is fetched.
func (f *DetailFlow[T]) View(ctx context.Context, session *domain.Session, id string) (*workflow.Detail[T], error) {
	record, ok := f.list.Find(session, id)
	if !ok {
		if f.fetch == nil {
			return nil, ErrStateNotFound
		}
		fetched, err := f.fetch(ctx, session, id)
		if err != nil {
			return nil, err
		}
		record = fetched
	}
	return f.locked(ctx, session, func(d *workflow.Detail[T]) error {
		f.wf.Open(d, record)
		return nil
	})
}

func (f *DetailFlow[T]) Close(ctx context.Context, session *domain.Session) (*workflow.Detail[T], error) {
	return f.locked(ctx, session, func(d *workflow.Detail[T]) error {
		f.wf.Close(d)
		return nil
	})
}

func (f *DetailFlow[T]) Edit(ctx context.Context, session *domain.Session) (*workflow.Detail[T], error) {
	return f.locked(ctx, session, f.wf.Edit)
}

func (f *DetailFlow[T]) Cancel(ctx context.Context, session *domain.Session) (*workflow.Detail[T], error) {
	return f.locked(ctx, session, f.wf.Cancel)
}

func (f *DetailFlow[T]) SetFields(ctx context.Context, session *domain.Session, fields map[string]string) (*workflow.Detail[T], error) {
	return f.locked(ctx, session, func(d *workflow.Detail[T]) error {
		for _, k := range sortedKeys(fields) {
			if err := f.wf.SetField(d, k, fields[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

// begin marks the stored detail as loading and hands back a working copy
// taken before the mark.
func (f *DetailFlow[T]) begin(ctx context.Context, session *domain.Session, phase workflow.Phase) (*workflow.Detail[T], error) {
	var working workflow.Detail[T]
	_, err := f.locked(ctx, session, func(d *workflow.Detail[T]) error {
		if d.Phase != phase || d.Record == nil {
			return workflow.ErrWrongStage
		}
		if d.Loading {
			return workflow.ErrInFlight
		}
		working = *d
		working.Draft = d.Draft.Clone()
		d.Loading = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &working, nil
}

// finish stores the working copy if the session still shows the record it
// was taken from.
func (f *DetailFlow[T]) finish(ctx context.Context, session *domain.Session, ticket workflow.Ticket, working *workflow.Detail[T], callErr error) (*workflow.Detail[T], error) {
	return f.locked(ctx, session, func(d *workflow.Detail[T]) error {
		if !d.Current(ticket) {
			f.cfg.Logger.Info("Discarding result for a record no longer shown", map[string]interface{}{
				"kind":   f.kind,
				"record": ticket.Key,
			})
			return workflow.ErrStale
		}
		if callErr != nil {
			d.Loading = false
			return nil
		}
		*d = *working
		return nil
	})
}

// Save sends the edited record and patches the list row in place.
func (f *DetailFlow[T]) Save(ctx context.Context, session *domain.Session) (*workflow.Detail[T], []domain.Notification, error) {
	working, err := f.begin(ctx, session, workflow.PhaseEditing)
	if err != nil {
		return nil, nil, err
	}

	ticket := working.Ticket()
	rec := &workflow.Recorder{}
	saveErr := f.wf.Save(ctx, working, nil, rec, func(ctx context.Context, record T) (T, error) {
		return f.update(ctx, session, record)
	})

	d, err := f.finish(ctx, session, ticket, working, saveErr)
	if err != nil {
		return d, nil, err
	}
	if saveErr != nil {
		return d, rec.Drain(), saveErr
	}
	f.list.Replace(session, *d.Record)
	return d, rec.Drain(), nil
}

// Delete removes the viewed record once c confirms it.
func (f *DetailFlow[T]) Delete(ctx context.Context, session *domain.Session, c workflow.Confirmer) (*workflow.Detail[T], []domain.Notification, error) {
	if f.remove == nil {
		return nil, nil, ErrNotSupported
	}
	working, err := f.begin(ctx, session, workflow.PhaseViewing)
	if err != nil {
		return nil, nil, err
	}

	ticket := working.Ticket()
	rec := &workflow.Recorder{}
	deleteErr := f.wf.Delete(ctx, working, nil, rec, c, func(ctx context.Context, id string) error {
		return f.remove(ctx, session, id)
	})

	d, err := f.finish(ctx, session, ticket, working, deleteErr)
	if err != nil {
		return d, nil, err
	}
	if deleteErr != nil {
		return d, rec.Drain(), deleteErr
	}
	f.list.Remove(session, ticket.Key)
	return d, rec.Drain(), nil
}
