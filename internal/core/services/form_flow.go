package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/workflow"
)

// CreateHook performs the create call of a form.
type CreateHook[P any] func(ctx context.Context, session *domain.Session, payload P) error

// FormFlow keeps create forms in the session store. Every mutating step
// holds the gate for the form so concurrent requests cannot both commit.
type FormFlow[P any] struct {
	cfg    FlowConfig
	wf     *workflow.FormWorkflow[P]
	gate   workflow.Gate
	create CreateHook[P]
}

func NewFormFlow[P any](cfg FlowConfig, schema workflow.Schema[P], gate workflow.Gate, create CreateHook[P]) *FormFlow[P] {
	if gate == nil {
		gate = workflow.NewLocalGate()
	}
	return &FormFlow[P]{
		cfg:    cfg,
		wf:     workflow.NewFormWorkflow(schema, nil),
		gate:   gate,
		create: create,
	}
}

func (f *FormFlow[P]) Kind() string { return f.wf.Schema().Kind }

func (f *FormFlow[P]) key(session *domain.Session, formID string) string {
	return stateKey("form", session, f.Kind(), formID)
}

func (f *FormFlow[P]) save(session *domain.Session, form *workflow.Form[P]) error {
	return saveState(f.cfg.Cache, f.key(session, form.ID), form, stateTTL(session, f.cfg.StateTTL))
}

func (f *FormFlow[P]) Open(session *domain.Session) (*workflow.Form[P], error) {
	form := f.wf.New(uuid.NewString())
	if err := f.save(session, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (f *FormFlow[P]) Get(session *domain.Session, formID string) (*workflow.Form[P], error) {
	return loadState[workflow.Form[P]](f.cfg.Cache, f.key(session, formID))
}

// mutate loads the form under the gate, applies step and stores the result.
func (f *FormFlow[P]) mutate(ctx context.Context, session *domain.Session, formID string, step func(*workflow.Form[P], *workflow.Recorder) error) (*workflow.Form[P], []domain.Notification, error) {
	release, err := f.gate.Acquire(ctx, f.key(session, formID))
	if err != nil {
		return nil, nil, err
	}
	defer release()

	form, err := f.Get(session, formID)
	if err != nil {
		return nil, nil, err
	}

	rec := &workflow.Recorder{}
	stepErr := step(form, rec)
	if err := f.save(session, form); err != nil {
		f.cfg.Logger.Error("Failed to store form", map[string]interface{}{
			"error": err.Error(),
			"kind":  f.Kind(),
		})
		return nil, rec.Drain(), err
	}
	return form, rec.Drain(), stepErr
}

func (f *FormFlow[P]) SetFields(ctx context.Context, session *domain.Session, formID string, fields map[string]string) (*workflow.Form[P], []domain.Notification, error) {
	return f.mutate(ctx, session, formID, func(form *workflow.Form[P], _ *workflow.Recorder) error {
		for _, k := range sortedKeys(fields) {
			if err := f.wf.SetField(form, k, fields[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (f *FormFlow[P]) Submit(ctx context.Context, session *domain.Session, formID string) (*workflow.Form[P], []domain.Notification, error) {
	return f.mutate(ctx, session, formID, func(form *workflow.Form[P], rec *workflow.Recorder) error {
		return f.wf.Submit(ctx, form, rec, f.commit(session))
	})
}

func (f *FormFlow[P]) Edit(ctx context.Context, session *domain.Session, formID string) (*workflow.Form[P], []domain.Notification, error) {
	return f.mutate(ctx, session, formID, func(form *workflow.Form[P], _ *workflow.Recorder) error {
		return f.wf.Edit(form)
	})
}

func (f *FormFlow[P]) Confirm(ctx context.Context, session *domain.Session, formID string) (*workflow.Form[P], []domain.Notification, error) {
	return f.mutate(ctx, session, formID, func(form *workflow.Form[P], rec *workflow.Recorder) error {
		return f.wf.Confirm(ctx, form, rec, f.commit(session))
	})
}

func (f *FormFlow[P]) commit(session *domain.Session) workflow.CommitFunc[P] {
	return func(ctx context.Context, payload P) error {
		return f.create(ctx, session, payload)
	}
}
