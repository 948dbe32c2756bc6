package workflow

import (
	"context"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
)

type Stage string

const (
	StageEditing Stage = "editing"
	StagePreview Stage = "preview"
)

// Policy decides whether a valid submit is committed directly or first shown
// for confirmation.
type Policy struct {
	RequiresPreview bool `json:"requiresPreview"`
}

type Messages struct {
	Created string
	Failed  string
}

// Schema is the per-entity behavior of a form.
type Schema[P any] struct {
	Kind       string
	Policy     Policy
	Initial    func() domain.Draft
	Crosscheck func(d domain.Draft, field string) map[string]string
	Build      func(d domain.Draft) (P, error)
	Messages   Messages
}

// CommitFunc performs the create call for a payload.
type CommitFunc[P any] func(ctx context.Context, payload P) error

// Form is the serializable state of one create form.
type Form[P any] struct {
	ID      string            `json:"id"`
	Kind    string            `json:"kind"`
	Stage   Stage             `json:"stage"`
	Draft   domain.Draft      `json:"draft"`
	Inline  map[string]string `json:"inline"`
	Preview *P                `json:"preview,omitempty"`
	Loading bool              `json:"loading"`
	Policy  Policy            `json:"policy"`
}

// FormWorkflow drives forms of one schema.
type FormWorkflow[P any] struct {
	schema Schema[P]
	gate   Gate
}

func NewFormWorkflow[P any](schema Schema[P], gate Gate) *FormWorkflow[P] {
	if gate == nil {
		gate = NewLocalGate()
	}
	return &FormWorkflow[P]{schema: schema, gate: gate}
}

func (w *FormWorkflow[P]) Schema() Schema[P] { return w.schema }

// New returns a form in editing stage holding the initial draft.
func (w *FormWorkflow[P]) New(id string) *Form[P] {
	return &Form[P]{
		ID:     id,
		Kind:   w.schema.Kind,
		Stage:  StageEditing,
		Draft:  w.schema.Initial(),
		Inline: map[string]string{},
		Policy: w.schema.Policy,
	}
}

// SetField merges one value into the draft and recomputes cross-field messages.
func (w *FormWorkflow[P]) SetField(f *Form[P], field, value string) error {
	if f.Stage != StageEditing {
		return ErrWrongStage
	}
	if f.Loading {
		return ErrInFlight
	}
	if f.Inline == nil {
		f.Inline = map[string]string{}
	}
	f.Draft.Set(field, value)
	delete(f.Inline, field)

	if w.schema.Crosscheck == nil {
		return nil
	}
	for k, msg := range w.schema.Crosscheck(f.Draft, field) {
		if msg == "" {
			delete(f.Inline, k)
			continue
		}
		f.Inline[k] = msg
	}
	return nil
}

// Submit validates the draft. Invalid drafts emit exactly one notification and
// stay in editing. Valid drafts move to preview or are committed directly.
func (w *FormWorkflow[P]) Submit(ctx context.Context, f *Form[P], n Notifier, commit CommitFunc[P]) error {
	if f.Stage != StageEditing {
		return ErrWrongStage
	}
	if f.Loading {
		return ErrInFlight
	}

	payload, err := w.schema.Build(f.Draft)
	if err != nil {
		if field, inline := notifyInvalid(n, err); field != "" && inline != "" {
			if f.Inline == nil {
				f.Inline = map[string]string{}
			}
			f.Inline[field] = inline
		}
		return err
	}
	f.Inline = map[string]string{}

	if f.Policy.RequiresPreview {
		f.Preview = &payload
		f.Stage = StagePreview
		return nil
	}
	return w.commit(ctx, f, n, payload, commit)
}

// Edit returns from preview to editing, keeping the draft.
func (w *FormWorkflow[P]) Edit(f *Form[P]) error {
	if f.Stage != StagePreview {
		return ErrWrongStage
	}
	if f.Loading {
		return ErrInFlight
	}
	f.Stage = StageEditing
	f.Preview = nil
	return nil
}

// Confirm commits the payload frozen at submit time.
func (w *FormWorkflow[P]) Confirm(ctx context.Context, f *Form[P], n Notifier, commit CommitFunc[P]) error {
	if f.Stage != StagePreview || f.Preview == nil {
		return ErrWrongStage
	}
	return w.commit(ctx, f, n, *f.Preview, commit)
}

func (w *FormWorkflow[P]) commit(ctx context.Context, f *Form[P], n Notifier, payload P, commit CommitFunc[P]) error {
	if f.Loading {
		return ErrInFlight
	}
	release, err := w.gate.Acquire(ctx, f.ID)
	if err != nil {
		return err
	}
	defer release()

	f.Loading = true
	err = commit(ctx, payload)
	f.Loading = false
	f.Preview = nil
	f.Stage = StageEditing

	if err != nil {
		n.Notify(domain.Failure(failureMessage(w.schema.Messages.Failed, err)))
		return err
	}
	n.Notify(domain.Success(w.schema.Messages.Created))
	f.Draft = w.schema.Initial()
	f.Inline = map[string]string{}
	return nil
}
