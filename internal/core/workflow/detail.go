package workflow

import (
	"context"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
)

type Phase string

const (
	PhaseClosed  Phase = "closed"
	PhaseViewing Phase = "viewing"
	PhaseEditing Phase = "editing"
)

// Codec converts a record to an edit draft and back. Inflate starts from the
// viewed record so fields outside the draft are preserved.
type Codec[T any] struct {
	Flatten func(record T) domain.Draft
	Inflate func(base T, d domain.Draft) (T, error)
}

type DetailMessages struct {
	Saved        string
	SaveFailed   string
	Deleted      string
	DeleteFailed string
	ConfirmText  string
}

// Confirmer asks the operator before a destructive call.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Confirmed is a Confirmer with a fixed answer.
type Confirmed bool

func (c Confirmed) Confirm(string) bool { return bool(c) }

// ConfirmFunc adapts a prompt function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

type (
	UpdateFunc[T any] func(ctx context.Context, record T) (T, error)
	DeleteFunc        func(ctx context.Context, key string) error
)

// Detail is the serializable state of the view/edit panel of one collection.
type Detail[T Record] struct {
	ID         string       `json:"id"`
	Kind       string       `json:"kind"`
	Phase      Phase        `json:"phase"`
	Record     *T           `json:"record,omitempty"`
	Draft      domain.Draft `json:"draft,omitempty"`
	Loading    bool         `json:"loading"`
	Generation uint64       `json:"generation"`
}

// Ticket identifies what the detail showed when a call was issued.
type Ticket struct {
	Generation uint64
	Key        string
}

func (d *Detail[T]) Ticket() Ticket {
	t := Ticket{Generation: d.Generation}
	if d.Record != nil {
		t.Key = (*d.Record).Key()
	}
	return t
}

// Current reports whether the detail still shows what t was issued for.
func (d *Detail[T]) Current(t Ticket) bool {
	if d.Phase == PhaseClosed || d.Record == nil {
		return false
	}
	return d.Generation == t.Generation && (*d.Record).Key() == t.Key
}

type DetailWorkflow[T Record] struct {
	codec    Codec[T]
	gate     Gate
	messages DetailMessages
}

func NewDetailWorkflow[T Record](codec Codec[T], gate Gate, messages DetailMessages) *DetailWorkflow[T] {
	if gate == nil {
		gate = NewLocalGate()
	}
	return &DetailWorkflow[T]{codec: codec, gate: gate, messages: messages}
}

func (w *DetailWorkflow[T]) New(id, kind string) *Detail[T] {
	return &Detail[T]{ID: id, Kind: kind, Phase: PhaseClosed}
}

func (w *DetailWorkflow[T]) Open(d *Detail[T], record T) {
	d.Generation++
	d.Record = &record
	d.Draft = nil
	d.Loading = false
	d.Phase = PhaseViewing
}

func (w *DetailWorkflow[T]) Close(d *Detail[T]) {
	d.Generation++
	d.Record = nil
	d.Draft = nil
	d.Loading = false
	d.Phase = PhaseClosed
}

// Edit flattens the viewed record into a draft.
func (w *DetailWorkflow[T]) Edit(d *Detail[T]) error {
	if d.Phase != PhaseViewing || d.Record == nil {
		return ErrWrongStage
	}
	d.Draft = w.codec.Flatten(*d.Record)
	d.Phase = PhaseEditing
	return nil
}

func (w *DetailWorkflow[T]) SetField(d *Detail[T], field, value string) error {
	if d.Phase != PhaseEditing {
		return ErrWrongStage
	}
	if d.Loading {
		return ErrInFlight
	}
	d.Draft.Set(field, value)
	return nil
}

// Cancel discards the draft and returns to viewing.
func (w *DetailWorkflow[T]) Cancel(d *Detail[T]) error {
	if d.Phase != PhaseEditing {
		return ErrWrongStage
	}
	if d.Loading {
		return ErrInFlight
	}
	d.Draft = nil
	d.Phase = PhaseViewing
	return nil
}

// Save sends the full record rebuilt from the draft. The list entry is
// replaced in place on success; nothing is refetched.
func (w *DetailWorkflow[T]) Save(ctx context.Context, d *Detail[T], list *List[T], n Notifier, update UpdateFunc[T]) error {
	if d.Phase != PhaseEditing || d.Record == nil {
		return ErrWrongStage
	}
	if d.Loading {
		return ErrInFlight
	}

	next, err := w.codec.Inflate(*d.Record, d.Draft)
	if err != nil {
		notifyInvalid(n, err)
		return err
	}

	release, err := w.gate.Acquire(ctx, d.ID)
	if err != nil {
		return err
	}
	defer release()

	ticket := d.Ticket()
	d.Loading = true
	saved, err := update(ctx, next)
	d.Loading = false
	if !d.Current(ticket) {
		return ErrStale
	}

	if err != nil {
		n.Notify(domain.Failure(failureMessage(w.messages.SaveFailed, err)))
		return err
	}

	d.Record = &saved
	d.Draft = nil
	d.Phase = PhaseViewing
	if list != nil {
		list.Replace(saved)
	}
	n.Notify(domain.Success(w.messages.Saved))
	return nil
}

// Delete removes the viewed record after an explicit confirmation.
func (w *DetailWorkflow[T]) Delete(ctx context.Context, d *Detail[T], list *List[T], n Notifier, c Confirmer, remove DeleteFunc) error {
	if d.Phase != PhaseViewing || d.Record == nil {
		return ErrWrongStage
	}
	if d.Loading {
		return ErrInFlight
	}
	if c == nil || !c.Confirm(w.messages.ConfirmText) {
		return ErrNotConfirmed
	}

	release, err := w.gate.Acquire(ctx, d.ID)
	if err != nil {
		return err
	}
	defer release()

	ticket := d.Ticket()
	d.Loading = true
	err = remove(ctx, ticket.Key)
	d.Loading = false
	if !d.Current(ticket) {
		return ErrStale
	}

	if err != nil {
		n.Notify(domain.Failure(failureMessage(w.messages.DeleteFailed, err)))
		return err
	}

	if list != nil {
		list.Remove(ticket.Key)
	}
	w.Close(d)
	n.Notify(domain.Success(w.messages.Deleted))
	return nil
}
