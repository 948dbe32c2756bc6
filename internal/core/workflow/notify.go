package workflow

import (
	"errors"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
)

// Notifier receives the transient messages a workflow emits.
type Notifier interface {
	Notify(n domain.Notification)
}

// Recorder collects notifications so they can be returned with a response.
type Recorder struct {
	notes []domain.Notification
}

func (r *Recorder) Notify(n domain.Notification) {
	r.notes = append(r.notes, n)
}

// Drain returns the collected notifications and resets the recorder.
func (r *Recorder) Drain() []domain.Notification {
	out := r.notes
	r.notes = nil
	if out == nil {
		return []domain.Notification{}
	}
	return out
}

func (r *Recorder) Len() int { return len(r.notes) }

// failureMessage prefers the backend's own message over the fallback.
func failureMessage(fallback string, err error) string {
	var berr *domain.BackendError
	if errors.As(err, &berr) && berr.Message != "" {
		return berr.Message
	}
	return fallback
}

// notifyInvalid emits the single notification of a failed build and returns
// the inline message, if any.
func notifyInvalid(n Notifier, err error) (field, inline string) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		n.Notify(verr.Notification())
		return verr.Field, verr.Inline
	}
	n.Notify(domain.Failure(err.Error()))
	return "", ""
}
