package form

import (
	"github.com/goliatone/go-formstate/pkg/alert"
	"github.com/goliatone/go-formstate/pkg/draft"
	"github.com/goliatone/go-formstate/pkg/validate"
)

// SubmitHandler receives the value snapshot of a form whose validation passed.
// The handler is opaque to the core: it may hit the network, queue work, or
// return instantly. The form stays in StatusSubmitting until the caller
// signals completion through Form.FinishSubmission.
type SubmitHandler func(snapshot validate.Snapshot)

// Collaborator is the external input surface a form can command. The core
// never renders; it asks the collaborator to move focus when scroll-to-first-
// error behavior fires.
type Collaborator interface {
	// FocusCursorAtEnd requests focus on the field's input with the cursor
	// positioned after the existing text.
	FocusCursorAtEnd(fieldID string)
}

// Option customises a Form.
type Option func(*Form)

// WithValidator installs the full-form validation function. It must be pure;
// the form decides when it runs.
func WithValidator(fn validate.Func) Option {
	return func(f *Form) {
		f.validator = fn
	}
}

// WithValidators chains several validators, accumulating per-field messages
// in the given order.
func WithValidators(fns ...validate.Func) Option {
	return func(f *Form) {
		f.validator = validate.Chain(fns...)
	}
}

// WithDrafts enables draft persistence through the given store for fields
// registered with DraftEnabled.
func WithDrafts(store draft.Store) Option {
	return func(f *Form) {
		f.drafts = store
	}
}

// WithSubmitHandler installs the external submit handler.
func WithSubmitHandler(handler SubmitHandler) Option {
	return func(f *Form) {
		f.submit = handler
	}
}

// WithCollaborator installs the input collaborator focus commands are sent to.
func WithCollaborator(collaborator Collaborator) Option {
	return func(f *Form) {
		f.collaborator = collaborator
	}
}

// WithAlerts overrides the alert coordinator, for custom banner text or
// field labels.
func WithAlerts(coordinator *alert.Coordinator) Option {
	return func(f *Form) {
		if coordinator != nil {
			f.alerts = coordinator
		}
	}
}
