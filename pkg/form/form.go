package form

import (
	"errors"
	"sync"

	"github.com/goliatone/go-formstate/pkg/alert"
	"github.com/goliatone/go-formstate/pkg/draft"
	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/validate"
)

// Form is one live form instance. It owns its FormState exclusively; create
// one Form per form identifier. All methods are safe for concurrent use, with
// each event applied atomically.
type Form struct {
	mu           sync.Mutex
	id           string
	registry     *field.Registry
	validator    validate.Func
	drafts       draft.Store
	submit       SubmitHandler
	collaborator Collaborator
	alerts       *alert.Coordinator
	ctrl         controller

	// lastResult is the raw output of the latest validation run, including
	// entries for unmounted fields whose retained values still validate.
	// Submission gates on it.
	lastResult validate.Result
	// displayed is the touched-filtered slice of lastResult; it is what
	// inline error surfaces read from.
	displayed validate.Result
	// bannerActive marks that the last submit attempt was rejected and the
	// fix-errors banner should show while validation errors remain.
	bannerActive bool
	serverErr    *alert.ServerError
}

// New constructs a Form for the given form identifier.
func New(id string, options ...Option) (*Form, error) {
	if id == "" {
		return nil, errors.New("form: identifier is required")
	}
	f := &Form{
		id:         id,
		registry:   field.NewRegistry(),
		alerts:     alert.New(),
		ctrl:       newController(),
		lastResult: validate.Result{},
		displayed:  validate.Result{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f, nil
}

// ID returns the form identifier.
func (f *Form) ID() string {
	return f.id
}

// Register mounts a field. For draft-enabled fields a stored draft replaces
// the default value, except on re-mount where the field's last live value
// wins. Returns *field.DuplicateFieldError when the identifier is already
// live.
func (f *Form) Register(id string, def field.Definition) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	remounted := f.registry.Retained(id)
	if err := f.registry.Register(id, def); err != nil {
		return err
	}
	if def.DraftEnabled && f.drafts != nil && !remounted {
		if value, ok, err := f.drafts.Get(f.id, id); err == nil && ok {
			f.registry.SetValue(id, value)
		}
	}
	return nil
}

// Unregister unmounts a field, discarding its errors and touched state. The
// last value stays in the snapshot so conditional re-mounts and submission
// still see it; any draft persists until a form-level clear.
func (f *Form) Unregister(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registry.Unregister(id)
	// Inline display stops, but the retained value keeps validating, so the
	// raw result and banner state are left to the next validation pass.
	delete(f.displayed, id)
}

// SetValue applies a value change. Draft-enabled fields write through to the
// store; the write is fire-and-forget and store errors are discarded. A
// change to an untouched field never validates; a change to a touched field
// revalidates the whole form immediately.
func (f *Form) SetValue(id string, value any) {
	f.mu.Lock()
	exists, touched := f.registry.SetValue(id, value)
	if !exists {
		f.mu.Unlock()
		return
	}
	var store draft.Store
	if f.drafts != nil && f.registry.DraftEnabled(id) {
		store = f.drafts
	}
	if touched {
		f.revalidateLocked()
	}
	f.mu.Unlock()

	if store != nil {
		_ = store.Set(f.id, id, value)
	}
}

// Focus marks a field focused. Entering focus never triggers validation.
func (f *Form) Focus(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registry.SetFocused(id, true)
}

// Blur marks a field unfocused and touched, then runs full-form validation:
// cross-field error context may change, so no single-field shortcut is taken.
func (f *Form) Blur(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.registry.Has(id) {
		return
	}
	f.registry.SetFocused(id, false)
	f.revalidateLocked()
}

// Submit attempts a submission. Every field is marked touched and full-form
// validation runs regardless of prior interaction. On a clean pass the
// external handler is invoked exactly once and the form enters
// StatusSubmitting; otherwise the banner state updates, focus moves to the
// first invalid field, and the attempt is rejected (not queued). Triggers
// while submitting are no-ops. Reports whether a submission began.
func (f *Form) Submit() bool {
	f.mu.Lock()
	if f.ctrl.submitting() {
		f.mu.Unlock()
		return false
	}

	f.registry.TouchAll()
	f.serverErr = nil
	f.revalidateLocked()

	if !f.lastResult.Empty() {
		f.bannerActive = true
		first := f.alerts.Compute(f.lastResult, f.registry.Order(), nil).FirstInvalidFieldID
		collaborator := f.collaborator
		f.mu.Unlock()

		if first != "" && collaborator != nil {
			collaborator.FocusCursorAtEnd(first)
		}
		return false
	}

	f.bannerActive = false
	f.ctrl.begin()
	snapshot := validate.Snapshot(f.registry.Snapshot())
	handler := f.submit
	f.mu.Unlock()

	if handler != nil {
		handler(snapshot)
	}
	return true
}

// FinishSubmission signals completion of the external submit handler; it is
// the only transition back to idle, and there is no timeout fallback. A nil
// serverErr means success and clears the form's drafts; a non-nil serverErr
// records the server-reported error for the banner. Calls while idle are
// no-ops.
func (f *Form) FinishSubmission(serverErr *alert.ServerError) {
	f.mu.Lock()
	if !f.ctrl.finish() {
		f.mu.Unlock()
		return
	}

	if serverErr != nil {
		f.serverErr = serverErr
		f.mu.Unlock()
		return
	}

	f.serverErr = nil
	store := f.drafts
	f.mu.Unlock()

	if store != nil {
		_ = store.ClearForm(f.id)
	}
}

// Status returns the submission state.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ctrl.status
}

// Alert returns the current banner state: the fix-errors banner while a
// rejected submission's errors remain, otherwise any server-reported error.
func (f *Form) Alert() alert.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := validate.Result{}
	if f.bannerActive {
		result = f.lastResult
	}
	return f.alerts.Compute(result, f.registry.Order(), f.serverErr)
}

// ScrollToFirstError re-issues the focus command for the first invalid
// field, for explicit "fix the errors" link activation.
func (f *Form) ScrollToFirstError() {
	state := f.Alert()

	f.mu.Lock()
	collaborator := f.collaborator
	f.mu.Unlock()

	if state.FirstInvalidFieldID != "" && collaborator != nil {
		collaborator.FocusCursorAtEnd(state.FirstInvalidFieldID)
	}
}

// Snapshot returns the value mapping validation and submission operate on,
// including retained values of unmounted fields.
func (f *Form) Snapshot() validate.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return validate.Snapshot(f.registry.Snapshot())
}

// Value returns a field's current value from the snapshot.
func (f *Form) Value(id string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.registry.Snapshot()[id]
	return value, ok
}

// DisplayedErrors returns the touched-filtered error mapping: an entry for
// field F exists if and only if F is touched and the latest validation result
// reported at least one message for it.
func (f *Form) DisplayedErrors() validate.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := validate.Result{}
	for id, messages := range f.displayed {
		out[id] = append([]string(nil), messages...)
	}
	return out
}

// FieldErrors returns the displayed error messages for one field.
func (f *Form) FieldErrors(id string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.displayed[id]...)
}

// FieldState returns a copy of a live field's state.
func (f *Form) FieldState(id string) (field.State, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registry.State(id)
}

// Order returns live field identifiers in registration order.
func (f *Form) Order() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registry.Order()
}

// revalidateLocked runs the validator over the current snapshot and replaces
// the displayed result with its touched-filtered slice. Fields whose entry
// disappeared lose their inline errors in the same pass.
func (f *Form) revalidateLocked() {
	result := validate.Result{}
	if f.validator != nil {
		if out := f.validator(validate.Snapshot(f.registry.Snapshot())); out != nil {
			result = out
		}
	}

	displayed := validate.Result{}
	for _, id := range f.registry.Order() {
		state, ok := f.registry.State(id)
		if !ok {
			continue
		}
		messages, invalid := result[id]
		if invalid && state.Touched {
			displayed[id] = append([]string(nil), messages...)
			f.registry.SetErrors(id, messages)
		} else {
			f.registry.SetErrors(id, nil)
		}
	}
	f.lastResult = result
	f.displayed = displayed

	if f.bannerActive && f.lastResult.Empty() {
		f.bannerActive = false
	}
}
