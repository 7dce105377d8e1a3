package field

import (
	"fmt"

	"github.com/google/uuid"
)

// State is a snapshot of a single registered field. Copies are returned to
// callers; mutations go through Registry methods.
type State struct {
	ID           string
	Value        any
	Default      any
	Touched      bool
	Focused      bool
	Errors       []string
	DraftEnabled bool
}

// Definition carries the registration-time configuration for a field.
type Definition struct {
	// Default seeds the field value until user input or a restored draft
	// replaces it.
	Default any
	// DraftEnabled opts the field into write-through draft persistence.
	// Fields default to no persistence; sensitive inputs stay opted out.
	DraftEnabled bool
}

// DuplicateFieldError reports a second registration for an identifier that is
// already live. It is a programmer error and fails fast at mount time.
type DuplicateFieldError struct {
	ID string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("field: duplicate registration for %q", e.ID)
}

// Registry tracks the live field set for one form instance. It is not
// goroutine safe; the owning form serializes access.
type Registry struct {
	fields map[string]*State
	order  []string
	// retained keeps the last known value of unregistered fields so that
	// conditionally unmounted fields still contribute to validation and
	// submission snapshots, and restore their value when re-mounted.
	retained map[string]any
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fields:   make(map[string]*State),
		retained: make(map[string]any),
	}
}

// Register adds a field under the given identifier. A previously
// unregistered field may re-register; its retained value wins over the
// definition default. Registering an identifier that is currently live
// returns a *DuplicateFieldError.
func (r *Registry) Register(id string, def Definition) error {
	if id == "" {
		return fmt.Errorf("field: identifier is required")
	}
	if _, live := r.fields[id]; live {
		return &DuplicateFieldError{ID: id}
	}

	value := def.Default
	if retained, ok := r.retained[id]; ok {
		value = retained
		delete(r.retained, id)
	}

	r.fields[id] = &State{
		ID:           id,
		Value:        value,
		Default:      def.Default,
		DraftEnabled: def.DraftEnabled,
	}
	r.order = append(r.order, id)
	return nil
}

// Unregister removes a field's live state. Errors, touched and focus flags
// are discarded; the last value is retained so snapshots stay complete for
// dynamic forms that may re-mount the field.
func (r *Registry) Unregister(id string) {
	state, ok := r.fields[id]
	if !ok {
		return
	}
	r.retained[id] = state.Value
	delete(r.fields, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// SetValue updates a live field's value. It reports whether the field exists
// and whether it was already touched, which drives revalidation policy.
func (r *Registry) SetValue(id string, value any) (exists, touched bool) {
	state, ok := r.fields[id]
	if !ok {
		return false, false
	}
	state.Value = value
	return true, state.Touched
}

// SetFocused toggles the focus flag. Leaving focus marks the field touched;
// entering focus never does.
func (r *Registry) SetFocused(id string, focused bool) {
	state, ok := r.fields[id]
	if !ok {
		return
	}
	state.Focused = focused
	if !focused {
		state.Touched = true
	}
}

// TouchAll marks every live field touched. Used by submit so previously
// hidden errors become visible.
func (r *Registry) TouchAll() {
	for _, state := range r.fields {
		state.Touched = true
	}
}

// SetErrors replaces the displayed error list for a field. Passing an empty
// slice or nil clears it.
func (r *Registry) SetErrors(id string, messages []string) {
	state, ok := r.fields[id]
	if !ok {
		return
	}
	if len(messages) == 0 {
		state.Errors = nil
		return
	}
	state.Errors = append([]string(nil), messages...)
}

// State returns a copy of a live field's state.
func (r *Registry) State(id string) (State, bool) {
	state, ok := r.fields[id]
	if !ok {
		return State{}, false
	}
	out := *state
	out.Errors = append([]string(nil), state.Errors...)
	return out, ok
}

// Retained reports whether an unregistered field left a value behind for the
// identifier. Used to let a re-mounted field's last value win over a draft.
func (r *Registry) Retained(id string) bool {
	_, ok := r.retained[id]
	return ok
}

// Has reports whether the identifier is live.
func (r *Registry) Has(id string) bool {
	_, ok := r.fields[id]
	return ok
}

// DraftEnabled reports whether a live field opted into draft persistence.
// Unregistered identifiers report false, preserving the invariant that
// non-draft fields never reach the store.
func (r *Registry) DraftEnabled(id string) bool {
	state, ok := r.fields[id]
	return ok && state.DraftEnabled
}

// Order returns live field identifiers in registration order.
func (r *Registry) Order() []string {
	return append([]string(nil), r.order...)
}

// Snapshot returns the value mapping used for validation and submission: all
// live values plus retained values from unregistered fields.
func (r *Registry) Snapshot() map[string]any {
	snap := make(map[string]any, len(r.fields)+len(r.retained))
	for id, value := range r.retained {
		snap[id] = value
	}
	for id, state := range r.fields {
		snap[id] = state.Value
	}
	return snap
}

// NewSetKey returns a stable unique token for keying dynamic nested field
// sets. Tokens survive row insertion, removal and reordering where positional
// indices would not.
func NewSetKey() string {
	return uuid.NewString()
}
