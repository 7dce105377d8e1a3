// Package formstate implements the interaction core of a form: which fields
// exist, when the caller-supplied validator runs, how per-field errors and
// touched state are tracked, how drafts persist, and how submission is gated
// against duplicate triggers. Rendering, layout and platform input behavior
// stay with external collaborators.
//
// Typical usage:
//
//	f, err := formstate.New("paymentDetails",
//		form.WithValidator(validator),
//		form.WithDrafts(store),
//		form.WithSubmitHandler(handler),
//	)
//	f.Register("routingNumber", field.Definition{DraftEnabled: true})
//	...
//	if f.Submit() {
//		// handler was invoked; signal completion when it finishes:
//		f.FinishSubmission(nil)
//	}
package formstate

import (
	"github.com/goliatone/go-formstate/pkg/alert"
	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/draft"
	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/validate"
)

// Form re-exports the live form instance type.
type Form = form.Form

// Option configures a Form.
type Option = form.Option

// FieldDefinition carries per-field registration configuration.
type FieldDefinition = field.Definition

// DuplicateFieldError is returned when a field identifier is registered twice.
type DuplicateFieldError = field.DuplicateFieldError

// Snapshot is the full value mapping handed to validators and submit handlers.
type Snapshot = validate.Snapshot

// Result maps field identifiers to ordered error messages.
type Result = validate.Result

// ValidatorFunc is the caller-supplied pure validation function.
type ValidatorFunc = validate.Func

// DraftStore is the external draft persistence collaborator.
type DraftStore = draft.Store

// ServerError is an error reported by the external submit handler.
type ServerError = alert.ServerError

// AlertState is the aggregated banner output.
type AlertState = alert.State

// New constructs a form for the given identifier.
func New(id string, options ...form.Option) (*form.Form, error) {
	return form.New(id, options...)
}

// NewFromDefinition builds a form from a declarative definition document:
// compiled validation rules, labeled alerts, fields registered in order.
func NewFromDefinition(doc definition.Document, options ...form.Option) (*form.Form, error) {
	return definition.NewForm(doc, options...)
}

// Chain combines validators, accumulating per-field messages in order.
func Chain(funcs ...validate.Func) validate.Func {
	return validate.Chain(funcs...)
}

// NewSetKey returns a stable unique token for keying dynamic nested field
// sets.
func NewSetKey() string {
	return field.NewSetKey()
}
