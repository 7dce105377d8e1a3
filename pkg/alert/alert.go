// Package alert aggregates validation output and server-reported errors into
// a single banner state, and resolves which field a "fix the errors" action
// should scroll to. Frontend-detected errors get the full inline treatment
// elsewhere; server errors surface here only, so a message is never shown in
// the banner and inline simultaneously.
package alert

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formstate/pkg/validate"
)

// DefaultFixErrorsMessage is the generic banner shown when inline validation
// errors are present.
const DefaultFixErrorsMessage = "Please fix the errors in the form before continuing."

// ServerError is an error reported by the external submit handler. FieldID is
// optional; when set, the error is associated with a field descriptively but
// is not rendered with the inline error style.
type ServerError struct {
	Message string
	FieldID string
}

// Error implements error.
func (e *ServerError) Error() string {
	if e.Targeted() {
		return fmt.Sprintf("server error on %s: %s", e.FieldID, e.Message)
	}
	return e.Message
}

// Targeted reports whether the error names a specific field.
func (e *ServerError) Targeted() bool {
	return e.FieldID != ""
}

// State is the aggregated banner output.
type State struct {
	// Banner is the message for the form-level alert area; empty means no
	// alert is shown.
	Banner string
	// FirstInvalidFieldID names the earliest registered field with an
	// inline validation error, or is empty when no scroll/focus action
	// applies.
	FirstInvalidFieldID string
	// ServerFieldLabel descriptively identifies the target of a
	// field-targeted server error. It never triggers inline highlighting.
	ServerFieldLabel string
}

// Option customises a Coordinator.
type Option func(*Coordinator)

// WithFixErrorsMessage overrides the generic validation banner text.
func WithFixErrorsMessage(message string) Option {
	return func(c *Coordinator) {
		if strings.TrimSpace(message) != "" {
			c.fixErrorsMessage = message
		}
	}
}

// WithFieldLabeler supplies human-readable labels for field identifiers,
// used when describing the target of a field-targeted server error.
func WithFieldLabeler(labeler func(fieldID string) string) Option {
	return func(c *Coordinator) {
		if labeler != nil {
			c.labeler = labeler
		}
	}
}

// Coordinator computes banner state. The zero value is not usable; call New.
type Coordinator struct {
	fixErrorsMessage string
	labeler          func(fieldID string) string
}

// New constructs a Coordinator with defaults applied.
func New(options ...Option) *Coordinator {
	c := &Coordinator{
		fixErrorsMessage: DefaultFixErrorsMessage,
		labeler:          func(fieldID string) string { return fieldID },
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Compute resolves the banner state for the given validation result, field
// registration order and optional server error. Validation errors take
// precedence: while any are present the server error is withheld rather than
// shown twice.
func (c *Coordinator) Compute(result validate.Result, order []string, serverErr *ServerError) State {
	if !result.Empty() {
		return State{
			Banner:              c.fixErrorsMessage,
			FirstInvalidFieldID: firstInvalid(result, order),
		}
	}

	if serverErr == nil {
		return State{}
	}

	message := sanitizeServerText(serverErr.Message)
	if message == "" {
		return State{}
	}
	if !serverErr.Targeted() {
		return State{Banner: message}
	}

	label := c.labeler(serverErr.FieldID)
	return State{
		Banner:           fmt.Sprintf("%s (%s)", message, label),
		ServerFieldLabel: label,
	}
}

// firstInvalid returns the identifier with an error that registered earliest.
// Result entries for identifiers outside the order (for example unmounted
// fields) cannot be scrolled to and are skipped.
func firstInvalid(result validate.Result, order []string) string {
	for _, id := range order {
		if _, ok := result[id]; ok {
			return id
		}
	}
	return ""
}

var (
	serverTextPolicyOnce sync.Once
	serverTextPolicy     *bluemonday.Policy
)

// sanitizeServerText strips any markup from server-provided error text before
// it reaches the banner. Server payloads are untrusted display input.
func sanitizeServerText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	serverTextPolicyOnce.Do(func() {
		serverTextPolicy = bluemonday.StrictPolicy()
	})
	cleaned := serverTextPolicy.Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
