// Package tui drives a form interactively from the terminal. The session is
// the input collaborator: it walks fields in registration order, feeds
// focus/change/blur events into the form, surfaces inline errors and banner
// output, and loops on rejected submissions until validation passes.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/validate"
)

const defaultMaxAttempts = 5

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDriver overrides the prompt driver; defaults to the survey driver.
func WithDriver(driver PromptDriver) SessionOption {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithLabeler supplies display labels for field identifiers.
func WithLabeler(labeler func(fieldID string) string) SessionOption {
	return func(s *Session) {
		if labeler != nil {
			s.labeler = labeler
		}
	}
}

// WithMaxAttempts caps how many rejected submissions the session retries
// before giving up.
func WithMaxAttempts(attempts int) SessionOption {
	return func(s *Session) {
		if attempts > 0 {
			s.maxAttempts = attempts
		}
	}
}

// Session runs one interactive pass over a form.
type Session struct {
	form        *form.Form
	driver      PromptDriver
	labeler     func(fieldID string) string
	maxAttempts int
	refocus     string
}

var _ form.Collaborator = (*Session)(nil)

// NewSession builds a session for the given form.
func NewSession(f *form.Form, options ...SessionOption) *Session {
	s := &Session{
		form:        f,
		driver:      NewSurveyDriver(),
		labeler:     func(fieldID string) string { return fieldID },
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// FocusCursorAtEnd implements form.Collaborator. A terminal has no cursor to
// move inside a rendered input, so the session records the request and
// re-prompts that field next, pre-filled with its current value.
func (s *Session) FocusCursorAtEnd(fieldID string) {
	s.refocus = fieldID
}

// Run prompts every field in registration order and then submits, re-prompting
// invalid fields until validation passes or the attempt cap is reached. It
// returns the submitted snapshot; submit-handler completion remains the
// caller's to signal on the form.
func (s *Session) Run(ctx context.Context) (validate.Snapshot, error) {
	for _, id := range s.form.Order() {
		if err := s.promptField(ctx, id); err != nil {
			return nil, err
		}
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if s.form.Submit() {
			return s.form.Snapshot(), nil
		}

		state := s.form.Alert()
		if state.Banner != "" {
			if err := s.driver.Info(ctx, state.Banner); err != nil {
				return nil, err
			}
		}

		if err := s.repromptInvalid(ctx, state.FirstInvalidFieldID); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: gave up after %d rejected submissions", ErrSubmissionIncomplete, s.maxAttempts)
}

// repromptInvalid walks invalid fields in registration order, starting with
// the focus target requested by the form.
func (s *Session) repromptInvalid(ctx context.Context, first string) error {
	if s.refocus != "" {
		first = s.refocus
		s.refocus = ""
	}
	if first != "" {
		if err := s.promptField(ctx, first); err != nil {
			return err
		}
	}
	for _, id := range s.form.Order() {
		if id == first || len(s.form.FieldErrors(id)) == 0 {
			continue
		}
		if err := s.promptField(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptField(ctx context.Context, id string) error {
	binding := s.form.Bind(id)
	label := s.labeler(id)

	if errs := binding.Errors(); len(errs) > 0 {
		if err := s.driver.Info(ctx, fmt.Sprintf("%s: %s", label, strings.Join(errs, "; "))); err != nil {
			return err
		}
	}

	binding.Focus()
	value, err := s.driver.Input(ctx, InputConfig{
		Message: label,
		Default: valueText(binding.Value()),
	})
	if err != nil {
		return err
	}
	binding.Change(value)
	binding.Blur()
	return nil
}

func valueText(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
