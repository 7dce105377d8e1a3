package field_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/field"
)

func TestRegistry_RegisterAndOrder(t *testing.T) {
	r := field.NewRegistry()
	for _, id := range []string{"first", "second", "third"} {
		if err := r.Register(id, field.Definition{}); err != nil {
			t.Fatalf("register %s: %v", id, err)
		}
	}

	want := []string{"first", "second", "third"}
	if diff := cmp.Diff(want, r.Order()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	r := field.NewRegistry()
	if err := r.Register("email", field.Definition{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	err := r.Register("email", field.Definition{})
	var dup *field.DuplicateFieldError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicateFieldError, got %v", err)
	}
}

func TestRegistry_BlurSetsTouched(t *testing.T) {
	r := field.NewRegistry()
	if err := r.Register("email", field.Definition{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	r.SetFocused("email", true)
	state, _ := r.State("email")
	if state.Touched {
		t.Fatal("entering focus must not mark touched")
	}
	if !state.Focused {
		t.Fatal("focus flag not set")
	}

	r.SetFocused("email", false)
	state, _ = r.State("email")
	if !state.Touched {
		t.Fatal("blur must mark touched")
	}
	if state.Focused {
		t.Fatal("focus flag not cleared")
	}
}

func TestRegistry_UnregisterRetainsValue(t *testing.T) {
	r := field.NewRegistry()
	if err := r.Register("note", field.Definition{Default: "seed"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	r.SetValue("note", "latest")
	r.Unregister("note")

	if r.Has("note") {
		t.Fatal("field still live after unregister")
	}
	if got := len(r.Order()); got != 0 {
		t.Fatalf("order length = %d, want 0", got)
	}
	want := map[string]any{"note": "latest"}
	if diff := cmp.Diff(want, r.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}

	// Re-mount restores the retained value and fresh flags.
	if err := r.Register("note", field.Definition{Default: "other"}); err != nil {
		t.Fatalf("re-register: %v", err)
	}
	state, _ := r.State("note")
	if state.Value != "latest" {
		t.Fatalf("remounted value = %v, want retained", state.Value)
	}
	if state.Touched || len(state.Errors) != 0 {
		t.Fatal("remounted field must start with fresh interaction state")
	}
}

func TestRegistry_TouchAll(t *testing.T) {
	r := field.NewRegistry()
	for _, id := range []string{"a", "b"} {
		if err := r.Register(id, field.Definition{}); err != nil {
			t.Fatalf("register %s: %v", id, err)
		}
	}

	r.TouchAll()
	for _, id := range []string{"a", "b"} {
		state, _ := r.State(id)
		if !state.Touched {
			t.Fatalf("field %s not touched", id)
		}
	}
}

func TestRegistry_SetErrorsCopies(t *testing.T) {
	r := field.NewRegistry()
	if err := r.Register("a", field.Definition{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	messages := []string{"one", "two"}
	r.SetErrors("a", messages)
	messages[0] = "mutated"

	state, _ := r.State("a")
	if diff := cmp.Diff([]string{"one", "two"}, state.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	r.SetErrors("a", nil)
	state, _ = r.State("a")
	if len(state.Errors) != 0 {
		t.Fatalf("errors not cleared: %v", state.Errors)
	}
}

func TestNewSetKey_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		key := field.NewSetKey()
		if key == "" {
			t.Fatal("empty set key")
		}
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate set key %q", key)
		}
		seen[key] = struct{}{}
	}
}
