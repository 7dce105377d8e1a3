package draft_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-formstate/pkg/draft"
)

func TestMemoryStore_Roundtrip(t *testing.T) {
	store := draft.NewMemoryStore()

	if _, ok, err := store.Get("form", "field"); ok || err != nil {
		t.Fatalf("empty store get = ok %v err %v", ok, err)
	}

	if err := store.Set("form", "field", "draft"); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := store.Get("form", "field")
	if err != nil || !ok || value != "draft" {
		t.Fatalf("get = %v ok=%v err=%v", value, ok, err)
	}

	// Overwrite keeps the latest value only.
	if err := store.Set("form", "field", "newer"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if value, _, _ := store.Get("form", "field"); value != "newer" {
		t.Fatalf("value = %v, want newer", value)
	}
}

func TestMemoryStore_ClearFormIsScoped(t *testing.T) {
	store := draft.NewMemoryStore()
	_ = store.Set("testForm", "a", 1)
	_ = store.Set("testForm", "b", 2)
	_ = store.Set("otherForm", "a", 3)

	if err := store.ClearForm("testForm"); err != nil {
		t.Fatalf("clear form: %v", err)
	}

	for _, fieldID := range []string{"a", "b"} {
		if _, ok, _ := store.Get("testForm", fieldID); ok {
			t.Fatalf("record for testForm/%s survived clear", fieldID)
		}
	}
	if value, ok, _ := store.Get("otherForm", "a"); !ok || value != 3 {
		t.Fatal("record for otherForm must remain")
	}
}

func TestMemoryStore_ClearAll(t *testing.T) {
	store := draft.NewMemoryStore()
	_ = store.Set("one", "a", 1)
	_ = store.Set("two", "b", 2)

	if err := store.ClearAll(); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	if _, ok, _ := store.Get("one", "a"); ok {
		t.Fatal("record survived clear all")
	}
	if _, ok, _ := store.Get("two", "b"); ok {
		t.Fatal("record survived clear all")
	}
}

type failingStore struct {
	draft.Store
}

func (failingStore) ClearAll() error {
	return errors.New("disk unplugged")
}

func TestLifecycle_LogoutClearsEverySubscriber(t *testing.T) {
	first := draft.NewMemoryStore()
	second := draft.NewMemoryStore()
	_ = first.Set("f", "a", 1)
	_ = second.Set("g", "b", 2)

	var lifecycle draft.Lifecycle
	lifecycle.Subscribe(first)
	lifecycle.Subscribe(second)
	lifecycle.Subscribe(nil)

	if err := lifecycle.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok, _ := first.Get("f", "a"); ok {
		t.Fatal("first store not cleared")
	}
	if _, ok, _ := second.Get("g", "b"); ok {
		t.Fatal("second store not cleared")
	}
}

func TestLifecycle_LogoutKeepsGoingOnFailure(t *testing.T) {
	healthy := draft.NewMemoryStore()
	_ = healthy.Set("f", "a", 1)

	var lifecycle draft.Lifecycle
	lifecycle.Subscribe(failingStore{})
	lifecycle.Subscribe(healthy)

	if err := lifecycle.Logout(); err == nil {
		t.Fatal("expected joined error from failing store")
	}
	if _, ok, _ := healthy.Get("f", "a"); ok {
		t.Fatal("healthy store must still be cleared")
	}
}
