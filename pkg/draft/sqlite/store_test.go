package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/draft/sqlite"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "drafts.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RoundtripPreservesValueShape(t *testing.T) {
	store := openStore(t)

	cases := []struct {
		name  string
		value any
		want  any
	}{
		{name: "string", value: "in progress", want: "in progress"},
		{name: "number", value: 42.5, want: 42.5},
		{name: "bool", value: true, want: true},
		{name: "list", value: []any{"a", "b"}, want: []any{"a", "b"}},
		{name: "null", value: nil, want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := store.Set("form", tc.name, tc.value); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, ok, err := store.Get("form", tc.name)
			if err != nil || !ok {
				t.Fatalf("get = ok %v err %v", ok, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_MissingRecord(t *testing.T) {
	store := openStore(t)

	if _, ok, err := store.Get("form", "absent"); ok || err != nil {
		t.Fatalf("get absent = ok %v err %v", ok, err)
	}
}

func TestStore_OverwriteKeepsLatest(t *testing.T) {
	store := openStore(t)

	if err := store.Set("form", "field", "first"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set("form", "field", "second"); err != nil {
		t.Fatalf("set: %v", err)
	}

	value, ok, err := store.Get("form", "field")
	if err != nil || !ok || value != "second" {
		t.Fatalf("get = %v ok=%v err=%v, want second", value, ok, err)
	}
}

func TestStore_ClearFormIsScoped(t *testing.T) {
	store := openStore(t)
	_ = store.Set("testForm", "a", "1")
	_ = store.Set("testForm", "b", "2")
	_ = store.Set("otherForm", "a", "3")

	if err := store.ClearForm("testForm"); err != nil {
		t.Fatalf("clear form: %v", err)
	}

	if _, ok, _ := store.Get("testForm", "a"); ok {
		t.Fatal("testForm record survived clear")
	}
	if value, ok, _ := store.Get("otherForm", "a"); !ok || value != "3" {
		t.Fatal("otherForm record must remain")
	}
}

func TestStore_ClearAll(t *testing.T) {
	store := openStore(t)
	_ = store.Set("one", "a", "1")
	_ = store.Set("two", "b", "2")

	if err := store.ClearAll(); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	if _, ok, _ := store.Get("one", "a"); ok {
		t.Fatal("record survived clear all")
	}
}
