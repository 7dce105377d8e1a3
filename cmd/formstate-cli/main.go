package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/draft"
	sqlitedraft "github.com/goliatone/go-formstate/pkg/draft/sqlite"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/tui"
)

func main() {
	defPath := flag.String("definition", "form.yaml", "form definition document (YAML)")
	formID := flag.String("form", "", "override the form identifier from the definition")
	drafts := flag.String("drafts", "", "SQLite path for draft persistence (in-memory when empty)")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	doc, err := definition.LoadYAMLFile(*defPath)
	if err != nil {
		log.Fatalf("Failed to load definition: %v", err)
	}
	if *formID != "" {
		doc.Form = *formID
	}

	store, closeStore, err := openDrafts(*drafts)
	if err != nil {
		log.Fatalf("Failed to open draft store: %v", err)
	}
	defer closeStore()

	f, err := definition.NewForm(doc, form.WithDrafts(store))
	if err != nil {
		log.Fatalf("Failed to build form: %v", err)
	}

	session := tui.NewSession(f, tui.WithLabeler(doc.Labeler()))
	snapshot, err := session.Run(ctx)
	if err != nil {
		log.Fatalf("Session failed: %v", err)
	}
	// Local output is the whole submission; signal success so drafts clear.
	f.FinishSubmission(nil)

	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode values: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Values written to %s\n", *output)
	} else {
		fmt.Println(string(payload))
	}
}

func openDrafts(path string) (draft.Store, func(), error) {
	if path == "" {
		return draft.NewMemoryStore(), func() {}, nil
	}
	store, err := sqlitedraft.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { store.Close() }, nil
}
