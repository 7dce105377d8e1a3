// Package definition describes forms declaratively: field names, defaults,
// draft opt-in and validation rules. Documents load from YAML or derive from
// an OpenAPI operation's request body, and build directly into a live form.
package definition

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/alert"
	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/validate"
)

// Field declares one form field.
type Field struct {
	Name     string          `yaml:"name" json:"name"`
	Label    string          `yaml:"label,omitempty" json:"label,omitempty"`
	Default  any             `yaml:"default,omitempty" json:"default,omitempty"`
	Draft    bool            `yaml:"draft,omitempty" json:"draft,omitempty"`
	Required bool            `yaml:"required,omitempty" json:"required,omitempty"`
	Rules    []validate.Rule `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// Document declares a whole form.
type Document struct {
	Form   string  `yaml:"form" json:"form"`
	Fields []Field `yaml:"fields" json:"fields"`
}

// Validate checks structural requirements: a form identifier and unique,
// non-empty field names.
func (d Document) Validate() error {
	if d.Form == "" {
		return fmt.Errorf("definition: form identifier is required")
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("definition: form %q declares no fields", d.Form)
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for _, fld := range d.Fields {
		if fld.Name == "" {
			return fmt.Errorf("definition: form %q has a field without a name", d.Form)
		}
		if _, dup := seen[fld.Name]; dup {
			return fmt.Errorf("definition: form %q declares field %q twice", d.Form, fld.Name)
		}
		seen[fld.Name] = struct{}{}
	}
	return nil
}

// LoadYAML parses a definition document.
func LoadYAML(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("definition: parse yaml: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// LoadYAMLFile reads and parses a definition document from disk.
func LoadYAMLFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("definition: read %s: %w", path, err)
	}
	return LoadYAML(data)
}

// Compile builds the document's declared constraints into a single validator.
// A Required flag becomes a leading required rule, so its message precedes
// other failures for the same field.
func (d Document) Compile() (validate.Func, error) {
	ruleSet := make(map[string][]validate.Rule, len(d.Fields))
	for _, fld := range d.Fields {
		rules := make([]validate.Rule, 0, len(fld.Rules)+1)
		if fld.Required {
			rules = append(rules, validate.Rule{Kind: validate.RuleRequired})
		}
		rules = append(rules, fld.Rules...)
		if len(rules) == 0 {
			continue
		}
		ruleSet[fld.Name] = rules
	}
	fn, err := validate.CompileAll(ruleSet)
	if err != nil {
		return nil, fmt.Errorf("definition: form %q: %w", d.Form, err)
	}
	return fn, nil
}

// Labeler returns a field labeler backed by the document's labels, falling
// back to the identifier.
func (d Document) Labeler() func(fieldID string) string {
	labels := make(map[string]string, len(d.Fields))
	for _, fld := range d.Fields {
		if fld.Label != "" {
			labels[fld.Name] = fld.Label
		}
	}
	return func(fieldID string) string {
		if label, ok := labels[fieldID]; ok {
			return label
		}
		return fieldID
	}
}

// NewForm builds a live form from the document: compiled validator, labeled
// alerts, and every declared field registered in order. Options given by the
// caller are applied after the document's own, so callers can still override
// the validator or coordinator.
func NewForm(doc Document, options ...form.Option) (*form.Form, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	validator, err := doc.Compile()
	if err != nil {
		return nil, err
	}

	opts := make([]form.Option, 0, len(options)+2)
	opts = append(opts,
		form.WithValidator(validator),
		form.WithAlerts(alert.New(alert.WithFieldLabeler(doc.Labeler()))),
	)
	opts = append(opts, options...)

	f, err := form.New(doc.Form, opts...)
	if err != nil {
		return nil, err
	}
	for _, fld := range doc.Fields {
		def := field.Definition{Default: fld.Default, DraftEnabled: fld.Draft}
		if err := f.Register(fld.Name, def); err != nil {
			return nil, fmt.Errorf("definition: register %s: %w", fld.Name, err)
		}
	}
	return f, nil
}
