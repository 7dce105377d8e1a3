package definition

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/pkg/validate"
)

// draftExtensionKey marks request body properties whose in-progress values
// should persist as drafts: `x-draft: true` on the property schema.
const draftExtensionKey = "x-draft"

// FromOpenAPI derives a Document from the request body of the operation with
// the given operationId. Property constraints (required, min/max,
// minLength/maxLength, pattern) map onto validation rules; only top-level
// properties of the JSON body become fields, sorted by name for deterministic
// output.
func FromOpenAPI(ctx context.Context, data []byte, operationID string) (Document, error) {
	if len(data) == 0 {
		return Document{}, fmt.Errorf("definition: openapi document is empty")
	}
	if operationID == "" {
		return Document{}, fmt.Errorf("definition: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return Document{}, fmt.Errorf("definition: load openapi document: %w", err)
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return Document{}, fmt.Errorf("definition: operation %q not found", operationID)
	}

	schema := requestBodySchema(operation)
	if schema == nil {
		return Document{}, fmt.Errorf("definition: operation %q has no usable request body schema", operationID)
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := Document{Form: operationID}
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		doc.Fields = append(doc.Fields, fieldFromSchema(name, ref.Value, required[name]))
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestBodySchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldFromSchema(name string, src *openapi3.Schema, required bool) Field {
	fld := Field{
		Name:     name,
		Label:    src.Title,
		Default:  src.Default,
		Required: required,
		Draft:    draftFlag(src.Extensions),
	}

	if src.Min != nil {
		fld.Rules = append(fld.Rules, validate.Rule{
			Kind:   validate.RuleMin,
			Params: map[string]string{"value": formatFloat(*src.Min)},
		})
	}
	if src.Max != nil {
		fld.Rules = append(fld.Rules, validate.Rule{
			Kind:   validate.RuleMax,
			Params: map[string]string{"value": formatFloat(*src.Max)},
		})
	}
	if src.MinLength != 0 {
		fld.Rules = append(fld.Rules, validate.Rule{
			Kind:   validate.RuleMinLength,
			Params: map[string]string{"value": strconv.FormatUint(src.MinLength, 10)},
		})
	}
	if src.MaxLength != nil {
		fld.Rules = append(fld.Rules, validate.Rule{
			Kind:   validate.RuleMaxLength,
			Params: map[string]string{"value": strconv.FormatUint(*src.MaxLength, 10)},
		})
	}
	if src.Pattern != "" {
		fld.Rules = append(fld.Rules, validate.Rule{
			Kind:   validate.RulePattern,
			Params: map[string]string{"pattern": src.Pattern},
		})
	}
	return fld
}

func draftFlag(extensions map[string]any) bool {
	raw, ok := extensions[draftExtensionKey]
	if !ok {
		return false
	}
	flag, ok := raw.(bool)
	return ok && flag
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
