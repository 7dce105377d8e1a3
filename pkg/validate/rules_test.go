package validate_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/validate"
)

func TestCompile_RuleKinds(t *testing.T) {
	cases := []struct {
		name  string
		rules []validate.Rule
		value any
		want  []string
	}{
		{
			name:  "required rejects empty string",
			rules: []validate.Rule{{Kind: validate.RuleRequired}},
			value: "  ",
			want:  []string{"Required"},
		},
		{
			name:  "required rejects nil",
			rules: []validate.Rule{{Kind: validate.RuleRequired}},
			value: nil,
			want:  []string{"Required"},
		},
		{
			name:  "required accepts value",
			rules: []validate.Rule{{Kind: validate.RuleRequired}},
			value: "ok",
		},
		{
			name:  "min rejects smaller number",
			rules: []validate.Rule{{Kind: validate.RuleMin, Params: map[string]string{"value": "18"}}},
			value: 12,
			want:  []string{"Must be at least 18"},
		},
		{
			name:  "min parses numeric strings",
			rules: []validate.Rule{{Kind: validate.RuleMin, Params: map[string]string{"value": "18"}}},
			value: "12",
			want:  []string{"Must be at least 18"},
		},
		{
			name:  "max rejects larger number",
			rules: []validate.Rule{{Kind: validate.RuleMax, Params: map[string]string{"value": "10"}}},
			value: 11.5,
			want:  []string{"Must be at most 10"},
		},
		{
			name:  "minLength counts runes",
			rules: []validate.Rule{{Kind: validate.RuleMinLength, Params: map[string]string{"value": "3"}}},
			value: "ab",
			want:  []string{"Must be at least 3 characters"},
		},
		{
			name:  "minLength ignores empty values",
			rules: []validate.Rule{{Kind: validate.RuleMinLength, Params: map[string]string{"value": "3"}}},
			value: "",
		},
		{
			name:  "maxLength rejects long values",
			rules: []validate.Rule{{Kind: validate.RuleMaxLength, Params: map[string]string{"value": "4"}}},
			value: "toolong",
			want:  []string{"Must be at most 4 characters"},
		},
		{
			name:  "pattern rejects mismatch",
			rules: []validate.Rule{{Kind: validate.RulePattern, Params: map[string]string{"pattern": `^\d{9}$`}}},
			value: "12ab",
			want:  []string{"Invalid format"},
		},
		{
			name:  "pattern ignores empty values",
			rules: []validate.Rule{{Kind: validate.RulePattern, Params: map[string]string{"pattern": `^\d{9}$`}}},
			value: "",
		},
		{
			name: "custom message overrides default",
			rules: []validate.Rule{{
				Kind:    validate.RuleRequired,
				Message: "Routing number is required",
			}},
			value: "",
			want:  []string{"Routing number is required"},
		},
		{
			name: "multiple failing rules accumulate in order",
			rules: []validate.Rule{
				{Kind: validate.RuleMinLength, Params: map[string]string{"value": "5"}},
				{Kind: validate.RulePattern, Params: map[string]string{"pattern": `^[a-z]+$`}},
			},
			value: "A1",
			want: []string{
				"Must be at least 5 characters",
				"Invalid format",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fn, err := validate.Compile("value", tc.rules)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			got := fn(validate.Snapshot{"value": tc.value})

			want := validate.Result{}
			if len(tc.want) > 0 {
				want["value"] = tc.want
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompile_InvalidConfigurations(t *testing.T) {
	cases := []struct {
		name    string
		fieldID string
		rules   []validate.Rule
	}{
		{name: "missing field id", fieldID: "", rules: nil},
		{
			name:    "unknown kind",
			fieldID: "a",
			rules:   []validate.Rule{{Kind: "bogus"}},
		},
		{
			name:    "non-numeric bound",
			fieldID: "a",
			rules:   []validate.Rule{{Kind: validate.RuleMin, Params: map[string]string{"value": "much"}}},
		},
		{
			name:    "bad pattern",
			fieldID: "a",
			rules:   []validate.Rule{{Kind: validate.RulePattern, Params: map[string]string{"pattern": "("}}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := validate.Compile(tc.fieldID, tc.rules); err == nil {
				t.Fatal("expected compile error")
			}
		})
	}
}
