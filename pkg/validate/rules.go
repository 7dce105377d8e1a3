package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Canonical rule kinds. Numeric bounds and length limits encode their
// threshold in Params["value"]; pattern rules keep the expression in
// Params["pattern"]. The identifiers match the constraint vocabulary used by
// the formgen model builder so definitions round-trip between tools.
const (
	RuleRequired  = "required"
	RuleMin       = "min"
	RuleMax       = "max"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
)

// Rule is a single declarative constraint on one field. Message, when set,
// overrides the built-in text for the rule.
type Rule struct {
	Kind    string            `json:"kind" yaml:"kind"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty"`
}

func (r Rule) param(key string) string {
	return strings.TrimSpace(r.Params[key])
}

func (r Rule) message(fallback string) string {
	if strings.TrimSpace(r.Message) != "" {
		return r.Message
	}
	return fallback
}

// Compile turns the rules for one field into a Func that checks that field's
// value in the snapshot. Rules are evaluated in declaration order and every
// failing rule contributes its own message, so one pass can report several
// problems for the same field.
func Compile(fieldID string, rules []Rule) (Func, error) {
	if fieldID == "" {
		return nil, fmt.Errorf("validate: field identifier is required")
	}

	checks := make([]func(any) string, 0, len(rules))
	for _, rule := range rules {
		check, err := compileRule(fieldID, rule)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}

	return func(snapshot Snapshot) Result {
		result := Result{}
		value := snapshot[fieldID]
		for _, check := range checks {
			if message := check(value); message != "" {
				result.Add(fieldID, message)
			}
		}
		return result
	}, nil
}

// CompileAll compiles a rule set covering several fields into a single Func.
func CompileAll(ruleSet map[string][]Rule) (Func, error) {
	funcs := make([]Func, 0, len(ruleSet))
	for fieldID, rules := range ruleSet {
		fn, err := Compile(fieldID, rules)
		if err != nil {
			return nil, err
		}
		funcs = append(funcs, fn)
	}
	return Chain(funcs...), nil
}

func compileRule(fieldID string, rule Rule) (func(any) string, error) {
	switch rule.Kind {
	case RuleRequired:
		message := rule.message("Required")
		return func(value any) string {
			if isEmpty(value) {
				return message
			}
			return ""
		}, nil

	case RuleMin, RuleMax:
		raw := rule.param("value")
		bound, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("validate: field %q: %s bound %q: %w", fieldID, rule.Kind, raw, err)
		}
		if rule.Kind == RuleMin {
			message := rule.message(fmt.Sprintf("Must be at least %s", raw))
			return func(value any) string {
				if n, ok := toNumber(value); ok && n < bound {
					return message
				}
				return ""
			}, nil
		}
		message := rule.message(fmt.Sprintf("Must be at most %s", raw))
		return func(value any) string {
			if n, ok := toNumber(value); ok && n > bound {
				return message
			}
			return ""
		}, nil

	case RuleMinLength, RuleMaxLength:
		raw := rule.param("value")
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("validate: field %q: %s limit %q: %w", fieldID, rule.Kind, raw, err)
		}
		if rule.Kind == RuleMinLength {
			message := rule.message(fmt.Sprintf("Must be at least %d characters", limit))
			return func(value any) string {
				if s, ok := toText(value); ok && s != "" && utf8.RuneCountInString(s) < limit {
					return message
				}
				return ""
			}, nil
		}
		message := rule.message(fmt.Sprintf("Must be at most %d characters", limit))
		return func(value any) string {
			if s, ok := toText(value); ok && utf8.RuneCountInString(s) > limit {
				return message
			}
			return ""
		}, nil

	case RulePattern:
		expr := rule.param("pattern")
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("validate: field %q: pattern %q: %w", fieldID, expr, err)
		}
		message := rule.message("Invalid format")
		return func(value any) string {
			if s, ok := toText(value); ok && s != "" && !re.MatchString(s) {
				return message
			}
			return ""
		}, nil

	default:
		return nil, fmt.Errorf("validate: field %q: unknown rule kind %q", fieldID, rule.Kind)
	}
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

func toText(value any) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
