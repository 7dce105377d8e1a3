// Package validate defines the validation contract the form core
// orchestrates: a caller-supplied pure function from a full value snapshot to
// a per-field error mapping. The package also ships composition helpers
// (Chain) and a rule compiler covering the canonical constraint kinds used
// across the formgen tooling (required, min/max, minLength/maxLength,
// pattern).
package validate

// Snapshot is the full value mapping for one form, keyed by field identifier.
type Snapshot map[string]any

// Func validates a snapshot and returns the per-field error mapping. It must
// be pure: no side effects, identical output for identical input. The form
// core decides when it runs and what happens to its output.
type Func func(Snapshot) Result

// Result maps field identifiers to ordered error messages. A key is present
// only when the field has at least one message; absence means the field is
// currently valid.
type Result map[string][]string

// Add appends messages to a field's entry, preserving insertion order and
// skipping empty strings.
func (r Result) Add(fieldID string, messages ...string) {
	for _, message := range messages {
		if message == "" {
			continue
		}
		r[fieldID] = append(r[fieldID], message)
	}
}

// Merge appends every entry of other onto r, keeping both sides' message
// order. Used to accumulate output from chained validators.
func (r Result) Merge(other Result) {
	for fieldID, messages := range other {
		r.Add(fieldID, messages...)
	}
}

// Empty reports whether no field has an error.
func (r Result) Empty() bool {
	return len(r) == 0
}

// Chain combines validators into one Func. Each validator's messages are
// appended after those of earlier validators in the chain, so a field checked
// by several validators accumulates every failure in chain order rather than
// keeping only the last one.
func Chain(funcs ...Func) Func {
	return func(snapshot Snapshot) Result {
		combined := Result{}
		for _, fn := range funcs {
			if fn == nil {
				continue
			}
			combined.Merge(fn(snapshot))
		}
		return combined
	}
}
