// Package field implements the registry that tracks live form fields: their
// values, touched/focused flags, inline error display, and draft eligibility.
// Fields are keyed by stable, caller-supplied identifiers rather than
// positional index so dynamic field sets survive insertion and removal without
// corrupting neighbouring state. Registration order is recorded and exposed so
// consumers can resolve "first invalid field" deterministically.
package field
