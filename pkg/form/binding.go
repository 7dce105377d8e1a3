package form

// Binding is the per-field surface handed to an input collaborator: current
// value and errors for display, plus the interaction handlers the collaborator
// must invoke on user input.
type Binding struct {
	form *Form
	id   string
}

// Bind returns the input binding for a field identifier.
func (f *Form) Bind(id string) Binding {
	return Binding{form: f, id: id}
}

// ID returns the bound field identifier.
func (b Binding) ID() string {
	return b.id
}

// Value returns the field's current value.
func (b Binding) Value() any {
	value, _ := b.form.Value(b.id)
	return value
}

// Errors returns the field's displayed error messages in order.
func (b Binding) Errors() []string {
	return b.form.FieldErrors(b.id)
}

// Change reports a user edit.
func (b Binding) Change(value any) {
	b.form.SetValue(b.id, value)
}

// Focus reports the input gaining focus.
func (b Binding) Focus() {
	b.form.Focus(b.id)
}

// Blur reports the input losing focus.
func (b Binding) Blur() {
	b.form.Blur(b.id)
}
