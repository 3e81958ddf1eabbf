package pages

import "github.com/thoas/go-funk"

// Form keeps input values and the server's per-field validation messages.
// Changing a field's value drops that field's message straight away.
type Form struct {
	fields []string
	values map[string]string
	errors map[string]string
}

func newForm(fields ...string) Form {
	return Form{
		fields: fields,
		values: map[string]string{},
		errors: map[string]string{},
	}
}

func (f *Form) has(field string) bool {
	return funk.ContainsString(f.fields, field)
}

// Set changes a value. Unknown fields are ignored. It reports whether the
// value changed.
func (f *Form) Set(field, value string) bool {
	if !f.has(field) || f.values[field] == value {
		return false
	}
	f.values[field] = value
	delete(f.errors, field)
	return true
}

func (f *Form) Value(field string) string {
	return f.values[field]
}

func (f *Form) Error(field string) string {
	return f.errors[field]
}

func (f *Form) SetErrors(errors map[string]string) {
	f.errors = make(map[string]string, len(errors))
	for field, msg := range errors {
		f.errors[field] = msg
	}
}

func (f *Form) ClearErrors() {
	f.errors = map[string]string{}
}

// Values returns a copy of all values.
func (f *Form) Values() map[string]string {
	result := make(map[string]string, len(f.values))
	for k, v := range f.values {
		result[k] = v
	}
	return result
}

// Errors returns a copy of all validation messages.
func (f *Form) Errors() map[string]string {
	result := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		result[k] = v
	}
	return result
}
