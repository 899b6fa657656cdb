package errors

import "sort"

// FieldErrors maps an input field name to a single human readable message.
type FieldErrors map[string]string

// Add records msg for field unless the field already has an error.
func (f FieldErrors) Add(field, msg string) {
	if f == nil {
		return
	}
	if _, exists := f[field]; exists {
		return
	}
	f[field] = msg
}

// Merge copies every entry of other that is not already present.
func (f FieldErrors) Merge(other FieldErrors) {
	for field, msg := range other {
		f.Add(field, msg)
	}
}

func (f FieldErrors) Has(field string) bool {
	_, ok := f[field]
	return ok
}

// Fields returns the field names in sorted order.
func (f FieldErrors) Fields() []string {
	out := make([]string, 0, len(f))
	for field := range f {
		out = append(out, field)
	}
	sort.Strings(out)
	return out
}

// Err converts the collected messages into a validation error, or nil when empty.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	details := make(map[string]string, len(f))
	for field, msg := range f {
		details[field] = msg
	}
	return New(CodeValidation, "validation failed").WithDetails(details)
}

// FieldErrorsOf extracts field level details from a typed error. It returns nil
// when err carries no per-field details.
func FieldErrorsOf(err error) FieldErrors {
	typed := As(err)
	if typed == nil {
		return nil
	}
	switch details := typed.Details().(type) {
	case map[string]string:
		return FieldErrors(details)
	case FieldErrors:
		return details
	}
	return nil
}
