// Package forms binds urlencoded HTML form posts onto the catalog inputs and
// keeps the submitted values around for re-rendering.
package forms

import (
	"net/url"
	"strings"

	pkgerrors "github.com/angelmondragon/bakery-catalog/pkg/errors"
)

const (
	msgRequired        = "is required"
	msgInvalidCategory = "select a valid category"
	msgInvalidNumber   = "enter a number"
)

// fieldSet tracks errors for the fields a single form renders.
type fieldSet struct {
	Errors      pkgerrors.FieldErrors
	NonField    []string
	ownedFields []string
}

func newFieldSet(fields ...string) fieldSet {
	return fieldSet{Errors: pkgerrors.FieldErrors{}, ownedFields: fields}
}

func (f fieldSet) Valid() bool {
	return len(f.Errors) == 0 && len(f.NonField) == 0
}

// Error returns the message recorded for field, or "".
func (f fieldSet) Error(field string) string {
	return f.Errors[field]
}

func (f fieldSet) owns(field string) bool {
	for _, owned := range f.ownedFields {
		if owned == field {
			return true
		}
	}
	return false
}

// absorb copies the field details of err that belong to this form and reports
// whether anything was copied.
func (f *fieldSet) absorb(err error) bool {
	absorbed := false
	for field, msg := range pkgerrors.FieldErrorsOf(err) {
		if f.owns(field) {
			f.Errors.Add(field, msg)
			absorbed = true
		}
	}
	return absorbed
}

func (f *fieldSet) addNonField(msg string) {
	f.NonField = append(f.NonField, msg)
}

// checkbox reports whether an HTML checkbox was ticked. Browsers omit
// unticked boxes from the post entirely.
func checkbox(values url.Values, key string) bool {
	if _, ok := values[key]; !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(values.Get(key))) {
	case "", "on", "true", "1", "yes":
		return true
	}
	return false
}

// Form is implemented by every form in this package.
type Form interface {
	fields() *fieldSet
}

// Attach distributes a service error over the given forms. Field details land
// on the form that renders the field. A validation or conflict error that
// matches no field becomes a non-field error on the first form. It returns
// false when err is not a user correctable error.
func Attach(err error, first Form, rest ...Form) bool {
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) && !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		return false
	}
	absorbed := first.fields().absorb(err)
	for _, f := range rest {
		if f.fields().absorb(err) {
			absorbed = true
		}
	}
	if !absorbed {
		first.fields().addNonField(pkgerrors.As(err).Message())
	}
	return true
}
