package categories

import (
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/angelmondragon/bakery-catalog/pkg/errors"
)

const NameMaxLength = 100

// CategoryInput is the validated payload for creating or replacing a category.
type CategoryInput struct {
	Name string
}

// CategoryPatch carries optional category fields for a partial update.
type CategoryPatch struct {
	Name *string
}

// Normalize trims user supplied text.
func (in CategoryInput) Normalize() CategoryInput {
	in.Name = strings.TrimSpace(in.Name)
	return in
}

// Validate reports field level problems keyed by form/JSON field name.
func (in CategoryInput) Validate() pkgerrors.FieldErrors {
	fields := pkgerrors.FieldErrors{}
	switch {
	case in.Name == "":
		fields.Add("name", "is required")
	case utf8.RuneCountInString(in.Name) > NameMaxLength:
		fields.Add("name", "must be at most 100 characters")
	}
	return fields
}

func (p CategoryPatch) apply(in CategoryInput) CategoryInput {
	if p.Name != nil {
		in.Name = *p.Name
	}
	return in
}
