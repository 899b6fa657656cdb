package forms

import (
	"net/url"

	"github.com/angelmondragon/bakery-catalog/internal/categories"
)

type CategoryForm struct {
	fieldSet
	Name string
}

func NewCategoryForm() *CategoryForm {
	return &CategoryForm{fieldSet: newFieldSet("name")}
}

// BindCategoryForm reads the posted category fields.
func BindCategoryForm(values url.Values) *CategoryForm {
	f := NewCategoryForm()
	f.Name = values.Get("name")
	return f
}

// Validate records field errors and returns the normalized input.
func (f *CategoryForm) Validate() (categories.CategoryInput, bool) {
	input := categories.CategoryInput{Name: f.Name}.Normalize()
	f.Errors.Merge(input.Validate())
	return input, f.Valid()
}

func (f *CategoryForm) fields() *fieldSet {
	return &f.fieldSet
}
