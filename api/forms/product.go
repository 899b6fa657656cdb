package forms

import (
	"net/url"
	"strconv"
	"strings"

	product "github.com/angelmondragon/bakery-catalog/internal/products"
	"github.com/shopspring/decimal"
)

// ProductForm holds the raw product fields of the create page.
type ProductForm struct {
	fieldSet
	Name        string
	Category    string
	Description string
	IsActive    bool
}

func NewProductForm() *ProductForm {
	return &ProductForm{
		fieldSet: newFieldSet("name", "category", "description", "is_active"),
		IsActive: true,
	}
}

func BindProductForm(values url.Values) *ProductForm {
	f := NewProductForm()
	f.Name = values.Get("name")
	f.Category = strings.TrimSpace(values.Get("category"))
	f.Description = values.Get("description")
	f.IsActive = checkbox(values, "is_active")
	return f
}

// Selected reports whether the category option with id was submitted.
func (f *ProductForm) Selected(id uint) bool {
	return f.Category == strconv.FormatUint(uint64(id), 10)
}

// Validate parses and validates the product fields.
func (f *ProductForm) Validate() (product.ProductInput, bool) {
	input := product.ProductInput{
		Name:        f.Name,
		Description: f.Description,
		IsActive:    f.IsActive,
	}
	if f.Category != "" {
		id, err := strconv.ParseUint(f.Category, 10, 0)
		if err != nil || id == 0 {
			f.Errors.Add("category", msgInvalidCategory)
		} else {
			categoryID := uint(id)
			input.CategoryID = &categoryID
		}
	}
	input = input.Normalize()
	f.Errors.Merge(input.Validate())
	return input, f.Valid()
}

func (f *ProductForm) fields() *fieldSet {
	return &f.fieldSet
}

// VariantForm holds the raw variant fields of the create page.
type VariantForm struct {
	fieldSet
	Size        string
	Price       string
	SKU         string
	IsAvailable bool
}

func NewVariantForm() *VariantForm {
	return &VariantForm{
		fieldSet:    newFieldSet("size", "price", "sku", "is_available"),
		IsAvailable: true,
	}
}

func BindVariantForm(values url.Values) *VariantForm {
	f := NewVariantForm()
	f.Size = values.Get("size")
	f.Price = strings.TrimSpace(values.Get("price"))
	f.SKU = values.Get("sku")
	f.IsAvailable = checkbox(values, "is_available")
	return f
}

// Validate parses and validates the variant fields.
func (f *VariantForm) Validate() (product.VariantInput, bool) {
	input := product.VariantInput{
		Size:        f.Size,
		SKU:         f.SKU,
		IsAvailable: f.IsAvailable,
	}
	switch price, err := decimal.NewFromString(f.Price); {
	case f.Price == "":
		f.Errors.Add("price", msgRequired)
	case err != nil:
		f.Errors.Add("price", msgInvalidNumber)
	default:
		input.Price = price
	}
	input = input.Normalize()
	fields := input.Validate()
	if f.Errors.Has("price") {
		delete(fields, "price")
	}
	f.Errors.Merge(fields)
	return input, f.Valid()
}

func (f *VariantForm) fields() *fieldSet {
	return &f.fieldSet
}
