package product

import (
	"strconv"
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/angelmondragon/bakery-catalog/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	NameMaxLength = 200
	SizeMaxLength = 50
	SKUMaxLength  = 50

	PriceMaxDigits     = 10
	PriceDecimalPlaces = 2
)

const (
	msgRequired        = "is required"
	msgInvalidCategory = "select a valid category"
	msgDuplicateSKU    = "product variant with this sku already exists"
)

// priceCeiling is the first value that no longer fits numeric(10,2).
var priceCeiling = decimal.New(1, PriceMaxDigits-PriceDecimalPlaces)

// priceCoefficientLimit caps unscaled digits, trailing zeros included.
const priceCoefficientLimit = 32

// ProductInput is the validated payload for creating or replacing a product.
type ProductInput struct {
	Name        string
	CategoryID  *uint
	Description string
	IsActive    bool
}

// ProductPatch carries optional product fields for a partial update.
type ProductPatch struct {
	Name        *string
	CategoryID  *uint
	Description *string
	IsActive    *bool
}

// VariantInput is the validated payload for a product variant.
type VariantInput struct {
	Size        string
	Price       decimal.Decimal
	SKU         string
	IsAvailable bool
}

func (in ProductInput) Normalize() ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

// Validate reports field level problems keyed by form/JSON field name.
func (in ProductInput) Validate() pkgerrors.FieldErrors {
	return in.validate(true)
}

// validate optionally tolerates a missing category, which partial updates of
// products orphaned by a category delete rely on.
func (in ProductInput) validate(requireCategory bool) pkgerrors.FieldErrors {
	fields := pkgerrors.FieldErrors{}
	checkText(fields, "name", in.Name, NameMaxLength)
	switch {
	case in.CategoryID != nil && *in.CategoryID == 0:
		fields.Add("category", msgInvalidCategory)
	case in.CategoryID == nil && requireCategory:
		fields.Add("category", msgRequired)
	}
	return fields
}

func (p ProductPatch) apply(in ProductInput) ProductInput {
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.CategoryID != nil {
		id := *p.CategoryID
		in.CategoryID = &id
	}
	if p.Description != nil {
		in.Description = *p.Description
	}
	if p.IsActive != nil {
		in.IsActive = *p.IsActive
	}
	return in
}

func (in VariantInput) Normalize() VariantInput {
	in.Size = strings.TrimSpace(in.Size)
	in.SKU = strings.TrimSpace(in.SKU)
	if in.Price.IsZero() {
		in.Price = decimal.Zero
	}
	return in
}

// Validate reports field level problems keyed by form/JSON field name.
func (in VariantInput) Validate() pkgerrors.FieldErrors {
	fields := pkgerrors.FieldErrors{}
	checkText(fields, "size", in.Size, SizeMaxLength)
	checkText(fields, "sku", in.SKU, SKUMaxLength)
	if msg := priceProblem(in.Price); msg != "" {
		fields.Add("price", msg)
	}
	return fields
}

func priceProblem(price decimal.Decimal) string {
	if price.IsNegative() {
		return "must be greater than or equal to 0"
	}
	if price.IsZero() {
		return ""
	}
	// Rescaling is linear in the exponent, so bound it before Round or compare.
	digits := int64(len(price.Coefficient().String()))
	exp := int64(price.Exponent())
	switch {
	case digits > priceCoefficientLimit, digits+exp > PriceMaxDigits-PriceDecimalPlaces:
		return "must have at most 10 digits in total"
	case -exp > digits+PriceDecimalPlaces:
		return "must have at most 2 decimal places"
	}
	switch {
	case !price.Equal(price.Round(PriceDecimalPlaces)):
		return "must have at most 2 decimal places"
	case price.GreaterThanOrEqual(priceCeiling):
		return "must have at most 10 digits in total"
	}
	return ""
}

func checkText(fields pkgerrors.FieldErrors, field, value string, max int) {
	switch {
	case value == "":
		fields.Add(field, msgRequired)
	case utf8.RuneCountInString(value) > max:
		fields.Add(field, "must be at most "+strconv.Itoa(max)+" characters")
	}
}
