package controllers

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/bakery-catalog/internal/categories"
	product "github.com/angelmondragon/bakery-catalog/internal/products"
	pkgerrors "github.com/angelmondragon/bakery-catalog/pkg/errors"
	"github.com/angelmondragon/bakery-catalog/pkg/types"
)

// readOnlyProductFields are accepted on write so clients can send back a
// representation they received, and are otherwise ignored.
type readOnlyProductFields struct {
	ID           json.RawMessage `json:"id,omitempty"`
	CategoryName json.RawMessage `json:"category_name,omitempty"`
	Variants     json.RawMessage `json:"variants,omitempty"`
}

type productRequest struct {
	readOnlyProductFields
	Name        string `json:"name" validate:"required,max=200"`
	Category    *uint  `json:"category" validate:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

func (r productRequest) toInput() product.ProductInput {
	return product.ProductInput{
		Name:        r.Name,
		CategoryID:  r.Category,
		Description: r.Description,
		IsActive:    boolOr(r.IsActive, true),
	}
}

type productPatchRequest struct {
	readOnlyProductFields
	Name        *string            `json:"name,omitempty" validate:"omitempty,max=200"`
	Category    types.NullableUint `json:"category"`
	Description *string            `json:"description,omitempty"`
	IsActive    *bool              `json:"is_active,omitempty"`
}

func (r productPatchRequest) toPatch() (product.ProductPatch, error) {
	if r.Category.IsNull() {
		return product.ProductPatch{}, pkgerrors.FieldErrors{"category": "is required"}.Err()
	}
	return product.ProductPatch{
		Name:        r.Name,
		CategoryID:  r.Category.Value,
		Description: r.Description,
		IsActive:    r.IsActive,
	}, nil
}

type variantRequest struct {
	ID          json.RawMessage  `json:"id,omitempty"`
	Size        string           `json:"size" validate:"required,max=50"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	SKU         string           `json:"sku" validate:"required,max=50"`
	IsAvailable *bool            `json:"is_available,omitempty"`
}

func (r variantRequest) toInput() product.VariantInput {
	in := product.VariantInput{
		Size:        r.Size,
		SKU:         r.SKU,
		IsAvailable: boolOr(r.IsAvailable, true),
	}
	if r.Price != nil {
		in.Price = *r.Price
	}
	return in
}

type productWithVariantRequest struct {
	Product productRequest `json:"product"`
	Variant variantRequest `json:"variant"`
}

var productFieldNames = map[string]bool{"name": true, "category": true, "description": true, "is_active": true}

// nestFieldErrors rekeys flat service field errors under "product." or
// "variant." to match the nested request shape.
func nestFieldErrors(err error) error {
	typed := pkgerrors.As(err)
	fields := pkgerrors.FieldErrorsOf(err)
	if typed == nil || len(fields) == 0 {
		return err
	}
	nested := make(map[string]string, len(fields))
	for field, msg := range fields {
		prefix := "variant."
		if productFieldNames[field] {
			prefix = "product."
		}
		if strings.Contains(field, ".") {
			prefix = ""
		}
		nested[prefix+field] = msg
	}
	return pkgerrors.Wrap(typed.Code(), err, typed.Message()).WithDetails(nested)
}

type categoryRequest struct {
	ID   json.RawMessage `json:"id,omitempty"`
	Name string          `json:"name" validate:"required,max=100"`
}

func (r categoryRequest) toInput() categories.CategoryInput {
	return categories.CategoryInput{Name: r.Name}
}

type categoryPatchRequest struct {
	ID   json.RawMessage `json:"id,omitempty"`
	Name *string         `json:"name,omitempty" validate:"omitempty,max=100"`
}

func (r categoryPatchRequest) toPatch() categories.CategoryPatch {
	return categories.CategoryPatch{Name: r.Name}
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
