package product

import (
	"github.com/angelmondragon/bakery-catalog/internal/categories"
	"github.com/angelmondragon/bakery-catalog/pkg/db/models"
)

// VariantDTO is the public product variant representation.
type VariantDTO struct {
	ID          uint   `json:"id"`
	Size        string `json:"size"`
	Price       string `json:"price"`
	SKU         string `json:"sku"`
	IsAvailable bool   `json:"is_available"`
	Label       string `json:"-"`
}

// ProductDTO is the public product representation. Variants are read-only.
type ProductDTO struct {
	ID           uint         `json:"id"`
	Name         string       `json:"name"`
	Category     *uint        `json:"category"`
	CategoryName string       `json:"category_name,omitempty"`
	Description  string       `json:"description"`
	IsActive     bool         `json:"is_active"`
	Variants     []VariantDTO `json:"variants"`
}

// CategoryProductsDTO is a category together with the products filed under it.
type CategoryProductsDTO struct {
	Category categories.CategoryDTO `json:"category"`
	Products []ProductDTO           `json:"products"`
}

// NewProductDTO builds a DTO from the persisted model and whatever associations were loaded.
func NewProductDTO(p *models.Product) ProductDTO {
	dto := ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.CategoryID,
		Description: p.Description,
		IsActive:    p.IsActive,
		Variants:    make([]VariantDTO, 0, len(p.Variants)),
	}
	if p.Category != nil {
		dto.CategoryName = p.Category.Name
	}
	for _, v := range p.Variants {
		dto.Variants = append(dto.Variants, VariantDTO{
			ID:          v.ID,
			Size:        v.Size,
			Price:       v.Price.StringFixed(PriceDecimalPlaces),
			SKU:         v.SKU,
			IsAvailable: v.IsAvailable,
			Label:       v.Label(p.Name),
		})
	}
	return dto
}

func newProductDTOs(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, NewProductDTO(&rows[i]))
	}
	return out
}
