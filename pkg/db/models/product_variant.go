package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductVariant is a sellable size of a product. SKUs are globally unique.
type ProductVariant struct {
	ID          uint            `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID   uint            `gorm:"column:product_id;not null;index"`
	Size        string          `gorm:"column:size;size:50;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	SKU         string          `gorm:"column:sku;size:50;not null;uniqueIndex:product_variants_sku_key"`
	IsAvailable bool            `gorm:"column:is_available;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (ProductVariant) TableName() string { return "product_variants" }

// Label renders the variant the way staff refer to it, e.g. "Sourdough - Large".
func (v ProductVariant) Label(productName string) string {
	return productName + " - " + v.Size
}

// All lists the catalog models in dependency order for AutoMigrate.
func All() []any {
	return []any{&Category{}, &Product{}, &ProductVariant{}}
}
