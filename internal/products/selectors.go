package product

import (
	"context"

	"github.com/angelmondragon/bakery-catalog/pkg/db/models"
	"gorm.io/gorm"
)

// Read-only catalog queries. Every list preloads Category and Variants, so the
// number of statements stays fixed no matter how many rows come back.

func (r *Repository) catalog(ctx context.Context) *gorm.DB {
	return r.DB(ctx).
		Preload("Category").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_variants.id ASC")
		})
}

// ListAll returns every product ordered by id.
func (r *Repository) ListAll(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := r.catalog(ctx).Order("products.id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListActive returns products with is_active set.
func (r *Repository) ListActive(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := r.catalog(ctx).
		Where("products.is_active = ?", true).
		Order("products.id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByCategory returns the products filed under categoryID.
func (r *Repository) ListByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	var out []models.Product
	err := r.catalog(ctx).
		Where("products.category_id = ?", categoryID).
		Order("products.id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindWithVariants loads one product with its category and variants.
func (r *Repository) FindWithVariants(ctx context.Context, id uint) (*models.Product, error) {
	var out models.Product
	if err := r.catalog(ctx).First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
