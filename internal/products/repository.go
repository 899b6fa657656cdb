package product

import (
	"context"

	"github.com/angelmondragon/bakery-catalog/internal/repo"
	"github.com/angelmondragon/bakery-catalog/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists products and their variants.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

// CreateProduct inserts the product row only; associations are written separately.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB(ctx).Omit(clause.Associations).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct writes every column of product, including zero values.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB(ctx).Omit(clause.Associations).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes the product; its variants go with it through ON DELETE CASCADE.
func (r *Repository) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB(ctx).Delete(&models.Product{}, id).Error
}

func (r *Repository) CreateVariant(ctx context.Context, variant *models.ProductVariant) (*models.ProductVariant, error) {
	if err := r.DB(ctx).Create(variant).Error; err != nil {
		return nil, err
	}
	return variant, nil
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	return repo.FindByID[models.Product](ctx, r.Base, id, "Category")
}
