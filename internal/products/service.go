package product

import (
	"context"
	"fmt"

	"github.com/angelmondragon/bakery-catalog/internal/categories"
	"github.com/angelmondragon/bakery-catalog/pkg/db"
	"github.com/angelmondragon/bakery-catalog/pkg/db/models"
	pkgerrors "github.com/angelmondragon/bakery-catalog/pkg/errors"
	"github.com/angelmondragon/bakery-catalog/pkg/metrics"
	"gorm.io/gorm"
)

// Service exposes catalog product reads and writes.
type Service interface {
	ListProducts(ctx context.Context) ([]ProductDTO, error)
	ListActiveProducts(ctx context.Context) ([]ProductDTO, error)
	ListCategoryProducts(ctx context.Context, categoryID uint) (*CategoryProductsDTO, error)
	GetProduct(ctx context.Context, id uint) (*ProductDTO, error)
	GetProductWithVariants(ctx context.Context, id uint) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input ProductInput) (*ProductDTO, error)
	CreateProductWithVariant(ctx context.Context, product ProductInput, variant VariantInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uint, input ProductInput) (*ProductDTO, error)
	PatchProduct(ctx context.Context, id uint, patch ProductPatch) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type categoryLoader interface {
	FindByID(ctx context.Context, id uint) (*models.Category, error)
}

type service struct {
	repo       *Repository
	tx         db.Transactor
	categories categoryLoader
	metrics    *metrics.CatalogMetrics
}

// NewService constructs a product service instance. m may be nil.
func NewService(repo *Repository, tx db.Transactor, categoryRepo categoryLoader, m *metrics.CatalogMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("db client required")
	}
	if categoryRepo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{
		repo:       repo,
		tx:         tx,
		categories: categoryRepo,
		metrics:    m,
	}, nil
}

func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	return newProductDTOs(rows), nil
}

func (s *service) ListActiveProducts(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list active products")
	}
	return newProductDTOs(rows), nil
}

func (s *service) ListCategoryProducts(ctx context.Context, categoryID uint) (*CategoryProductsDTO, error) {
	category, err := s.loadCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list category products")
	}
	return &CategoryProductsDTO{
		Category: categories.NewCategoryDTO(category),
		Products: newProductDTOs(rows),
	}, nil
}

// GetProduct loads a product and its category without variants.
func (s *service) GetProduct(ctx context.Context, id uint) (*ProductDTO, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := NewProductDTO(product)
	return &dto, nil
}

func (s *service) GetProductWithVariants(ctx context.Context, id uint) (*ProductDTO, error) {
	product, err := s.repo.FindWithVariants(ctx, id)
	if err != nil {
		return nil, mapLoadError(err)
	}
	dto := NewProductDTO(product)
	return &dto, nil
}

// CreateProduct inserts a product without variants.
func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*ProductDTO, error) {
	const op = "create_product"
	input = input.Normalize()
	if err := s.checkProduct(ctx, input, true); err != nil {
		s.observe(op, err)
		return nil, err
	}

	created, err := s.repo.CreateProduct(ctx, input.toModel())
	if err != nil {
		err = classifyWriteError(err, "db: insert product")
		s.observe(op, err)
		return nil, err
	}
	s.observe(op, nil)
	return s.GetProductWithVariants(ctx, created.ID)
}

// CreateProductWithVariant writes a product and its first variant atomically.
// Nothing is persisted unless both rows are.
func (s *service) CreateProductWithVariant(ctx context.Context, product ProductInput, variant VariantInput) (*ProductDTO, error) {
	const op = "create_product_with_variant"
	product = product.Normalize()
	variant = variant.Normalize()

	fields := product.Validate()
	fields.Merge(variant.Validate())
	if err := fields.Err(); err != nil {
		s.observe(op, err)
		return nil, err
	}
	if err := s.ensureCategory(ctx, product.CategoryID); err != nil {
		s.observe(op, err)
		return nil, err
	}

	var productID uint
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		created, err := txRepo.CreateProduct(ctx, product.toModel())
		if err != nil {
			return classifyWriteError(err, "db: insert product")
		}
		if _, err := txRepo.CreateVariant(ctx, variant.toModel(created.ID)); err != nil {
			return classifyWriteError(err, "db: insert product variant")
		}
		productID = created.ID
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: commit product with variant")
		}
		s.observe(op, err)
		return nil, err
	}

	s.observe(op, nil)
	return s.GetProductWithVariants(ctx, productID)
}

func (s *service) UpdateProduct(ctx context.Context, id uint, input ProductInput) (*ProductDTO, error) {
	return s.save(ctx, id, "update_product", true, func(ProductInput) ProductInput { return input })
}

func (s *service) PatchProduct(ctx context.Context, id uint, patch ProductPatch) (*ProductDTO, error) {
	return s.save(ctx, id, "patch_product", false, patch.apply)
}

func (s *service) DeleteProduct(ctx context.Context, id uint) error {
	const op = "delete_product"
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
		s.observe(op, err)
		return err
	}
	s.observe(op, nil)
	return nil
}

func (s *service) save(ctx context.Context, id uint, op string, requireCategory bool, change func(ProductInput) ProductInput) (*ProductDTO, error) {
	existing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	input := change(inputFromModel(existing)).Normalize()
	if err := s.checkProduct(ctx, input, requireCategory); err != nil {
		s.observe(op, err)
		return nil, err
	}

	existing.Name = input.Name
	existing.CategoryID = input.CategoryID
	existing.Category = nil
	existing.Description = input.Description
	existing.IsActive = input.IsActive
	if _, err := s.repo.UpdateProduct(ctx, existing); err != nil {
		err = classifyWriteError(err, "db: update product")
		s.observe(op, err)
		return nil, err
	}
	s.observe(op, nil)
	return s.GetProductWithVariants(ctx, id)
}

func (s *service) checkProduct(ctx context.Context, input ProductInput, requireCategory bool) error {
	if err := input.validate(requireCategory).Err(); err != nil {
		return err
	}
	return s.ensureCategory(ctx, input.CategoryID)
}

func (s *service) ensureCategory(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := s.categories.FindByID(ctx, *id); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.FieldErrors{"category": msgInvalidCategory}.Err()
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	return nil
}

func (s *service) loadCategory(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	return category, nil
}

func (s *service) load(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLoadError(err)
	}
	return product, nil
}

func (s *service) observe(op string, err error) {
	switch {
	case err == nil:
		s.metrics.ObserveWrite(op, metrics.OutcomeOK)
	case pkgerrors.IsCode(err, pkgerrors.CodeValidation):
		s.metrics.ObserveWrite(op, metrics.OutcomeInvalid)
	case pkgerrors.IsCode(err, pkgerrors.CodeConflict):
		s.metrics.ObserveWrite(op, metrics.OutcomeConflict)
	default:
		s.metrics.ObserveWrite(op, metrics.OutcomeError)
	}
}

func mapLoadError(err error) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
}

// classifyWriteError turns constraint violations into field level errors.
func classifyWriteError(err error, msg string) error {
	switch {
	case db.IsUniqueViolation(err, ""):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, msgDuplicateSKU).
			WithDetails(map[string]string{"sku": msgDuplicateSKU})
	case db.IsForeignKeyViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed").
			WithDetails(map[string]string{"category": msgInvalidCategory})
	default:
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
	}
}

func (in ProductInput) toModel() *models.Product {
	return &models.Product{
		Name:        in.Name,
		CategoryID:  in.CategoryID,
		Description: in.Description,
		IsActive:    in.IsActive,
	}
}

func (in VariantInput) toModel(productID uint) *models.ProductVariant {
	return &models.ProductVariant{
		ProductID:   productID,
		Size:        in.Size,
		Price:       in.Price.Round(PriceDecimalPlaces),
		SKU:         in.SKU,
		IsAvailable: in.IsAvailable,
	}
}

func inputFromModel(p *models.Product) ProductInput {
	return ProductInput{
		Name:        p.Name,
		CategoryID:  p.CategoryID,
		Description: p.Description,
		IsActive:    p.IsActive,
	}
}
