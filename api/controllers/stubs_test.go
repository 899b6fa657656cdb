package controllers

import (
	"context"

	"github.com/angelmondragon/bakery-catalog/internal/categories"
	product "github.com/angelmondragon/bakery-catalog/internal/products"
	pkgerrors "github.com/angelmondragon/bakery-catalog/pkg/errors"
)

type stubProductService struct {
	products map[uint]product.ProductDTO
	writeErr error

	activeCalled bool
	lastInput    product.ProductInput
	lastVariant  product.VariantInput
	lastPatch    product.ProductPatch
	deleted      []uint
}

func newStubProductService() *stubProductService {
	return &stubProductService{products: map[uint]product.ProductDTO{}}
}

func (s *stubProductService) ListProducts(context.Context) ([]product.ProductDTO, error) {
	out := make([]product.ProductDTO, 0, len(s.products))
	for i := uint(1); i <= uint(len(s.products)); i++ {
		if p, ok := s.products[i]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProductService) ListActiveProducts(ctx context.Context) ([]product.ProductDTO, error) {
	s.activeCalled = true
	all, _ := s.ListProducts(ctx)
	out := []product.ProductDTO{}
	for _, p := range all {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProductService) ListCategoryProducts(context.Context, uint) (*product.CategoryProductsDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not used")
}

func (s *stubProductService) GetProduct(ctx context.Context, id uint) (*product.ProductDTO, error) {
	return s.GetProductWithVariants(ctx, id)
}

func (s *stubProductService) GetProductWithVariants(_ context.Context, id uint) (*product.ProductDTO, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &p, nil
}

func (s *stubProductService) CreateProduct(_ context.Context, in product.ProductInput) (*product.ProductDTO, error) {
	s.lastInput = in
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	dto := product.ProductDTO{ID: uint(len(s.products) + 1), Name: in.Name, Category: in.CategoryID, IsActive: in.IsActive, Variants: []product.VariantDTO{}}
	s.products[dto.ID] = dto
	return &dto, nil
}

func (s *stubProductService) CreateProductWithVariant(ctx context.Context, in product.ProductInput, v product.VariantInput) (*product.ProductDTO, error) {
	s.lastVariant = v
	dto, err := s.CreateProduct(ctx, in)
	if err != nil {
		return nil, err
	}
	dto.Variants = []product.VariantDTO{{ID: 1, Size: v.Size, Price: v.Price.StringFixed(2), SKU: v.SKU, IsAvailable: v.IsAvailable}}
	s.products[dto.ID] = *dto
	return dto, nil
}

func (s *stubProductService) UpdateProduct(ctx context.Context, id uint, in product.ProductInput) (*product.ProductDTO, error) {
	s.lastInput = in
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	return s.GetProductWithVariants(ctx, id)
}

func (s *stubProductService) PatchProduct(ctx context.Context, id uint, patch product.ProductPatch) (*product.ProductDTO, error) {
	s.lastPatch = patch
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	return s.GetProductWithVariants(ctx, id)
}

func (s *stubProductService) DeleteProduct(_ context.Context, id uint) error {
	if _, ok := s.products[id]; !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	delete(s.products, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type stubCategoryService struct {
	categories map[uint]categories.CategoryDTO
	lastInput  categories.CategoryInput
	lastPatch  categories.CategoryPatch
}

func newStubCategoryService() *stubCategoryService {
	return &stubCategoryService{categories: map[uint]categories.CategoryDTO{}}
}

func (s *stubCategoryService) ListCategories(context.Context) ([]categories.CategoryDTO, error) {
	out := make([]categories.CategoryDTO, 0, len(s.categories))
	for i := uint(1); i <= uint(len(s.categories)); i++ {
		if c, ok := s.categories[i]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubCategoryService) GetCategory(_ context.Context, id uint) (*categories.CategoryDTO, error) {
	c, ok := s.categories[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return &c, nil
}

func (s *stubCategoryService) CreateCategory(_ context.Context, in categories.CategoryInput) (*categories.CategoryDTO, error) {
	s.lastInput = in
	dto := categories.CategoryDTO{ID: uint(len(s.categories) + 1), Name: in.Name}
	s.categories[dto.ID] = dto
	return &dto, nil
}

func (s *stubCategoryService) UpdateCategory(ctx context.Context, id uint, in categories.CategoryInput) (*categories.CategoryDTO, error) {
	s.lastInput = in
	if _, err := s.GetCategory(ctx, id); err != nil {
		return nil, err
	}
	dto := categories.CategoryDTO{ID: id, Name: in.Name}
	s.categories[id] = dto
	return &dto, nil
}

func (s *stubCategoryService) PatchCategory(ctx context.Context, id uint, patch categories.CategoryPatch) (*categories.CategoryDTO, error) {
	s.lastPatch = patch
	return s.GetCategory(ctx, id)
}

func (s *stubCategoryService) DeleteCategory(_ context.Context, id uint) error {
	if _, ok := s.categories[id]; !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	delete(s.categories, id)
	return nil
}
