package web

import (
	"context"
	"testing"

	"github.com/angelmondragon/bakery-catalog/api/pages"
	"github.com/angelmondragon/bakery-catalog/internal/categories"
	product "github.com/angelmondragon/bakery-catalog/internal/products"
	pkgerrors "github.com/angelmondragon/bakery-catalog/pkg/errors"
	"github.com/stretchr/testify/require"
)

type stubProductService struct {
	list       []product.ProductDTO
	active     []product.ProductDTO
	listErr    error
	detail     *product.ProductDTO
	byCategory *product.CategoryProductsDTO
	createErr  error

	activeCalled bool
	createCalls  int
	lastProduct  product.ProductInput
	lastVariant  product.VariantInput
}

func (s *stubProductService) ListProducts(context.Context) ([]product.ProductDTO, error) {
	return s.list, s.listErr
}

func (s *stubProductService) ListActiveProducts(context.Context) ([]product.ProductDTO, error) {
	s.activeCalled = true
	return s.active, s.listErr
}

func (s *stubProductService) ListCategoryProducts(_ context.Context, id uint) (*product.CategoryProductsDTO, error) {
	if s.byCategory == nil || s.byCategory.Category.ID != id {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return s.byCategory, nil
}

func (s *stubProductService) GetProduct(ctx context.Context, id uint) (*product.ProductDTO, error) {
	return s.GetProductWithVariants(ctx, id)
}

func (s *stubProductService) GetProductWithVariants(_ context.Context, id uint) (*product.ProductDTO, error) {
	if s.detail == nil || s.detail.ID != id {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return s.detail, nil
}

func (s *stubProductService) CreateProduct(context.Context, product.ProductInput) (*product.ProductDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not used")
}

func (s *stubProductService) CreateProductWithVariant(_ context.Context, p product.ProductInput, v product.VariantInput) (*product.ProductDTO, error) {
	s.createCalls++
	s.lastProduct = p
	s.lastVariant = v
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &product.ProductDTO{ID: 1, Name: p.Name}, nil
}

func (s *stubProductService) UpdateProduct(context.Context, uint, product.ProductInput) (*product.ProductDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not used")
}

func (s *stubProductService) PatchProduct(context.Context, uint, product.ProductPatch) (*product.ProductDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not used")
}

func (s *stubProductService) DeleteProduct(context.Context, uint) error {
	return pkgerrors.New(pkgerrors.CodeInternal, "not used")
}

type stubCategoryService struct {
	list        []categories.CategoryDTO
	listErr     error
	createErr   error
	createCalls int
	lastInput   categories.CategoryInput
}

func (s *stubCategoryService) ListCategories(context.Context) ([]categories.CategoryDTO, error) {
	return s.list, s.listErr
}

func (s *stubCategoryService) GetCategory(context.Context, uint) (*categories.CategoryDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not used")
}

func (s *stubCategoryService) CreateCategory(_ context.Context, input categories.CategoryInput) (*categories.CategoryDTO, error) {
	s.createCalls++
	s.lastInput = input
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &categories.CategoryDTO{ID: 1, Name: input.Name}, nil
}

func (s *stubCategoryService) UpdateCategory(context.Context, uint, categories.CategoryInput) (*categories.CategoryDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not used")
}

func (s *stubCategoryService) PatchCategory(context.Context, uint, categories.CategoryPatch) (*categories.CategoryDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not used")
}

func (s *stubCategoryService) DeleteCategory(context.Context, uint) error {
	return pkgerrors.New(pkgerrors.CodeInternal, "not used")
}

func newRenderer(t *testing.T) *pages.Renderer {
	t.Helper()
	r, err := pages.New()
	require.NoError(t, err)
	return r
}
