package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/bakery-catalog/internal/categories"
	product "github.com/angelmondragon/bakery-catalog/internal/products"
	pkgerrors "github.com/angelmondragon/bakery-catalog/pkg/errors"
	"github.com/angelmondragon/bakery-catalog/pkg/logger"
)

func withID(req *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func validProductValues() url.Values {
	return url.Values{
		"name":         {"Sourdough"},
		"category":     {"1"},
		"description":  {"Tangy"},
		"is_active":    {"on"},
		"size":         {"Large"},
		"price":        {"5.50"},
		"sku":          {"SD-L-001"},
		"is_available": {"on"},
	}
}

func TestProductListPage(t *testing.T) {
	renderer := newRenderer(t)
	svc := &stubProductService{
		list:   []product.ProductDTO{{ID: 1, Name: "Sourdough", IsActive: true}, {ID: 2, Name: "Old Rye"}},
		active: []product.ProductDTO{{ID: 1, Name: "Sourdough", IsActive: true}},
	}

	t.Run("all products", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ProductListPage(svc, renderer, false, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Old Rye")
	})

	t.Run("active filter", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ProductListPage(svc, renderer, false, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/?active=true", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "Old Rye")
		assert.True(t, svc.activeCalled)
	})

	t.Run("active by default, overridable", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ProductListPage(svc, renderer, true, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/", nil))
		assert.NotContains(t, rec.Body.String(), "Old Rye")

		rec = httptest.NewRecorder()
		ProductListPage(svc, renderer, true, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/?active=false", nil))
		assert.Contains(t, rec.Body.String(), "Old Rye")
	})

	t.Run("bad filter", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ProductListPage(svc, renderer, false, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/?active=maybe", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("dependency failure", func(t *testing.T) {
		failing := &stubProductService{listErr: pkgerrors.New(pkgerrors.CodeDependency, "db: list products")}
		rec := httptest.NewRecorder()
		ProductListPage(failing, renderer, false, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.NotContains(t, rec.Body.String(), "db: list products")
	})
}

func TestProductDetailPage(t *testing.T) {
	renderer := newRenderer(t)
	svc := &stubProductService{detail: &product.ProductDTO{
		ID: 5, Name: "Baguette", Variants: []product.VariantDTO{{ID: 9, Size: "Long", Price: "3.00", SKU: "BG-1", IsAvailable: true}},
	}}

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"found", "5", http.StatusOK},
		{"missing", "6", http.StatusNotFound},
		{"non numeric", "abc", http.StatusNotFound},
		{"zero", "0", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := withID(httptest.NewRequest(http.MethodGet, "/products/"+tt.id+"/", nil), tt.id)
			ProductDetailPage(svc, renderer, logger.Nop()).ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, rec.Body.String(), "BG-1")
			}
		})
	}
}

func TestProductCreateForm(t *testing.T) {
	categorySvc := &stubCategoryService{list: []categories.CategoryDTO{{ID: 1, Name: "Breads"}}}
	rec := httptest.NewRecorder()
	ProductCreateForm(categorySvc, newRenderer(t), logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/create/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<option value="1">Breads</option>`)
}

func TestProductCreateSubmitRedirects(t *testing.T) {
	svc := &stubProductService{}
	categorySvc := &stubCategoryService{}
	rec := httptest.NewRecorder()
	ProductCreateSubmit(svc, categorySvc, newRenderer(t), logger.Nop()).ServeHTTP(rec, postForm("/products/create/", validProductValues()))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/products/", rec.Header().Get("Location"))
	assert.Equal(t, 1, svc.createCalls)
	assert.Equal(t, "SD-L-001", svc.lastVariant.SKU)
	assert.True(t, svc.lastVariant.IsAvailable)
	require.NotNil(t, svc.lastProduct.CategoryID)
	assert.EqualValues(t, 1, *svc.lastProduct.CategoryID)
}

func TestProductCreateSubmitInvalidKeepsValues(t *testing.T) {
	svc := &stubProductService{}
	categorySvc := &stubCategoryService{list: []categories.CategoryDTO{{ID: 1, Name: "Breads"}}}

	values := validProductValues()
	values.Set("name", "")
	values.Set("price", "abc")

	rec := httptest.NewRecorder()
	ProductCreateSubmit(svc, categorySvc, newRenderer(t), logger.Nop()).ServeHTTP(rec, postForm("/products/create/", values))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.createCalls, "nothing is written when either form is invalid")
	body := rec.Body.String()
	assert.Contains(t, body, "is required")
	assert.Contains(t, body, "enter a number")
	assert.Contains(t, body, `value="SD-L-001"`)
	assert.Contains(t, body, `<option value="1" selected>Breads</option>`)
}

func TestProductCreateSubmitDuplicateSKU(t *testing.T) {
	svc := &stubProductService{createErr: pkgerrors.New(pkgerrors.CodeConflict, "product variant with this sku already exists").
		WithDetails(map[string]string{"sku": "product variant with this sku already exists"})}
	categorySvc := &stubCategoryService{list: []categories.CategoryDTO{{ID: 1, Name: "Breads"}}}

	rec := httptest.NewRecorder()
	ProductCreateSubmit(svc, categorySvc, newRenderer(t), logger.Nop()).ServeHTTP(rec, postForm("/products/create/", validProductValues()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "product variant with this sku already exists")
	assert.Contains(t, rec.Body.String(), `value="Sourdough"`)
}

func TestProductCreateSubmitDependencyFailure(t *testing.T) {
	svc := &stubProductService{createErr: pkgerrors.New(pkgerrors.CodeDependency, "db down")}
	rec := httptest.NewRecorder()
	ProductCreateSubmit(svc, &stubCategoryService{}, newRenderer(t), logger.Nop()).ServeHTTP(rec, postForm("/products/create/", validProductValues()))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCategoryPages(t *testing.T) {
	renderer := newRenderer(t)
	categorySvc := &stubCategoryService{list: []categories.CategoryDTO{{ID: 2, Name: "Cakes"}}}

	rec := httptest.NewRecorder()
	CategoryListPage(categorySvc, renderer, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/categories/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/products/categories/2/products"`)

	rec = httptest.NewRecorder()
	CategoryCreateForm(renderer, logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/categories/create/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="name"`)
}

func TestCategoryCreateSubmit(t *testing.T) {
	renderer := newRenderer(t)

	t.Run("success", func(t *testing.T) {
		svc := &stubCategoryService{}
		rec := httptest.NewRecorder()
		CategoryCreateSubmit(svc, renderer, logger.Nop()).ServeHTTP(rec, postForm("/products/categories/create/", url.Values{"name": {" Breads "}}))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/products/categories/", rec.Header().Get("Location"))
		assert.Equal(t, "Breads", svc.lastInput.Name)
	})

	t.Run("invalid", func(t *testing.T) {
		svc := &stubCategoryService{}
		rec := httptest.NewRecorder()
		long := strings.Repeat("b", 101)
		CategoryCreateSubmit(svc, renderer, logger.Nop()).ServeHTTP(rec, postForm("/products/categories/create/", url.Values{"name": {long}}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, svc.createCalls)
		assert.Contains(t, rec.Body.String(), "must be at most 100 characters")
		assert.Contains(t, rec.Body.String(), long)
	})
}

func TestCategoryProductsPage(t *testing.T) {
	renderer := newRenderer(t)
	svc := &stubProductService{byCategory: &product.CategoryProductsDTO{
		Category: categories.CategoryDTO{ID: 3, Name: "Breads"},
		Products: []product.ProductDTO{{ID: 1, Name: "Sourdough"}},
	}}

	rec := httptest.NewRecorder()
	CategoryProductsPage(svc, renderer, logger.Nop()).ServeHTTP(rec, withID(httptest.NewRequest(http.MethodGet, "/products/categories/3/products", nil), "3"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sourdough")

	rec = httptest.NewRecorder()
	CategoryProductsPage(svc, renderer, logger.Nop()).ServeHTTP(rec, withID(httptest.NewRequest(http.MethodGet, "/products/categories/99/products", nil), "99"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "category not found")
}

func TestNotFoundPage(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(newRenderer(t), logger.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}
