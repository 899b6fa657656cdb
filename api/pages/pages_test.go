package pages

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/angelmondragon/bakery-catalog/api/forms"
	"github.com/angelmondragon/bakery-catalog/internal/categories"
	product "github.com/angelmondragon/bakery-catalog/internal/products"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	return r
}

func uintPtr(v uint) *uint { return &v }

func TestRenderProductList(t *testing.T) {
	r := newRenderer(t)
	w := httptest.NewRecorder()

	err := r.Render(w, http.StatusOK, ProductList, ProductListData{Products: []product.ProductDTO{{
		ID:           7,
		Name:         "Sourdough",
		Category:     uintPtr(1),
		CategoryName: "Breads",
		IsActive:     true,
		Variants:     []product.VariantDTO{{ID: 1, Size: "Large", Price: "5.50", SKU: "SD-L-001", IsAvailable: true}},
	}}})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, `href="/products/7/"`)
	assert.Contains(t, body, "Sourdough")
	assert.Contains(t, body, "Breads")
	assert.Contains(t, body, "Large 5.50 (SD-L-001)")
}

func TestRenderEscapesUserText(t *testing.T) {
	r := newRenderer(t)
	w := httptest.NewRecorder()
	require.NoError(t, r.Render(w, http.StatusOK, CategoryList, CategoryListData{
		Categories: []categories.CategoryDTO{{ID: 1, Name: "<script>alert(1)</script>"}},
	}))
	assert.NotContains(t, w.Body.String(), "<script>alert(1)</script>")
	assert.Contains(t, w.Body.String(), "&lt;script&gt;")
}

func TestRenderProductCreatePreservesValues(t *testing.T) {
	r := newRenderer(t)
	productForm := forms.BindProductForm(url.Values{"name": {"Rye"}, "category": {"2"}, "description": {"Dark"}})
	variantForm := forms.BindVariantForm(url.Values{"size": {"Small"}, "price": {"abc"}, "sku": {"RY-S"}})
	productForm.Validate()
	variantForm.Validate()

	w := httptest.NewRecorder()
	require.NoError(t, r.Render(w, http.StatusBadRequest, ProductCreate, ProductCreateData{
		Product:    productForm,
		Variant:    variantForm,
		Categories: []categories.CategoryDTO{{ID: 1, Name: "Breads"}, {ID: 2, Name: "Rye breads"}},
	}))

	body := w.Body.String()
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body, `value="Rye"`)
	assert.Contains(t, body, `<option value="2" selected>Rye breads</option>`)
	assert.Contains(t, body, `value="abc"`)
	assert.Contains(t, body, "enter a number")
	assert.NotContains(t, body, `name="is_active" checked`)
}

func TestRenderNewProductCreateChecksDefaults(t *testing.T) {
	r := newRenderer(t)
	w := httptest.NewRecorder()
	require.NoError(t, r.Render(w, http.StatusOK, ProductCreate, ProductCreateData{
		Product: forms.NewProductForm(),
		Variant: forms.NewVariantForm(),
	}))
	assert.Contains(t, w.Body.String(), `name="is_active" checked`)
	assert.Contains(t, w.Body.String(), `name="is_available" checked`)
}

func TestRenderDetailAndCategoryPages(t *testing.T) {
	r := newRenderer(t)

	w := httptest.NewRecorder()
	require.NoError(t, r.Render(w, http.StatusOK, ProductDetail, ProductDetailData{Product: product.ProductDTO{
		ID: 3, Name: "Baguette", Category: uintPtr(4), CategoryName: "Breads", Variants: []product.VariantDTO{},
	}}))
	assert.Contains(t, w.Body.String(), `href="/products/categories/4/products"`)
	assert.Contains(t, w.Body.String(), "No variants.")

	w = httptest.NewRecorder()
	require.NoError(t, r.Render(w, http.StatusOK, CategoryProducts, CategoryProductsData{
		Category: categories.CategoryDTO{ID: 4, Name: "Breads"},
	}))
	assert.Contains(t, w.Body.String(), "<h1>Breads</h1>")
	assert.Contains(t, w.Body.String(), "No products yet.")

	w = httptest.NewRecorder()
	require.NoError(t, r.Render(w, http.StatusOK, CategoryCreate, CategoryCreateData{Form: forms.NewCategoryForm()}))
	assert.Contains(t, w.Body.String(), `action="/products/categories/create/"`)
}

func TestRenderErrorPage(t *testing.T) {
	r := newRenderer(t)
	w := httptest.NewRecorder()
	require.NoError(t, r.Render(w, http.StatusNotFound, ErrorPage, ErrorData{
		Status: 404, Title: "Not Found", Message: "product not found", RequestID: "req-1",
	}))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "product not found")
	assert.Contains(t, w.Body.String(), "req-1")
}

func TestRenderUnknownPage(t *testing.T) {
	r := newRenderer(t)
	w := httptest.NewRecorder()
	assert.Error(t, r.Render(w, http.StatusOK, "missing", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestRenderTemplateFailureWritesNothing(t *testing.T) {
	r := newRenderer(t)
	w := httptest.NewRecorder()
	err := r.Render(w, http.StatusOK, ProductDetail, struct{}{})
	assert.Error(t, err)
	assert.Zero(t, w.Body.Len())
	assert.Empty(t, w.Header().Get("Content-Type"))
}
