// Package pages renders the server side catalog pages from embedded templates.
package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/angelmondragon/bakery-catalog/api/forms"
	"github.com/angelmondragon/bakery-catalog/internal/categories"
	product "github.com/angelmondragon/bakery-catalog/internal/products"
)

const (
	ProductList      = "product_list"
	ProductDetail    = "product_detail"
	ProductCreate    = "product_create"
	CategoryList     = "category_list"
	CategoryCreate   = "category_create"
	CategoryProducts = "category_products"
	ErrorPage        = "error"
)

var pageNames = []string{
	ProductList,
	ProductDetail,
	ProductCreate,
	CategoryList,
	CategoryCreate,
	CategoryProducts,
	ErrorPage,
}

//go:embed templates/*.html
var templateFS embed.FS

type ProductListData struct {
	Products   []product.ProductDTO
	ActiveOnly bool
}

type ProductDetailData struct {
	Product product.ProductDTO
}

type ProductCreateData struct {
	Product    *forms.ProductForm
	Variant    *forms.VariantForm
	Categories []categories.CategoryDTO
}

type CategoryListData struct {
	Categories []categories.CategoryDTO
}

type CategoryCreateData struct {
	Form *forms.CategoryForm
}

type CategoryProductsData struct {
	Category categories.CategoryDTO
	Products []product.ProductDTO
}

type ErrorData struct {
	Status    int
	Title     string
	Message   string
	RequestID string
}

// Renderer executes a named page inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the layout together with every page template.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.New("layout").ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render writes the page with status. The page is rendered into a buffer first
// so a template failure never leaves a half written 200 behind.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render page %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
