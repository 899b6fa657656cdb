package web

import (
	"net/http"

	"github.com/angelmondragon/bakery-catalog/api/forms"
	"github.com/angelmondragon/bakery-catalog/api/pages"
	"github.com/angelmondragon/bakery-catalog/api/validators"
	"github.com/angelmondragon/bakery-catalog/internal/categories"
	product "github.com/angelmondragon/bakery-catalog/internal/products"
	"github.com/angelmondragon/bakery-catalog/pkg/logger"
)

// ProductListPage lists products. activeOnly sets the default of ?active.
func ProductListPage(svc product.Service, renderer *pages.Renderer, activeOnly bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		active, err := validators.ParseQueryBool(r, "active", activeOnly)
		if err != nil {
			writeErrorPage(ctx, w, renderer, logg, err)
			return
		}

		var list []product.ProductDTO
		if active {
			list, err = svc.ListActiveProducts(ctx)
		} else {
			list, err = svc.ListProducts(ctx)
		}
		if err != nil {
			writeErrorPage(ctx, w, renderer, logg, err)
			return
		}

		render(ctx, w, renderer, logg, http.StatusOK, pages.ProductList, pages.ProductListData{
			Products:   list,
			ActiveOnly: active,
		})
	}
}

func ProductDetailPage(svc product.Service, renderer *pages.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := pathID(r, "id")
		if err != nil {
			writeErrorPage(ctx, w, renderer, logg, err)
			return
		}

		dto, err := svc.GetProductWithVariants(ctx, id)
		if err != nil {
			writeErrorPage(ctx, w, renderer, logg, err)
			return
		}

		render(ctx, w, renderer, logg, http.StatusOK, pages.ProductDetail, pages.ProductDetailData{Product: *dto})
	}
}

// ProductCreateForm shows empty product and variant forms.
func ProductCreateForm(categorySvc categories.Service, renderer *pages.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		options, err := categorySvc.ListCategories(ctx)
		if err != nil {
			writeErrorPage(ctx, w, renderer, logg, err)
			return
		}

		render(ctx, w, renderer, logg, http.StatusOK, pages.ProductCreate, pages.ProductCreateData{
			Product:    forms.NewProductForm(),
			Variant:    forms.NewVariantForm(),
			Categories: options,
		})
	}
}

// ProductCreateSubmit validates both forms and runs the combined write. Any
// failure re-renders both forms with the submitted values.
func ProductCreateSubmit(svc product.Service, categorySvc categories.Service, renderer *pages.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := parseForm(w, r); err != nil {
			writeErrorPage(ctx, w, renderer, logg, err)
			return
		}

		productForm := forms.BindProductForm(r.PostForm)
		variantForm := forms.BindVariantForm(r.PostForm)
		productInput, productOK := productForm.Validate()
		variantInput, variantOK := variantForm.Validate()

		if productOK && variantOK {
			_, err := svc.CreateProductWithVariant(ctx, productInput, variantInput)
			if err == nil {
				http.Redirect(w, r, ProductListPath, http.StatusSeeOther)
				return
			}
			if !forms.Attach(err, productForm, variantForm) {
				writeErrorPage(ctx, w, renderer, logg, err)
				return
			}
		}

		options, err := categorySvc.ListCategories(ctx)
		if err != nil {
			writeErrorPage(ctx, w, renderer, logg, err)
			return
		}
		render(ctx, w, renderer, logg, http.StatusBadRequest, pages.ProductCreate, pages.ProductCreateData{
			Product:    productForm,
			Variant:    variantForm,
			Categories: options,
		})
	}
}
