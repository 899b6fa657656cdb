package web

import (
	"net/http"

	"github.com/angelmondragon/bakery-catalog/api/forms"
	"github.com/angelmondragon/bakery-catalog/api/pages"
	"github.com/angelmondragon/bakery-catalog/internal/categories"
	product "github.com/angelmondragon/bakery-catalog/internal/products"
	"github.com/angelmondragon/bakery-catalog/pkg/logger"
)

func CategoryListPage(svc categories.Service, renderer *pages.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		list, err := svc.ListCategories(ctx)
		if err != nil {
			writeErrorPage(ctx, w, renderer, logg, err)
			return
		}
		render(ctx, w, renderer, logg, http.StatusOK, pages.CategoryList, pages.CategoryListData{Categories: list})
	}
}

func CategoryCreateForm(renderer *pages.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(r.Context(), w, renderer, logg, http.StatusOK, pages.CategoryCreate, pages.CategoryCreateData{
			Form: forms.NewCategoryForm(),
		})
	}
}

func CategoryCreateSubmit(svc categories.Service, renderer *pages.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := parseForm(w, r); err != nil {
			writeErrorPage(ctx, w, renderer, logg, err)
			return
		}

		form := forms.BindCategoryForm(r.PostForm)
		if input, ok := form.Validate(); ok {
			_, err := svc.CreateCategory(ctx, input)
			if err == nil {
				http.Redirect(w, r, CategoryListPath, http.StatusSeeOther)
				return
			}
			if !forms.Attach(err, form) {
				writeErrorPage(ctx, w, renderer, logg, err)
				return
			}
		}

		render(ctx, w, renderer, logg, http.StatusBadRequest, pages.CategoryCreate, pages.CategoryCreateData{Form: form})
	}
}

// CategoryProductsPage lists the products filed under one category.
func CategoryProductsPage(svc product.Service, renderer *pages.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := pathID(r, "id")
		if err != nil {
			writeErrorPage(ctx, w, renderer, logg, err)
			return
		}

		listing, err := svc.ListCategoryProducts(ctx, id)
		if err != nil {
			writeErrorPage(ctx, w, renderer, logg, err)
			return
		}

		render(ctx, w, renderer, logg, http.StatusOK, pages.CategoryProducts, pages.CategoryProductsData{
			Category: listing.Category,
			Products: listing.Products,
		})
	}
}
