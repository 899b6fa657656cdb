package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/bakery-catalog/api/controllers"
	"github.com/angelmondragon/bakery-catalog/api/controllers/web"
	"github.com/angelmondragon/bakery-catalog/api/middleware"
	"github.com/angelmondragon/bakery-catalog/api/pages"
	"github.com/angelmondragon/bakery-catalog/api/responses"
	"github.com/angelmondragon/bakery-catalog/internal/categories"
	product "github.com/angelmondragon/bakery-catalog/internal/products"
	"github.com/angelmondragon/bakery-catalog/pkg/config"
	"github.com/angelmondragon/bakery-catalog/pkg/db"
	pkgerrors "github.com/angelmondragon/bakery-catalog/pkg/errors"
	"github.com/angelmondragon/bakery-catalog/pkg/logger"
	"github.com/angelmondragon/bakery-catalog/pkg/metrics"
	"github.com/angelmondragon/bakery-catalog/pkg/redis"
)

// NewRouter wires the HTML pages, the JSON API and the operational endpoints.
// redisClient and registry may be nil.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	renderer *pages.Renderer,
	categoryService categories.Service,
	productService product.Service,
) http.Handler {
	r := chi.NewRouter()

	var httpMetrics *metrics.HTTPMetrics
	if registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(registry)
	}

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		chimw.StripSlashes,
	)

	htmlNotFound := web.NotFound(renderer, logg)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasPrefix(req.URL.Path, "/api/") {
			responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "resource not found"))
			return
		}
		htmlNotFound(w, req)
	})

	checks := map[string]controllers.Pinger{}
	if dbP != nil {
		checks["db"] = dbP
	}
	var idempotencyStore redis.IdempotencyStore
	if redisClient != nil {
		checks["redis"] = redisClient
		idempotencyStore = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, checks, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, web.ProductListPath, http.StatusFound)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", web.ProductListPage(productService, renderer, cfg.FeatureFlags.PublicActiveOnly, logg))
		r.Get("/create", web.ProductCreateForm(categoryService, renderer, logg))
		r.Post("/create", web.ProductCreateSubmit(productService, categoryService, renderer, logg))
		r.Get("/{id}", web.ProductDetailPage(productService, renderer, logg))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", web.CategoryListPage(categoryService, renderer, logg))
			r.Get("/create", web.CategoryCreateForm(renderer, logg))
			r.Post("/create", web.CategoryCreateSubmit(categoryService, renderer, logg))
			r.Get("/{id}/products", web.CategoryProductsPage(productService, renderer, logg))
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
		r.Use(middleware.Idempotency(idempotencyStore, cfg.Idempotency.TTL, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(productService, logg))
			r.Post("/", controllers.ProductCreate(productService, logg))
			r.Post("/with-variant", controllers.ProductCreateWithVariant(productService, logg))
			r.Get("/{id}", controllers.ProductDetail(productService, logg))
			r.Put("/{id}", controllers.ProductUpdate(productService, logg))
			r.Patch("/{id}", controllers.ProductPatch(productService, logg))
			r.Delete("/{id}", controllers.ProductDelete(productService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(categoryService, logg))
			r.Post("/", controllers.CategoryCreate(categoryService, logg))
			r.Get("/{id}", controllers.CategoryDetail(categoryService, logg))
			r.Put("/{id}", controllers.CategoryUpdate(categoryService, logg))
			r.Patch("/{id}", controllers.CategoryPatch(categoryService, logg))
			r.Delete("/{id}", controllers.CategoryDelete(categoryService, logg))
		})
	})

	return r
}
