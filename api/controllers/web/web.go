// Package web serves the server rendered catalog pages.
package web

import (
	"context"
	"net/http"

	"github.com/angelmondragon/bakery-catalog/api/middleware"
	"github.com/angelmondragon/bakery-catalog/api/pages"
	"github.com/angelmondragon/bakery-catalog/api/responses"
	"github.com/angelmondragon/bakery-catalog/api/validators"
	pkgerrors "github.com/angelmondragon/bakery-catalog/pkg/errors"
	"github.com/angelmondragon/bakery-catalog/pkg/logger"
)

const (
	ProductListPath  = "/products/"
	CategoryListPath = "/products/categories/"
)

// pathID reads a positive id route parameter. Pages answer bad ids with 404.
func pathID(r *http.Request, key string) (uint, error) {
	id, err := validators.ParsePathID(r, key)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "page not found")
	}
	return id, nil
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, validators.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form submission")
	}
	return nil
}

func render(ctx context.Context, w http.ResponseWriter, renderer *pages.Renderer, logg *logger.Logger, status int, page string, data any) {
	if err := renderer.Render(w, status, page, data); err != nil {
		writeErrorPage(ctx, w, renderer, logg, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render page"))
	}
}

// writeErrorPage is the HTML counterpart of responses.WriteError.
func writeErrorPage(ctx context.Context, w http.ResponseWriter, renderer *pages.Renderer, logg *logger.Logger, err error) {
	_, meta, msg := responses.Resolve(err)
	responses.LogError(ctx, logg, meta.HTTPStatus, err)

	data := pages.ErrorData{
		Status:    meta.HTTPStatus,
		Title:     http.StatusText(meta.HTTPStatus),
		Message:   msg,
		RequestID: middleware.RequestIDFromContext(ctx),
	}
	if renderErr := renderer.Render(w, meta.HTTPStatus, pages.ErrorPage, data); renderErr != nil {
		if logg != nil {
			logg.Error(ctx, "render error page", renderErr)
		}
		http.Error(w, msg, meta.HTTPStatus)
	}
}

// NotFound renders the 404 page for unknown HTML routes.
func NotFound(renderer *pages.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeErrorPage(r.Context(), w, renderer, logg, pkgerrors.New(pkgerrors.CodeNotFound, "page not found"))
	}
}
