package handler

import (
	"expvar"
	"net/http"

	"github.com/emzola/bookcatalog/clients"
	"github.com/emzola/bookcatalog/config"
	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/api/books", h.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/api/books", h.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/api/books/:id", h.showBookHandler)
	router.HandlerFunc(http.MethodPut, "/api/books/:id", h.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/api/books/:id", h.deleteBookHandler)

	router.HandlerFunc(http.MethodGet, "/api/healthcheck", h.healthcheckHandler)

	if h.config.Metrics.Enabled {
		router.HandlerFunc(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))
	}

	// Cover images written by the disk blob store
	if h.config.Blob.Driver == config.BlobDriverDisk && h.config.BlobEnabled() {
		router.ServeFiles(clients.UploadsPath+"/*filepath", http.Dir(h.config.Blob.Dir))
	}

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", h.handleSwaggerFile())
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.metrics(h.recoverPanic(h.enableCORS(h.rateLimit(router))))
}
