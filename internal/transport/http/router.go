// Package httptransport wires the public HTTP surface. It stays thin: the
// engine endpoints live on the casefile handler, transport only mounts them
// next to the operational endpoints.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	casehandler "casefile/internal/casefile/handler"
)

// NewRouter wires all public endpoints.
func NewRouter(h *casehandler.Handler) http.Handler {
	router := chi.NewRouter()
	h.Register(router)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())
	return router
}
