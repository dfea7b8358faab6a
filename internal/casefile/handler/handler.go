// Package handler exposes the engine operations over HTTP. The transport is
// a thin collaborator: rows go in as plain string maps, diagnostics come
// back as data.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"casefile/internal/casefile/inherit"
	"casefile/internal/casefile/models"
	"casefile/internal/casefile/reconcile"
	"casefile/internal/casefile/validate"
	"casefile/internal/platform/metrics"
	"casefile/internal/platform/middleware"
	"casefile/internal/transport/http/shared"
	dErrors "casefile/pkg/domain-errors"
)

// Service defines the engine operations the transport needs.
type Service interface {
	NewCase(id string) (*models.Case, error)
	Snapshot() *models.Case
	Validate() validate.Report
	Import(section reconcile.Section, rows []map[string]string, strategy string) (reconcile.BatchResult, error)
	Inherit(productID string) (inherit.Result, error)
	Rename(section reconcile.Section, fromID, toID string) (string, error)
}

// Handler handles the case endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
	metrics *metrics.Metrics
}

// New creates a new case Handler.
func New(service Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{logger: logger, service: service, metrics: m}
}

// Register registers the case routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	caseRouter := chi.NewRouter()
	caseRouter.Use(middleware.Recovery(h.logger))
	caseRouter.Use(middleware.RequestID)
	caseRouter.Use(middleware.Logger(h.logger))
	caseRouter.Use(middleware.Latency(h.metrics))
	caseRouter.Use(middleware.ContentTypeJSON)

	caseRouter.Post("/case", h.handleNewCase)
	caseRouter.Get("/case", h.handleSnapshot)
	caseRouter.Post("/case/validate", h.handleValidate)
	caseRouter.Post("/case/rename", h.handleRename)
	caseRouter.Post("/case/products/inherit", h.handleInherit)
	caseRouter.Post("/import/{section}", h.handleImport)

	r.Mount("/", caseRouter)
}

func (h *Handler) handleNewCase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	opened, err := h.service.NewCase(req.ID)
	if err != nil {
		h.logger.WarnContext(r.Context(), "new case rejected",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error())
		shared.WriteError(w, err)
		return
	}
	h.metrics.IncrementCasesStarted()
	shared.WriteJSON(w, http.StatusCreated, opened)
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	shared.WriteJSON(w, http.StatusOK, h.service.Snapshot())
}

func (h *Handler) handleValidate(w http.ResponseWriter, _ *http.Request) {
	shared.WriteJSON(w, http.StatusOK, h.service.Validate())
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	section := reconcile.Section(chi.URLParam(r, "section"))

	var req struct {
		Rows     []map[string]string `json:"rows"`
		Strategy string              `json:"strategy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	batch, err := h.service.Import(section, req.Rows, req.Strategy)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, struct {
		reconcile.BatchResult
		Summary []string `json:"summary"`
	}{BatchResult: batch, Summary: batch.SummaryLines()})
}

func (h *Handler) handleInherit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.service.Inherit(req.ProductID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleRename(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Section reconcile.Section `json:"section"`
		From    string            `json:"from"`
		To      string            `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	diagnostic, err := h.service.Rename(req.Section, req.From, req.To)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, struct {
		Diagnostic string `json:"diagnostic,omitempty"`
	}{Diagnostic: diagnostic})
}
