// Package api provides HTTP handlers for the PlanForge API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/planforge/planforge/internal/core/domain"
	"github.com/planforge/planforge/internal/core/planner"
	"github.com/planforge/planforge/internal/shell/api/openapi"
	"github.com/planforge/planforge/internal/shell/store"
)

// =============================================================================
// Handler
// =============================================================================

// Handler provides HTTP handlers for the API.
type Handler struct {
	store   store.Store
	planner *planner.Planner
	spec    *openapi.Generator
	logger  *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, p *planner.Planner, l *slog.Logger) *Handler {
	if l == nil {
		l = slog.Default()
	}
	if p == nil {
		p = planner.NewPlanner(planner.DefaultStageRegistry(), planner.Capabilities{}, l)
	}
	return &Handler{
		store:   s,
		planner: p,
		spec:    newSpecGenerator(),
		logger:  l,
	}
}

// Routes returns the router with all routes configured.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.jsonContentType)
	r.Use(h.requestIDHeader)

	// Health endpoints
	r.Get("/health", h.handleHealth)
	r.Get("/ready", h.handleReady)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/plans", func(r chi.Router) {
			r.Post("/forward", h.handleCompileForward)
			r.Post("/prestage", h.handlePrestage)
			r.Post("/rollback", h.handleCompileRollback)
			r.Get("/", h.handleListPlans)
			r.Get("/{id}", h.handleGetPlan)
		})
	})

	// OpenAPI spec
	r.Get("/openapi.json", h.spec.Handler())

	return r
}

// =============================================================================
// Middleware
// =============================================================================

// jsonContentType sets Content-Type header to application/json.
func (h *Handler) jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// requestIDHeader copies the request ID to the response header.
func (h *Handler) requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Health Handlers
// =============================================================================

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)

	if _, err := h.store.ListPlans(r.Context(), store.ListOptions{Limit: 1}); err != nil {
		checks["database"] = "failed"
		h.writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{
			Status: "not_ready",
			Checks: checks,
		})
		return
	}
	checks["database"] = "ok"

	h.writeJSON(w, http.StatusOK, ReadyResponse{
		Status: "ready",
		Checks: checks,
	})
}

// =============================================================================
// Compilation Handlers
// =============================================================================

func (h *Handler) handleCompileForward(w http.ResponseWriter, r *http.Request) {
	var req CompilePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}
	if req.Request == nil {
		h.writeError(w, http.StatusBadRequest, "request is required", "validation_error")
		return
	}

	normalized, err := h.planner.Normalize(req.Request)
	if err != nil {
		h.writeNormalizeError(w, err)
		return
	}

	source, err := h.planner.ResolveSource(req.Ancestry)
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err.Error(), "ancestry_error")
		return
	}

	plan := h.planner.ForwardPlan(normalized, source, req.ParentStageID)

	record := store.NewPlanRecord(plan, req.Request)
	if err := h.store.SavePlan(r.Context(), record); err != nil {
		h.logger.Error("failed to archive plan", "plan_id", plan.ID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to archive plan", "internal_error")
		return
	}

	h.logger.Info("compiled forward plan",
		"plan_id", plan.ID,
		"cluster", req.Request.Cluster,
		"stages", len(plan.Stages),
		"degraded", plan.Degraded)

	h.writeJSON(w, http.StatusCreated, PlanResponse{
		Plan:              plan,
		SourceServerGroup: source,
	})
}

func (h *Handler) handlePrestage(w http.ResponseWriter, r *http.Request) {
	var req CompilePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}
	if req.Request == nil {
		h.writeError(w, http.StatusBadRequest, "request is required", "validation_error")
		return
	}

	normalized, err := h.planner.Normalize(req.Request)
	if err != nil {
		h.writeNormalizeError(w, err)
		return
	}

	directive := h.planner.PrepareCapacity(normalized)

	h.writeJSON(w, http.StatusOK, PrestageResponse{Directive: directive})
}

func (h *Handler) handleCompileRollback(w http.ResponseWriter, r *http.Request) {
	var req RollbackPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	plan := h.planner.CompensationPlan(req.Ancestry, req.ParentStageID)

	record := store.NewPlanRecord(plan, nil)
	if err := h.store.SavePlan(r.Context(), record); err != nil {
		h.logger.Error("failed to archive plan", "plan_id", plan.ID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to archive plan", "internal_error")
		return
	}

	h.logger.Info("compiled rollback plan", "plan_id", plan.ID, "stages", len(plan.Stages))

	h.writeJSON(w, http.StatusCreated, PlanResponse{Plan: plan})
}

// =============================================================================
// Archive Handlers
// =============================================================================

func (h *Handler) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.store.GetPlan(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "plan not found", "plan_not_found")
			return
		}
		h.logger.Error("failed to get plan", "plan_id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get plan", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, record)
}

func (h *Handler) handleListPlans(w http.ResponseWriter, r *http.Request) {
	opts := store.DefaultListOptions()

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			opts.Limit = l
		}
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		if o, err := strconv.Atoi(offset); err == nil {
			opts.Offset = o
		}
	}

	records, err := h.store.ListPlans(r.Context(), opts)
	if err != nil {
		h.logger.Error("failed to list plans", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list plans", "internal_error")
		return
	}

	resp := ListPlansResponse{
		Plans:  make([]PlanSummaryResponse, 0, len(records)),
		Total:  len(records),
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}
	for _, rec := range records {
		resp.Plans = append(resp.Plans, PlanSummaryResponse{
			ID:          rec.ID,
			Kind:        string(rec.Kind),
			Application: rec.Application,
			Cluster:     rec.Cluster,
			Region:      rec.Region,
			Account:     rec.Account,
			StageCount:  rec.StageCount,
			Degraded:    rec.Degraded,
			CreatedAt:   rec.CreatedAt,
		})
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Helpers
// =============================================================================

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, code string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeNormalizeError maps normalization failures onto HTTP statuses. Missing
// identifiers are a caller mistake; an unavailable pipeline capability is a
// semantic rejection of an otherwise well formed request.
func (h *Handler) writeNormalizeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPipelineUnavailable):
		h.writeError(w, http.StatusUnprocessableEntity, err.Error(), "pipeline_unavailable")
	case errors.Is(err, domain.ErrRegionRequired),
		errors.Is(err, domain.ErrClusterRequired),
		errors.Is(err, domain.ErrAccountRequired):
		h.writeError(w, http.StatusBadRequest, err.Error(), "validation_error")
	default:
		h.logger.Error("failed to normalize request", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to normalize request", "internal_error")
	}
}

func isNotFound(err error) bool {
	var storeErr *store.StoreError
	if errors.As(err, &storeErr) {
		return errors.Is(storeErr.Unwrap(), store.ErrNotFound)
	}
	return errors.Is(err, store.ErrNotFound)
}
