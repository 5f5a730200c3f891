package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/repository"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// LeadHandler handles lead generation, listing and store operations.
type LeadHandler struct {
	leadService service.LeadService
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(leadService service.LeadService, validate *validator.Validate, logger zerolog.Logger) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
		validate:    validate,
		logger:      logger.With().Str("handler", "LeadHandler").Logger(),
	}
}

// RegisterRoutes mounts lead routes. The generation route additionally runs
// through the per-user throttle.
func (h *LeadHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler, throttleMw func(http.Handler) http.Handler) {
	mux.Handle("/leads", authMw(http.HandlerFunc(h.listLeads)))
	mux.Handle("/leads/", authMw(http.HandlerFunc(h.handleLead)))
	mux.Handle("/leads/generate", authMw(throttleMw(http.HandlerFunc(h.generateLeads))))
	mux.Handle("/leads/delete", authMw(http.HandlerFunc(h.bulkDeleteLeads)))
	mux.Handle("/leads/export", authMw(http.HandlerFunc(h.exportLeads)))
}

// generateLeads godoc
// @Summary Generate leads
// @Description Runs the AI generation pipeline for the authenticated user.
// @Tags leads
// @Accept json
// @Produce json
// @Param request body dto.GenerateLeadsRequestDTO true "Generation filters"
// @Success 200 {object} dto.GenerateLeadsResponseDTO
// @Failure 400 {object} errorResponse "Validation failed"
// @Failure 429 {object} errorResponse "Daily generation limit reached"
// @Failure 502 {object} errorResponse "Generation failed"
// @Router /leads/generate [post]
func (h *LeadHandler) generateLeads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized: User ID not found in context")
		return
	}
	var req dto.GenerateLeadsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	result, err := h.leadService.GenerateLeads(r.Context(), userID, req.Filters.ToModel())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidFilters):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDailyLimitExceeded):
			writeError(w, http.StatusTooManyRequests, err.Error())
		default:
			h.logger.Error().Err(err).Str("user_id", userID).Msg("Lead generation failed")
			writeError(w, http.StatusBadGateway, "Lead generation failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.GenerateLeadsResponseDTO{
		Leads:     result.Leads,
		Count:     result.Count,
		Filters:   req.Filters,
		Persisted: result.Persisted,
	})
}

// listLeads godoc
// @Summary List leads
// @Description Returns the caller's leads, filtered and paginated.
// @Tags leads
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Param search query string false "Substring match across name, company and email"
// @Param status query string false "Exact status match"
// @Param industry query string false "Exact industry match"
// @Param country query string false "Exact country match"
// @Success 200 {object} dto.LeadListResponseDTO
// @Router /leads [get]
func (h *LeadHandler) listLeads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized: User ID not found in context")
		return
	}

	q := r.URL.Query()
	page := 1
	if p := q.Get("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	limit := 20
	if l := q.Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}

	leads, pagination, err := h.leadService.ListLeads(r.Context(), userID, repository.LeadListParams{
		Page:     page,
		Limit:    limit,
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Industry: q.Get("industry"),
		Country:  q.Get("country"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leads")
		return
	}
	if leads == nil {
		leads = []model.Lead{}
	}

	writeJSON(w, http.StatusOK, dto.LeadListResponseDTO{
		Leads: leads,
		Pagination: dto.PaginationDTO{
			Page:  pagination.Page,
			Limit: pagination.Limit,
			Total: pagination.Total,
			Pages: pagination.Pages,
		},
	})
}

func (h *LeadHandler) handleLead(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getLead(w, r)
	case http.MethodPatch:
		if strings.HasSuffix(r.URL.Path, "/status") {
			h.updateLeadStatus(w, r)
			return
		}
		writeError(w, http.StatusNotFound, "Not Found")
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

// getLead godoc
// @Summary Get a lead
// @Description Retrieves one of the caller's leads by ID.
// @Tags leads
// @Produce json
// @Param leadId path string true "Lead ID"
// @Success 200 {object} model.Lead
// @Failure 404 {object} errorResponse "Lead not found"
// @Router /leads/{leadId} [get]
func (h *LeadHandler) getLead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized: User ID not found in context")
		return
	}
	leadID := strings.TrimPrefix(r.URL.Path, "/leads/")

	lead, err := h.leadService.GetLead(r.Context(), userID, leadID)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "Lead not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to retrieve lead")
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// updateLeadStatus godoc
// @Summary Update lead status
// @Description Updates the status of one of the caller's leads.
// @Tags leads
// @Accept json
// @Param leadId path string true "Lead ID"
// @Param request body dto.UpdateLeadStatusDTO true "New status"
// @Success 204
// @Failure 400 {object} errorResponse "Invalid status"
// @Failure 404 {object} errorResponse "Lead not found"
// @Router /leads/{leadId}/status [patch]
func (h *LeadHandler) updateLeadStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized: User ID not found in context")
		return
	}
	leadID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/leads/"), "/status")

	var req dto.UpdateLeadStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := h.leadService.UpdateLeadStatus(r.Context(), userID, leadID, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrLeadNotFound):
			writeError(w, http.StatusNotFound, "Lead not found")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update lead status")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// bulkDeleteLeads godoc
// @Summary Delete leads
// @Description Deletes a batch of the caller's leads.
// @Tags leads
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteLeadsDTO true "Lead IDs to delete"
// @Success 200 {object} map[string]int64
// @Router /leads/delete [post]
func (h *LeadHandler) bulkDeleteLeads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized: User ID not found in context")
		return
	}
	var req dto.BulkDeleteLeadsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	deleted, err := h.leadService.BulkDeleteLeads(r.Context(), userID, req.LeadIDs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete leads")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// exportLeads godoc
// @Summary Export leads
// @Description Renders a batch of the caller's leads as CSV or JSON.
// @Tags leads
// @Accept json
// @Produce json
// @Param request body dto.ExportLeadsRequestDTO true "Lead IDs and format"
// @Success 200 {object} dto.ExportLeadsResponseDTO
// @Router /leads/export [post]
func (h *LeadHandler) exportLeads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized: User ID not found in context")
		return
	}
	var req dto.ExportLeadsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	result, err := h.leadService.ExportLeads(r.Context(), userID, req.LeadIDs, req.Format)
	if err != nil {
		if errors.Is(err, service.ErrInvalidExportFormat) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to export leads")
		return
	}
	writeJSON(w, http.StatusOK, dto.ExportLeadsResponseDTO{
		Filename:    result.Filename,
		ContentType: result.ContentType,
		Data:        result.Data,
	})
}
