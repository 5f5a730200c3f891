package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
)

// FilterHandler handles saved filter preset endpoints.
type FilterHandler struct {
	filterService service.SavedFilterService
	validate      *validator.Validate
}

// NewFilterHandler creates a new FilterHandler.
func NewFilterHandler(filterService service.SavedFilterService, validate *validator.Validate) *FilterHandler {
	return &FilterHandler{filterService: filterService, validate: validate}
}

// RegisterRoutes mounts saved filter routes.
func (h *FilterHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/filters/saved", authMw(http.HandlerFunc(h.handleSavedFilters)))
}

func (h *FilterHandler) handleSavedFilters(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.saveFilter(w, r)
	case http.MethodGet:
		h.listFilters(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

// saveFilter godoc
// @Summary Save a filter preset
// @Description Persists a reusable generation filter preset for the caller.
// @Tags filters
// @Accept json
// @Produce json
// @Param request body dto.SaveFilterDTO true "Preset name and filters"
// @Success 201 {object} dto.SavedFilterResponseDTO
// @Router /filters/saved [post]
func (h *FilterHandler) saveFilter(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized: User ID not found in context")
		return
	}
	var req dto.SaveFilterDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	preset, err := h.filterService.Save(r.Context(), userID, req.Name, req.Filters.ToModel())
	if err != nil {
		if errors.Is(err, service.ErrInvalidFilterPreset) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save filter")
		return
	}
	writeJSON(w, http.StatusCreated, dto.FromSavedFilter(*preset))
}

// listFilters godoc
// @Summary List saved filter presets
// @Description Returns the caller's saved filters, newest first.
// @Tags filters
// @Produce json
// @Success 200 {array} dto.SavedFilterResponseDTO
// @Router /filters/saved [get]
func (h *FilterHandler) listFilters(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized: User ID not found in context")
		return
	}

	presets, err := h.filterService.List(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list filters")
		return
	}
	out := make([]dto.SavedFilterResponseDTO, 0, len(presets))
	for _, p := range presets {
		out = append(out, dto.FromSavedFilter(p))
	}
	writeJSON(w, http.StatusOK, out)
}
