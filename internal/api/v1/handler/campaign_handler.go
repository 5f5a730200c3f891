package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CampaignHandler handles campaign endpoints.
type CampaignHandler struct {
	campaignService service.CampaignService
	validate        *validator.Validate
	logger          zerolog.Logger
}

// NewCampaignHandler creates a new CampaignHandler.
func NewCampaignHandler(campaignService service.CampaignService, validate *validator.Validate, logger zerolog.Logger) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		validate:        validate,
		logger:          logger.With().Str("handler", "CampaignHandler").Logger(),
	}
}

// RegisterRoutes mounts campaign routes.
func (h *CampaignHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/campaigns", authMw(http.HandlerFunc(h.handleCampaigns)))
}

func (h *CampaignHandler) handleCampaigns(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createCampaign(w, r)
	case http.MethodGet:
		h.listCampaigns(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

// createCampaign godoc
// @Summary Create a campaign
// @Description Groups a set of the caller's leads under a named outreach campaign.
// @Tags campaigns
// @Accept json
// @Produce json
// @Param request body dto.CreateCampaignDTO true "Campaign definition"
// @Success 201 {object} dto.CreateCampaignResponseDTO
// @Failure 400 {object} errorResponse "Validation failed or unknown leads"
// @Router /campaigns [post]
func (h *CampaignHandler) createCampaign(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized: User ID not found in context")
		return
	}
	var req dto.CreateCampaignDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	campaign, leadCount, err := h.campaignService.Create(r.Context(), userID, service.CreateCampaignParams{
		Name:            req.Name,
		LeadIDs:         req.LeadIDs,
		MessageTemplate: req.MessageTemplate,
		Duration:        req.Duration,
		Budget:          req.Budget,
		Status:          req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCampaign), errors.Is(err, service.ErrUnknownLeads):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to create campaign")
			writeError(w, http.StatusInternalServerError, "Failed to create campaign")
		}
		return
	}

	writeJSON(w, http.StatusCreated, dto.CreateCampaignResponseDTO{
		Campaign:  *campaign,
		LeadCount: leadCount,
	})
}

// listCampaigns godoc
// @Summary List campaigns
// @Description Returns the caller's campaigns, newest first, with lead counts.
// @Tags campaigns
// @Produce json
// @Success 200 {object} dto.CampaignListResponseDTO
// @Router /campaigns [get]
func (h *CampaignHandler) listCampaigns(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized: User ID not found in context")
		return
	}

	campaigns, err := h.campaignService.List(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list campaigns")
		return
	}
	if campaigns == nil {
		campaigns = []repository.CampaignWithLeadCount{}
	}
	writeJSON(w, http.StatusOK, dto.CampaignListResponseDTO{Campaigns: campaigns})
}
