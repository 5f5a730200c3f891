package dto

import (
	"app/internal/model"
	"app/internal/repository"
)

// CreateCampaignDTO is the campaign creation request body.
type CreateCampaignDTO struct {
	Name            string   `json:"name" validate:"required"`
	LeadIDs         []string `json:"leadIds" validate:"required,min=1,dive,required"`
	MessageTemplate string   `json:"messageTemplate" validate:"required"`
	Duration        *string  `json:"duration,omitempty"`
	Budget          *string  `json:"budget,omitempty"`
	Status          string   `json:"status,omitempty" validate:"omitempty,oneof=draft active paused"`
}

// CreateCampaignResponseDTO is returned after campaign creation.
type CreateCampaignResponseDTO struct {
	Campaign  model.Campaign `json:"campaign"`
	LeadCount int            `json:"leadCount"`
}

// CampaignListResponseDTO lists the caller's campaigns newest-first.
type CampaignListResponseDTO struct {
	Campaigns []repository.CampaignWithLeadCount `json:"campaigns"`
}
