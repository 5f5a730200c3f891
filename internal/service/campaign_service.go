package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"app/internal/model"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrInvalidCampaign is returned when name, leads or message template
	// are missing.
	ErrInvalidCampaign = errors.New("name, leads and message template are required")
	// ErrUnknownLeads is returned when some of the requested leads do not
	// exist or belong to another user.
	ErrUnknownLeads = errors.New("one or more leads not found")
)

// CreateCampaignParams is the input to campaign creation.
type CreateCampaignParams struct {
	Name            string
	LeadIDs         []string
	MessageTemplate string
	Duration        *string
	Budget          *string
	Status          string
}

type CampaignService interface {
	Create(ctx context.Context, userID string, p CreateCampaignParams) (*model.Campaign, int, error)
	List(ctx context.Context, userID string) ([]repository.CampaignWithLeadCount, error)
}

type campaignService struct {
	campaignRepo repository.CampaignRepository
	leadRepo     repository.LeadRepository
	logger       zerolog.Logger
}

func NewCampaignService(
	campaignRepo repository.CampaignRepository,
	leadRepo repository.LeadRepository,
	logger zerolog.Logger,
) CampaignService {
	return &campaignService{
		campaignRepo: campaignRepo,
		leadRepo:     leadRepo,
		logger:       logger.With().Str("service", "CampaignService").Logger(),
	}
}

// Create validates the input, verifies lead ownership, then writes the
// campaign row and its join rows in a single transaction so a failed join
// insert cannot leave an orphaned campaign behind.
func (s *campaignService) Create(ctx context.Context, userID string, p CreateCampaignParams) (*model.Campaign, int, error) {
	if strings.TrimSpace(p.Name) == "" || len(p.LeadIDs) == 0 || strings.TrimSpace(p.MessageTemplate) == "" {
		return nil, 0, ErrInvalidCampaign
	}

	// Ownership check: only the caller's own leads can be attached. The ID
	// list is deduplicated so repeated IDs cannot trip the join table's
	// primary key.
	ids := uniqueIDs(p.LeadIDs)
	owned, err := s.leadRepo.GetByIDs(ctx, userID, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("verifying campaign leads: %w", err)
	}
	if len(owned) != len(ids) {
		return nil, 0, ErrUnknownLeads
	}

	status := p.Status
	if status == "" {
		status = model.CampaignStatusDraft
	}

	campaign := &model.Campaign{
		ID:              uuid.NewString(),
		UserID:          userID,
		Name:            p.Name,
		MessageTemplate: p.MessageTemplate,
		Duration:        p.Duration,
		Budget:          p.Budget,
		Status:          status,
	}

	if err := s.campaignRepo.CreateWithLeads(ctx, campaign, ids); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("name", p.Name).Msg("Failed to create campaign")
		return nil, 0, fmt.Errorf("creating campaign: %w", err)
	}

	return campaign, len(ids), nil
}

func (s *campaignService) List(ctx context.Context, userID string) ([]repository.CampaignWithLeadCount, error) {
	campaigns, err := s.campaignRepo.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list campaigns")
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}
	return campaigns, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
