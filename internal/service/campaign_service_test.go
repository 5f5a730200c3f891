package service

import (
	"context"
	"errors"
	"testing"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCampaignRepository
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) CreateWithLeads(ctx context.Context, c *model.Campaign, leadIDs []string) error {
	args := m.Called(ctx, c, leadIDs)
	return args.Error(0)
}

func (m *MockCampaignRepository) ListByUserID(ctx context.Context, userID string) ([]repository.CampaignWithLeadCount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CampaignWithLeadCount), args.Error(1)
}

func ownedLeads(ids ...string) []model.Lead {
	leads := make([]model.Lead, 0, len(ids))
	for _, id := range ids {
		leads = append(leads, model.Lead{ID: id, UserID: "user-1"})
	}
	return leads
}

func validCampaignParams() CreateCampaignParams {
	return CreateCampaignParams{
		Name:            "Q3 Outreach",
		LeadIDs:         []string{"l1", "l2"},
		MessageTemplate: "Hi {{name}}, ...",
	}
}

func TestCreateCampaign(t *testing.T) {
	campaignRepo := new(MockCampaignRepository)
	leadRepo := new(MockLeadRepository)
	svc := NewCampaignService(campaignRepo, leadRepo, zerolog.Nop())

	leadRepo.On("GetByIDs", mock.Anything, "user-1", []string{"l1", "l2"}).Return(ownedLeads("l1", "l2"), nil)
	campaignRepo.On("CreateWithLeads", mock.Anything, mock.Anything, []string{"l1", "l2"}).Return(nil)

	campaign, leadCount, err := svc.Create(context.Background(), "user-1", validCampaignParams())
	require.NoError(t, err)
	assert.Equal(t, 2, leadCount)
	assert.Equal(t, "user-1", campaign.UserID)
	assert.Equal(t, model.CampaignStatusDraft, campaign.Status)
	assert.NotEmpty(t, campaign.ID)
}

func TestCreateCampaignDeduplicatesLeads(t *testing.T) {
	campaignRepo := new(MockCampaignRepository)
	leadRepo := new(MockLeadRepository)
	svc := NewCampaignService(campaignRepo, leadRepo, zerolog.Nop())

	leadRepo.On("GetByIDs", mock.Anything, "user-1", []string{"l1", "l2"}).Return(ownedLeads("l1", "l2"), nil)
	campaignRepo.On("CreateWithLeads", mock.Anything, mock.Anything, []string{"l1", "l2"}).Return(nil)

	p := validCampaignParams()
	p.LeadIDs = []string{"l1", "l2", "l1"}

	_, leadCount, err := svc.Create(context.Background(), "user-1", p)
	require.NoError(t, err)
	assert.Equal(t, 2, leadCount)
}

func TestCreateCampaignValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateCampaignParams)
	}{
		{"missing name", func(p *CreateCampaignParams) { p.Name = "  " }},
		{"no leads", func(p *CreateCampaignParams) { p.LeadIDs = nil }},
		{"missing template", func(p *CreateCampaignParams) { p.MessageTemplate = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			campaignRepo := new(MockCampaignRepository)
			leadRepo := new(MockLeadRepository)
			svc := NewCampaignService(campaignRepo, leadRepo, zerolog.Nop())

			p := validCampaignParams()
			tt.mutate(&p)

			_, _, err := svc.Create(context.Background(), "user-1", p)
			assert.ErrorIs(t, err, ErrInvalidCampaign)
			// Fail fast: no partial side effects.
			campaignRepo.AssertNotCalled(t, "CreateWithLeads", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCreateCampaignForeignLeadsRejected(t *testing.T) {
	campaignRepo := new(MockCampaignRepository)
	leadRepo := new(MockLeadRepository)
	svc := NewCampaignService(campaignRepo, leadRepo, zerolog.Nop())

	// Only one of the two requested leads belongs to the caller.
	leadRepo.On("GetByIDs", mock.Anything, "user-1", []string{"l1", "l2"}).Return(ownedLeads("l1"), nil)

	_, _, err := svc.Create(context.Background(), "user-1", validCampaignParams())
	assert.ErrorIs(t, err, ErrUnknownLeads)
	campaignRepo.AssertNotCalled(t, "CreateWithLeads", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCampaignRepoFailureSurfaces(t *testing.T) {
	campaignRepo := new(MockCampaignRepository)
	leadRepo := new(MockLeadRepository)
	svc := NewCampaignService(campaignRepo, leadRepo, zerolog.Nop())

	leadRepo.On("GetByIDs", mock.Anything, "user-1", mock.Anything).Return(ownedLeads("l1", "l2"), nil)
	campaignRepo.On("CreateWithLeads", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("join insert failed"))

	_, _, err := svc.Create(context.Background(), "user-1", validCampaignParams())
	require.Error(t, err)
}

func TestListCampaigns(t *testing.T) {
	campaignRepo := new(MockCampaignRepository)
	leadRepo := new(MockLeadRepository)
	svc := NewCampaignService(campaignRepo, leadRepo, zerolog.Nop())

	campaignRepo.On("ListByUserID", mock.Anything, "user-1").Return([]repository.CampaignWithLeadCount{
		{Campaign: model.Campaign{ID: "c1", Name: "Q3"}, LeadCount: 5},
	}, nil)

	campaigns, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, 5, campaigns[0].LeadCount)
}
