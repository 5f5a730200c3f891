package model

import "time"

// Campaign statuses.
const (
	CampaignStatusDraft  = "draft"
	CampaignStatusActive = "active"
	CampaignStatusPaused = "paused"
)

// CampaignLeadStatusPending is the initial status of every lead attached to
// a campaign.
const CampaignLeadStatusPending = "pending"

// Campaign groups a set of leads under a named outreach effort.
type Campaign struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	Name            string    `db:"name" json:"name"`
	MessageTemplate string    `db:"message_template" json:"message_template"`
	Duration        *string   `db:"duration" json:"duration,omitempty"`
	Budget          *string   `db:"budget" json:"budget,omitempty"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// CampaignLead is the join row between a campaign and a lead, carrying a
// per-lead outreach status.
type CampaignLead struct {
	CampaignID string `db:"campaign_id" json:"campaign_id"`
	LeadID     string `db:"lead_id" json:"lead_id"`
	Status     string `db:"status" json:"status"`
}
