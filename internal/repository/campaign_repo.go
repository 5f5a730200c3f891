package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"app/internal/model"
)

// CampaignWithLeadCount pairs a campaign with the number of leads attached
// to it, for listings.
type CampaignWithLeadCount struct {
	model.Campaign
	LeadCount int `json:"lead_count"`
}

type CampaignRepository interface {
	// CreateWithLeads inserts the campaign row and one join row per lead in
	// a single transaction. Either everything persists or nothing does.
	CreateWithLeads(ctx context.Context, c *model.Campaign, leadIDs []string) error
	ListByUserID(ctx context.Context, userID string) ([]CampaignWithLeadCount, error)
}

type campaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) CreateWithLeads(ctx context.Context, c *model.Campaign, leadIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin campaign transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insertCampaign = `
		INSERT INTO campaigns (id, user_id, name, message_template, duration, budget, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	if err := tx.QueryRowContext(ctx, insertCampaign,
		c.ID, c.UserID, c.Name, c.MessageTemplate, c.Duration, c.Budget, c.Status,
	).Scan(&c.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert campaign: %w", err)
	}

	query := `INSERT INTO campaign_leads (campaign_id, lead_id, status) VALUES `
	args := make([]interface{}, 0, len(leadIDs)*3)
	placeholders := make([]string, 0, len(leadIDs))
	for i, leadID := range leadIDs {
		base := i * 3
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d)",
			base+1, base+2, base+3))
		args = append(args, c.ID, leadID, model.CampaignLeadStatusPending)
	}
	query += strings.Join(placeholders, ", ")

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert campaign leads: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit campaign transaction: %w", err)
	}
	return nil
}

func (r *campaignRepository) ListByUserID(ctx context.Context, userID string) ([]CampaignWithLeadCount, error) {
	query := `
		SELECT c.id, c.user_id, c.name, c.message_template, c.duration, c.budget, c.status, c.created_at,
		       COUNT(cl.lead_id) AS lead_count
		FROM campaigns c
		LEFT JOIN campaign_leads cl ON cl.campaign_id = c.id
		WHERE c.user_id = $1
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []CampaignWithLeadCount
	for rows.Next() {
		var c CampaignWithLeadCount
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Name,
			&c.MessageTemplate,
			&c.Duration,
			&c.Budget,
			&c.Status,
			&c.CreatedAt,
			&c.LeadCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan campaign row: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return campaigns, nil
}
