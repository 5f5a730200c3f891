package model

import "time"

// UsageRecord is the per-user daily generation counter. One row per user per
// calendar day; created on the first request of the day and incremented
// monotonically thereafter.
type UsageRecord struct {
	UserID        string    `db:"user_id" json:"user_id"`
	UsageDate     time.Time `db:"usage_date" json:"usage_date"`
	RequestsCount int       `db:"requests_count" json:"requests_count"`
	LastRequest   time.Time `db:"last_request" json:"last_request"`
}

// GenerationLog is an append-only audit record of a generation run. The
// pipeline never mutates or deletes these rows.
type GenerationLog struct {
	UserID         string      `db:"user_id" json:"user_id"`
	Filters        LeadFilters `db:"filters" json:"filters"`
	LeadsGenerated int         `db:"leads_generated" json:"leads_generated"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
}
