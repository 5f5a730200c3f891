package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UsageRepository tracks per-user daily generation counts and the append-only
// generation audit log.
//
// The quota sequence is deliberately check-then-increment rather than a
// single atomic reservation: the increment only happens after a generation
// succeeds, so failed generations never consume quota. Two requests racing
// through the check can overshoot the daily limit by one per overlap; the
// limit is a soft limit.
type UsageRepository interface {
	// CountForDay returns the number of recorded generations for the user on
	// the given day. A missing row counts as zero.
	CountForDay(ctx context.Context, userID string, day time.Time) (int, error)
	// Increment records one successful generation (insert-if-absent, else
	// increment) and stamps last_request.
	Increment(ctx context.Context, userID string, day time.Time) error
	// AppendGenerationLog appends one audit row. Log rows are never mutated
	// or deleted.
	AppendGenerationLog(ctx context.Context, log model.GenerationLog) error
}

type usageRepo struct {
	pool *pgxpool.Pool
}

// NewUsageRepo creates a new UsageRepository.
func NewUsageRepo(pool *pgxpool.Pool) UsageRepository {
	return &usageRepo{pool: pool}
}

func (r *usageRepo) CountForDay(ctx context.Context, userID string, day time.Time) (int, error) {
	const q = `
		SELECT requests_count
		FROM usage_records
		WHERE user_id = $1
		  AND usage_date = $2
	`
	var count int
	err := r.pool.QueryRow(ctx, q, userID, day.Format("2006-01-02")).Scan(&count)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("counting generations for user %s: %w", userID, err)
	}
	return count, nil
}

func (r *usageRepo) Increment(ctx context.Context, userID string, day time.Time) error {
	const q = `
		INSERT INTO usage_records (user_id, usage_date, requests_count, last_request)
		VALUES ($1, $2, 1, now())
		ON CONFLICT (user_id, usage_date)
		DO UPDATE SET requests_count = usage_records.requests_count + 1, last_request = now()
	`
	if _, err := r.pool.Exec(ctx, q, userID, day.Format("2006-01-02")); err != nil {
		return fmt.Errorf("recording generation for user %s: %w", userID, err)
	}
	return nil
}

func (r *usageRepo) AppendGenerationLog(ctx context.Context, log model.GenerationLog) error {
	filters, err := json.Marshal(log.Filters)
	if err != nil {
		return fmt.Errorf("marshaling generation log filters: %w", err)
	}
	const q = `
		INSERT INTO generation_logs (user_id, filters, leads_generated)
		VALUES ($1, $2, $3)
	`
	if _, err := r.pool.Exec(ctx, q, log.UserID, filters, log.LeadsGenerated); err != nil {
		return fmt.Errorf("appending generation log for user %s: %w", log.UserID, err)
	}
	return nil
}
