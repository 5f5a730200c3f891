package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"app/internal/model"
)

type SavedFilterRepository interface {
	Insert(ctx context.Context, f *model.SavedFilter) error
	ListByUserID(ctx context.Context, userID string) ([]model.SavedFilter, error)
}

type savedFilterRepository struct {
	db *sql.DB
}

func NewSavedFilterRepository(db *sql.DB) SavedFilterRepository {
	return &savedFilterRepository{db: db}
}

func (r *savedFilterRepository) Insert(ctx context.Context, f *model.SavedFilter) error {
	filters, err := json.Marshal(f.Filters)
	if err != nil {
		return fmt.Errorf("failed to marshal saved filters: %w", err)
	}
	query := `
		INSERT INTO saved_filters (id, user_id, name, filters)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	if err := r.db.QueryRowContext(ctx, query, f.ID, f.UserID, f.Name, filters).Scan(&f.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert saved filter: %w", err)
	}
	return nil
}

func (r *savedFilterRepository) ListByUserID(ctx context.Context, userID string) ([]model.SavedFilter, error) {
	query := `
		SELECT id, user_id, name, filters, created_at
		FROM saved_filters
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved filters: %w", err)
	}
	defer rows.Close()

	var filters []model.SavedFilter
	for rows.Next() {
		var f model.SavedFilter
		var raw []byte
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &raw, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan saved filter row: %w", err)
		}
		if err := json.Unmarshal(raw, &f.Filters); err != nil {
			return nil, fmt.Errorf("failed to unmarshal saved filters: %w", err)
		}
		filters = append(filters, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return filters, nil
}
