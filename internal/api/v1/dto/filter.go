package dto

import (
	"time"

	"app/internal/model"
)

// SaveFilterDTO is the saved-filter creation request body.
type SaveFilterDTO struct {
	Name    string         `json:"name" validate:"required"`
	Filters LeadFiltersDTO `json:"filters" validate:"required"`
}

// SavedFilterResponseDTO is a persisted filter preset.
type SavedFilterResponseDTO struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Name      string            `json:"name"`
	Filters   model.LeadFilters `json:"filters"`
	CreatedAt time.Time         `json:"created_at"`
}

// FromSavedFilter converts a model row to its response shape.
func FromSavedFilter(f model.SavedFilter) SavedFilterResponseDTO {
	return SavedFilterResponseDTO{
		ID:        f.ID,
		UserID:    f.UserID,
		Name:      f.Name,
		Filters:   f.Filters,
		CreatedAt: f.CreatedAt,
	}
}
