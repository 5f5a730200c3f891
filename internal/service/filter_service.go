package service

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"
	"app/internal/repository"

	"github.com/google/uuid"
)

// ErrInvalidFilterPreset is returned when a preset is missing its name.
var ErrInvalidFilterPreset = errors.New("filter name is required")

type SavedFilterService interface {
	Save(ctx context.Context, userID, name string, filters model.LeadFilters) (*model.SavedFilter, error)
	List(ctx context.Context, userID string) ([]model.SavedFilter, error)
}

type savedFilterService struct {
	repo repository.SavedFilterRepository
}

func NewSavedFilterService(repo repository.SavedFilterRepository) SavedFilterService {
	return &savedFilterService{repo: repo}
}

func (s *savedFilterService) Save(ctx context.Context, userID, name string, filters model.LeadFilters) (*model.SavedFilter, error) {
	if name == "" {
		return nil, ErrInvalidFilterPreset
	}
	preset := &model.SavedFilter{
		ID:      uuid.NewString(),
		UserID:  userID,
		Name:    name,
		Filters: filters,
	}
	if err := s.repo.Insert(ctx, preset); err != nil {
		return nil, fmt.Errorf("saving filter preset: %w", err)
	}
	return preset, nil
}

func (s *savedFilterService) List(ctx context.Context, userID string) ([]model.SavedFilter, error) {
	presets, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing filter presets: %w", err)
	}
	return presets, nil
}
