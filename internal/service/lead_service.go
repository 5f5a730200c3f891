package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"app/internal/export"
	"app/internal/llm"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/repository"
	"app/internal/scoring"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrInvalidFilters is returned when a required filter field is missing.
	ErrInvalidFilters = errors.New("industry, country and job title are required")
	// ErrDailyLimitExceeded is returned when the user's daily generation
	// quota is exhausted. The external generator is never invoked in that case.
	ErrDailyLimitExceeded = errors.New("daily generation limit reached")
	// ErrLeadNotFound is returned when a lead does not exist or belongs to
	// another user.
	ErrLeadNotFound = errors.New("lead not found")
	// ErrInvalidStatus is returned for an unknown lead status.
	ErrInvalidStatus = errors.New("invalid lead status")
	// ErrInvalidExportFormat is returned for export formats other than csv
	// and json.
	ErrInvalidExportFormat = errors.New("export format must be csv or json")
)

// GenerationResult distinguishes "shown to the user" from "durably saved":
// lead persistence after a successful generation is best-effort, and a
// storage failure does not withhold the generated leads from the caller.
type GenerationResult struct {
	Leads     []model.Lead
	Count     int
	Persisted bool
}

// ExportResult is an in-memory export artifact.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        string
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// LeadServiceConfig carries the pipeline constants. It is plain data passed
// in at construction so tests can override limits per run.
type LeadServiceConfig struct {
	DailyLimit       int
	DefaultLeadCount int
}

type LeadService interface {
	GenerateLeads(ctx context.Context, userID string, filters model.LeadFilters) (*GenerationResult, error)
	ListLeads(ctx context.Context, userID string, p repository.LeadListParams) ([]model.Lead, Pagination, error)
	GetLead(ctx context.Context, userID, leadID string) (*model.Lead, error)
	UpdateLeadStatus(ctx context.Context, userID, leadID, status string) error
	BulkDeleteLeads(ctx context.Context, userID string, leadIDs []string) (int64, error)
	ExportLeads(ctx context.Context, userID string, leadIDs []string, format string) (*ExportResult, error)
}

type leadService struct {
	leadRepo  repository.LeadRepository
	usageRepo repository.UsageRepository
	generator llm.Generator
	cfg       LeadServiceConfig
	logger    zerolog.Logger
	now       func() time.Time
}

func NewLeadService(
	leadRepo repository.LeadRepository,
	usageRepo repository.UsageRepository,
	generator llm.Generator,
	cfg LeadServiceConfig,
	logger zerolog.Logger,
) LeadService {
	return &leadService{
		leadRepo:  leadRepo,
		usageRepo: usageRepo,
		generator: generator,
		cfg:       cfg,
		logger:    logger.With().Str("service", "LeadService").Logger(),
		now:       time.Now,
	}
}

// GenerateLeads runs the full pipeline: filter validation, quota check,
// prompt build, external generation, parse, score and enrich, best-effort
// persist, then usage increment and audit log.
func (s *leadService) GenerateLeads(ctx context.Context, userID string, filters model.LeadFilters) (*GenerationResult, error) {
	if strings.TrimSpace(filters.Industry) == "" ||
		strings.TrimSpace(filters.Country) == "" ||
		strings.TrimSpace(filters.JobTitle) == "" {
		return nil, ErrInvalidFilters
	}

	count := filters.Count
	if count <= 0 {
		count = s.cfg.DefaultLeadCount
	}

	// Quota check happens once, before the slow external call. The
	// increment below runs only after a successful generation, so failures
	// never consume quota; see UsageRepository for the accepted race.
	today := s.today()
	used, err := s.usageRepo.CountForDay(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("checking daily usage: %w", err)
	}
	if used >= s.cfg.DailyLimit {
		middleware.RecordRateLimitRejection()
		return nil, ErrDailyLimitExceeded
	}

	prompt := llm.BuildLeadPrompt(filters, count)
	raw, err := s.generator.Generate(ctx, llm.SystemPrompt, prompt)
	if err != nil {
		middleware.RecordGenerationFailure("llm_call")
		return nil, fmt.Errorf("generating leads: %w", err)
	}

	generated, err := llm.ParseLeads(raw)
	if err != nil {
		middleware.RecordGenerationFailure("parse")
		return nil, fmt.Errorf("parsing generated leads: %w", err)
	}

	leads := s.enrich(userID, filters, generated)

	// Best-effort persistence: a storage failure is logged and reported via
	// Persisted=false, but the generated leads are still returned.
	persisted := true
	if err := s.leadRepo.InsertBatch(ctx, leads); err != nil {
		persisted = false
		s.logger.Error().Err(err).Str("user_id", userID).Int("count", len(leads)).Msg("Failed to persist generated leads")
	}

	if err := s.usageRepo.Increment(ctx, userID, today); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to increment usage counter")
	}
	if err := s.usageRepo.AppendGenerationLog(ctx, model.GenerationLog{
		UserID:         userID,
		Filters:        filters,
		LeadsGenerated: len(leads),
	}); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to append generation log")
	}

	middleware.RecordLeadsGenerated(len(leads))
	return &GenerationResult{Leads: leads, Count: len(leads), Persisted: persisted}, nil
}

// enrich synthesizes the fields the model is not asked to produce: identity,
// ownership, score, source, status, tags and timestamps.
func (s *leadService) enrich(userID string, filters model.LeadFilters, generated []llm.GeneratedLead) []model.Lead {
	now := s.now().UTC()
	leads := make([]model.Lead, 0, len(generated))
	for _, g := range generated {
		leads = append(leads, model.Lead{
			ID:          uuid.NewString(),
			UserID:      userID,
			FullName:    g.FullName,
			JobTitle:    g.JobTitle,
			Company:     g.Company,
			Country:     g.Country,
			Industry:    g.Industry,
			Email:       g.Email,
			Phone:       g.Phone,
			LinkedIn:    g.LinkedIn,
			Experience:  g.Experience,
			CompanySize: g.CompanySize,
			Language:    g.Language,
			LeadScore:   scoring.Score(g.JobTitle, g.CompanySize, g.Email, g.Phone, g.LinkedIn),
			Source:      model.LeadSourceGenerated,
			Status:      model.LeadStatusNew,
			Tags:        []string{filters.Industry, filters.Country},
			DateAdded:   now,
			CreatedAt:   now,
		})
	}
	return leads
}

func (s *leadService) ListLeads(ctx context.Context, userID string, p repository.LeadListParams) ([]model.Lead, Pagination, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	leads, total, err := s.leadRepo.List(ctx, userID, p)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list leads")
		return nil, Pagination{}, fmt.Errorf("listing leads: %w", err)
	}
	pages := (total + p.Limit - 1) / p.Limit
	return leads, Pagination{Page: p.Page, Limit: p.Limit, Total: total, Pages: pages}, nil
}

func (s *leadService) GetLead(ctx context.Context, userID, leadID string) (*model.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, userID, leadID)
	if err != nil {
		return nil, fmt.Errorf("getting lead: %w", err)
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	return lead, nil
}

func (s *leadService) UpdateLeadStatus(ctx context.Context, userID, leadID, status string) error {
	if !model.ValidLeadStatus(status) {
		return ErrInvalidStatus
	}
	ok, err := s.leadRepo.UpdateStatus(ctx, userID, leadID, status)
	if err != nil {
		return fmt.Errorf("updating lead status: %w", err)
	}
	if !ok {
		return ErrLeadNotFound
	}
	return nil
}

func (s *leadService) BulkDeleteLeads(ctx context.Context, userID string, leadIDs []string) (int64, error) {
	if len(leadIDs) == 0 {
		return 0, nil
	}
	n, err := s.leadRepo.BulkDelete(ctx, userID, leadIDs)
	if err != nil {
		return 0, fmt.Errorf("deleting leads: %w", err)
	}
	return n, nil
}

func (s *leadService) ExportLeads(ctx context.Context, userID string, leadIDs []string, format string) (*ExportResult, error) {
	leads, err := s.leadRepo.GetByIDs(ctx, userID, leadIDs)
	if err != nil {
		return nil, fmt.Errorf("loading leads for export: %w", err)
	}

	stamp := s.now().UTC().Format("2006-01-02")
	switch format {
	case "csv":
		return &ExportResult{
			Filename:    "leads-" + stamp + ".csv",
			ContentType: "text/csv",
			Data:        export.CSV(leads),
		}, nil
	case "json":
		data, err := export.JSON(leads)
		if err != nil {
			return nil, fmt.Errorf("rendering JSON export: %w", err)
		}
		return &ExportResult{
			Filename:    "leads-" + stamp + ".json",
			ContentType: "application/json",
			Data:        data,
		}, nil
	default:
		return nil, ErrInvalidExportFormat
	}
}

// today truncates now to the calendar day used as the usage key.
func (s *leadService) today() time.Time {
	return s.now().UTC().Truncate(24 * time.Hour)
}
