package dto

import "app/internal/model"

// LeadFiltersDTO mirrors model.LeadFilters on the wire. Industry, country
// and job title are required; their absence is a validation error, not a
// default.
type LeadFiltersDTO struct {
	Industry    string `json:"industry" validate:"required"`
	Country     string `json:"country" validate:"required"`
	JobTitle    string `json:"jobTitle" validate:"required"`
	CompanySize string `json:"companySize,omitempty"`
	Experience  string `json:"experience,omitempty"`
	Language    string `json:"language,omitempty"`
	Count       int    `json:"count,omitempty" validate:"omitempty,min=1,max=50"`
}

// ToModel converts the DTO to the domain filter set.
func (d LeadFiltersDTO) ToModel() model.LeadFilters {
	return model.LeadFilters{
		Industry:    d.Industry,
		Country:     d.Country,
		JobTitle:    d.JobTitle,
		CompanySize: d.CompanySize,
		Experience:  d.Experience,
		Language:    d.Language,
		Count:       d.Count,
	}
}

// GenerateLeadsRequestDTO is the generation request body.
type GenerateLeadsRequestDTO struct {
	Filters LeadFiltersDTO `json:"filters" validate:"required"`
}

// GenerateLeadsResponseDTO is the generation response. Persisted reports
// whether the returned leads were durably stored.
type GenerateLeadsResponseDTO struct {
	Leads     []model.Lead   `json:"leads"`
	Count     int            `json:"count"`
	Filters   LeadFiltersDTO `json:"filters"`
	Persisted bool           `json:"persisted"`
}

// LeadListResponseDTO is one page of leads.
type LeadListResponseDTO struct {
	Leads      []model.Lead  `json:"leads"`
	Pagination PaginationDTO `json:"pagination"`
}

// PaginationDTO describes the page returned by a listing.
type PaginationDTO struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// UpdateLeadStatusDTO is the status-update request body.
type UpdateLeadStatusDTO struct {
	Status string `json:"status" validate:"required"`
}

// BulkDeleteLeadsDTO is the bulk-delete request body.
type BulkDeleteLeadsDTO struct {
	LeadIDs []string `json:"leadIds" validate:"required,min=1,dive,required"`
}

// ExportLeadsRequestDTO is the export request body.
type ExportLeadsRequestDTO struct {
	LeadIDs []string `json:"leadIds" validate:"required,min=1,dive,required"`
	Format  string   `json:"format" validate:"required,oneof=csv json"`
}

// ExportLeadsResponseDTO carries the in-memory export artifact for
// client-side download.
type ExportLeadsResponseDTO struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"`
}
