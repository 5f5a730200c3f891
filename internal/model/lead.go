package model

import "time"

// LeadSourceGenerated marks leads produced by the generation pipeline.
const LeadSourceGenerated = "AI Generated"

// Lead statuses a lead can move through after generation.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
	LeadStatusRejected  = "rejected"
)

// ValidLeadStatus reports whether s is a known lead status.
func ValidLeadStatus(s string) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusRejected:
		return true
	}
	return false
}

// Lead is a prospective business contact owned by the user who generated it.
// Rows are immutable after insert except for status updates and deletion by
// the owner.
type Lead struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	FullName    string    `db:"full_name" json:"fullName"`
	JobTitle    string    `db:"job_title" json:"jobTitle"`
	Company     string    `db:"company" json:"company"`
	Country     string    `db:"country" json:"country"`
	Industry    string    `db:"industry" json:"industry"`
	Email       string    `db:"email" json:"email"`
	Phone       *string   `db:"phone" json:"phone,omitempty"`
	LinkedIn    *string   `db:"linkedin" json:"linkedin,omitempty"`
	Experience  string    `db:"experience" json:"experience"`
	CompanySize string    `db:"company_size" json:"companySize"`
	Language    string    `db:"language" json:"language"`
	LeadScore   int       `db:"lead_score" json:"leadScore"`
	Source      string    `db:"source" json:"source"`
	Status      string    `db:"status" json:"status"`
	Tags        []string  `db:"tags" json:"tags"`
	DateAdded   time.Time `db:"date_added" json:"dateAdded"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
