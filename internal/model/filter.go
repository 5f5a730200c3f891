package model

import "time"

// LeadFilters is the structured criteria a generation request is built from.
// Industry, Country and JobTitle are required; the rest default at prompt
// construction time.
type LeadFilters struct {
	Industry    string `json:"industry"`
	Country     string `json:"country"`
	JobTitle    string `json:"jobTitle"`
	CompanySize string `json:"companySize,omitempty"`
	Experience  string `json:"experience,omitempty"`
	Language    string `json:"language,omitempty"`
	Count       int    `json:"count,omitempty"`
}

// SavedFilter is a reusable filter preset owned by a user.
type SavedFilter struct {
	ID        string      `db:"id" json:"id"`
	UserID    string      `db:"user_id" json:"user_id"`
	Name      string      `db:"name" json:"name"`
	Filters   LeadFilters `db:"filters" json:"filters"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}
