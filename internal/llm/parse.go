package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrUnparsableResponse is returned when every parse strategy has failed.
var ErrUnparsableResponse = errors.New("failed to parse generated leads")

// GeneratedLead is the shape the model is asked to produce. Fields are
// accessed optimistically downstream; missing fields decode to zero values
// rather than failing the batch.
type GeneratedLead struct {
	FullName    string  `json:"fullName"`
	JobTitle    string  `json:"jobTitle"`
	Company     string  `json:"company"`
	Country     string  `json:"country"`
	Industry    string  `json:"industry"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone"`
	LinkedIn    *string `json:"linkedin"`
	Experience  string  `json:"experience"`
	CompanySize string  `json:"companySize"`
	Language    string  `json:"language"`
}

// parserStrategy is one attempt at turning raw model output into leads.
// Strategies run in order; the first success wins. New repair heuristics are
// added by appending to parserStrategies, not by restructuring control flow.
type parserStrategy struct {
	name  string
	parse func(raw string) ([]GeneratedLead, error)
}

var parserStrategies = []parserStrategy{
	{name: "direct", parse: parseDirect},
	{name: "bracket-extract", parse: parseBracketExtract},
}

// ParseLeads turns free-text model output into a lead slice. Models routinely
// wrap the JSON array in prose or markdown fences, so a bare json.Unmarshal
// is not enough; the bracket-extract fallback tolerates that.
func ParseLeads(raw string) ([]GeneratedLead, error) {
	for _, s := range parserStrategies {
		if leads, err := s.parse(raw); err == nil {
			return leads, nil
		}
	}
	return nil, ErrUnparsableResponse
}

func parseDirect(raw string) ([]GeneratedLead, error) {
	var leads []GeneratedLead
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// parseBracketExtract locates the first '[' and the last ']' in the text and
// parses the substring between them.
func parseBracketExtract(raw string) ([]GeneratedLead, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end <= start {
		return nil, ErrUnparsableResponse
	}
	var leads []GeneratedLead
	if err := json.Unmarshal([]byte(raw[start:end+1]), &leads); err != nil {
		return nil, err
	}
	return leads, nil
}
