package llm

import (
	"fmt"

	"app/internal/model"
)

// SystemPrompt frames every generation call.
const SystemPrompt = `You are a B2B lead generation assistant. You produce realistic, well-formed business contact records for prospecting. You always respond with valid JSON and nothing else.`

// Defaults applied when the optional filter fields are unset.
const (
	defaultCompanySize = "Any"
	defaultExperience  = "Mid to Senior"
	defaultLanguage    = "English/French/Arabic"
)

// BuildLeadPrompt renders the generation prompt for a set of filters. It is pure
// string construction: every filter field is embedded, optional fields fall
// back to their defaults, and the output schema is spelled out with an
// example object. The model is asked only for the fields it can invent;
// score, source, status, tags and ownership are synthesized locally.
func BuildLeadPrompt(f model.LeadFilters, count int) string {
	companySize := f.CompanySize
	if companySize == "" {
		companySize = defaultCompanySize
	}
	experience := f.Experience
	if experience == "" {
		experience = defaultExperience
	}
	language := f.Language
	if language == "" {
		language = defaultLanguage
	}

	return fmt.Sprintf(`Generate %d realistic B2B leads matching these criteria:

Industry: %s
Country: %s
Job Title: %s
Company Size: %s
Experience Level: %s
Language: %s

Each lead must be a JSON object with exactly these fields:
- fullName: realistic full name appropriate for the country
- jobTitle: matching or closely related to the requested job title
- company: plausible company name for the industry
- country: the requested country
- industry: the requested industry
- email: professional email derived from the name and company
- phone: phone number with the country's dialing code
- linkedin: LinkedIn profile URL
- experience: years of experience matching the requested level
- companySize: employee count range matching the requested size
- language: primary business language

Example:
{"fullName": "Sara El Amrani", "jobTitle": "Marketing Director", "company": "Atlas Digital", "country": "Morocco", "industry": "Technology", "email": "s.elamrani@atlasdigital.ma", "phone": "+212 6 12 34 56 78", "linkedin": "https://linkedin.com/in/saraelamrani", "experience": "8 years", "companySize": "50-200 employees", "language": "French"}

Return ONLY a JSON array of %d such objects. No prose, no markdown, no explanation.`,
		count,
		f.Industry,
		f.Country,
		f.JobTitle,
		companySize,
		experience,
		language,
		count,
	)
}
