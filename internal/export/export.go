// Package export renders lead batches as downloadable CSV or JSON. Output is
// produced in memory and returned to the client; nothing is persisted
// server-side.
package export

import (
	"encoding/json"
	"strconv"
	"strings"

	"app/internal/model"
)

// csvHeader is the fixed column set for CSV exports. Deriving the header from
// the static Lead schema keeps heterogeneous batches from silently
// misaligning columns.
var csvHeader = []string{
	"fullName", "jobTitle", "company", "country", "industry",
	"email", "phone", "linkedin", "experience", "companySize",
	"language", "leadScore", "source", "status", "dateAdded",
}

// CSV renders leads as CSV with every field double-quoted and embedded
// quotes escaped by doubling. encoding/csv quotes only when necessary, which
// does not match the always-quoted format the export consumers expect.
func CSV(leads []model.Lead) string {
	var b strings.Builder

	writeRow := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}

	writeRow(csvHeader)
	for _, l := range leads {
		writeRow([]string{
			l.FullName,
			l.JobTitle,
			l.Company,
			l.Country,
			l.Industry,
			l.Email,
			deref(l.Phone),
			deref(l.LinkedIn),
			l.Experience,
			l.CompanySize,
			l.Language,
			strconv.Itoa(l.LeadScore),
			l.Source,
			l.Status,
			l.DateAdded.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	return b.String()
}

// JSON renders leads as a pretty-printed array with 2-space indentation.
func JSON(leads []model.Lead) (string, error) {
	out, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
