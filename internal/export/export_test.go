package export

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"app/internal/model"
)

func sampleLead() model.Lead {
	phone := "+1 555 0100"
	linkedin := "https://linkedin.com/in/jane"
	return model.Lead{
		ID:          "8d4f0f2a-0000-0000-0000-000000000001",
		UserID:      "user-1",
		FullName:    "Jane Doe",
		JobTitle:    "VP of Sales",
		Company:     `Acme, "The Best" Inc.`,
		Country:     "USA",
		Industry:    "Technology",
		Email:       "jane@acme.com",
		Phone:       &phone,
		LinkedIn:    &linkedin,
		Experience:  "10 years",
		CompanySize: "500+ employees",
		Language:    "English",
		LeadScore:   100,
		Source:      model.LeadSourceGenerated,
		Status:      model.LeadStatusNew,
		Tags:        []string{"Technology", "USA"},
		DateAdded:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCSVQuoting(t *testing.T) {
	out := CSV([]model.Lead{sampleLead()})

	if !strings.Contains(out, `"Acme, ""The Best"" Inc."`) {
		t.Errorf("embedded quotes not doubled:\n%s", out)
	}
	// Every field is quoted, including plain ones.
	if !strings.Contains(out, `"Jane Doe"`) {
		t.Errorf("plain field not quoted:\n%s", out)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	lead := sampleLead()
	out := CSV([]model.Lead{lead})

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("standard CSV reader rejected export: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}

	header, row := records[0], records[1]
	byName := map[string]string{}
	for i, name := range header {
		byName[name] = row[i]
	}

	if byName["company"] != lead.Company {
		t.Errorf("company did not round-trip: %q != %q", byName["company"], lead.Company)
	}
	if byName["fullName"] != lead.FullName {
		t.Errorf("fullName did not round-trip: %q", byName["fullName"])
	}
	if byName["leadScore"] != "100" {
		t.Errorf("leadScore = %q, want 100", byName["leadScore"])
	}
}

func TestCSVNilOptionalFields(t *testing.T) {
	lead := sampleLead()
	lead.Phone = nil
	lead.LinkedIn = nil
	out := CSV([]model.Lead{lead})

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("CSV reader rejected export: %v", err)
	}
	row := records[1]
	for i, name := range records[0] {
		if (name == "phone" || name == "linkedin") && row[i] != "" {
			t.Errorf("%s = %q, want empty", name, row[i])
		}
	}
}

func TestCSVHeaderStable(t *testing.T) {
	// The header comes from the static schema, not the first record.
	empty := CSV(nil)
	lines := strings.Split(strings.TrimSpace(empty), "\n")
	if len(lines) != 1 {
		t.Fatalf("empty export should be header only, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], `"fullName","jobTitle","company"`) {
		t.Errorf("unexpected header: %s", lines[0])
	}
}

func TestJSONPrettyPrinted(t *testing.T) {
	out, err := JSON([]model.Lead{sampleLead()})
	if err != nil {
		t.Fatalf("JSON export failed: %v", err)
	}
	if !strings.Contains(out, "\n  {") {
		t.Errorf("expected 2-space indentation:\n%s", out)
	}

	var back []model.Lead
	if err := json.Unmarshal([]byte(out), &back); err != nil {
		t.Fatalf("JSON export does not parse back: %v", err)
	}
	if back[0].Company != sampleLead().Company {
		t.Errorf("company did not round-trip: %q", back[0].Company)
	}
}
