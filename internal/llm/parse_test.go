package llm

import (
	"errors"
	"testing"
)

const leadArray = `[{"fullName": "Sara El Amrani", "jobTitle": "CEO", "company": "Atlas Digital", "email": "s@atlas.ma"}, {"fullName": "Omar Benali", "jobTitle": "CTO", "company": "Maghreb Soft", "email": "o@maghreb.ma"}]`

func TestParseLeadsDirect(t *testing.T) {
	leads, err := ParseLeads(leadArray)
	if err != nil {
		t.Fatalf("ParseLeads returned error: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(leads))
	}
	if leads[0].FullName != "Sara El Amrani" {
		t.Errorf("unexpected first lead name: %q", leads[0].FullName)
	}
	if leads[1].JobTitle != "CTO" {
		t.Errorf("unexpected second lead title: %q", leads[1].JobTitle)
	}
}

func TestParseLeadsMarkdownFence(t *testing.T) {
	raw := "Here you go:\n```json\n" + leadArray + "\n```\nLet me know if you need more."
	leads, err := ParseLeads(raw)
	if err != nil {
		t.Fatalf("ParseLeads returned error: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(leads))
	}
}

func TestParseLeadsProseWrapped(t *testing.T) {
	raw := "Sure! I generated the leads you asked for: " + leadArray + " — hope this helps."
	leads, err := ParseLeads(raw)
	if err != nil {
		t.Fatalf("ParseLeads returned error: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(leads))
	}
}

func TestParseLeadsWhitespacePadding(t *testing.T) {
	// Leading/trailing whitespace should succeed on the direct path.
	leads, err := parseDirect("\n  " + leadArray + "  \n")
	if err != nil {
		t.Fatalf("direct parse failed on padded array: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(leads))
	}
}

func TestParseLeadsUnparsable(t *testing.T) {
	for _, raw := range []string{
		"I'm sorry, I can't help with that.",
		"[not json at all",
		"{}",
		"",
	} {
		if _, err := ParseLeads(raw); !errors.Is(err, ErrUnparsableResponse) {
			t.Errorf("ParseLeads(%q) = %v, want ErrUnparsableResponse", raw, err)
		}
	}
}

func TestParseLeadsMissingFieldsTolerated(t *testing.T) {
	// Missing fields decode to zero values rather than failing the batch.
	leads, err := ParseLeads(`[{"fullName": "No Email"}]`)
	if err != nil {
		t.Fatalf("ParseLeads returned error: %v", err)
	}
	if leads[0].Email != "" || leads[0].Phone != nil {
		t.Errorf("expected zero-valued fields, got email=%q phone=%v", leads[0].Email, leads[0].Phone)
	}
}
