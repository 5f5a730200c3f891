// Package scoring implements the deterministic lead quality heuristic.
package scoring

import "strings"

const baseScore = 50

// seniorityKeywords bump the score when found in the job title. Matching is
// case-sensitive substring: "ceo" or "Chief Executive Officer" do not match.
var seniorityKeywords = []string{"CEO", "CTO", "CMO", "Director", "VP", "Head of"}

// Score computes a lead quality score in [0,100] from the generated
// attributes. It is pure: the same inputs always produce the same score.
//
// Base 50, +20 for a seniority keyword in the job title, +15 for a large
// company ("500+" or "1000+" in the size string), +15 when email, phone and
// linkedin are all present, capped at 100.
func Score(jobTitle, companySize, email string, phone, linkedin *string) int {
	score := baseScore

	for _, kw := range seniorityKeywords {
		if strings.Contains(jobTitle, kw) {
			score += 20
			break
		}
	}

	if strings.Contains(companySize, "500+") || strings.Contains(companySize, "1000+") {
		score += 15
	}

	if email != "" && phone != nil && *phone != "" && linkedin != nil && *linkedin != "" {
		score += 15
	}

	if score > 100 {
		score = 100
	}
	return score
}
