package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// Sentinel stands in for any optional field the extractor could not recover.
const Sentinel = "N/A"

// JobRecord is one posting as captured from a search pass. Title and URL are
// always present; everything else may hold Sentinel (or, for Location, the
// search location the posting was found under).
type JobRecord struct {
	Title       string
	Company     string
	Location    string
	Description string
	Salary      string
	URL         string
	DatePosted  string
}

// URLKey is the primary identity key.
func (j JobRecord) URLKey() string {
	return strings.TrimSpace(j.URL)
}

// TripleKey is the secondary identity key: the case-folded, trimmed
// (title, company, location) tuple. Two postings with different URLs but the
// same triple are the same job listed twice.
func (j JobRecord) TripleKey() string {
	fold := cases.Fold() // a Caser is stateful, one per call
	parts := []string{j.Title, j.Company, j.Location}
	for i, p := range parts {
		parts[i] = fold.String(strings.TrimSpace(p))
	}
	return strings.Join(parts, "\x1f")
}

// Complete reports whether the record carries both required fields.
func (j JobRecord) Complete() bool {
	return strings.TrimSpace(j.Title) != "" && strings.TrimSpace(j.URL) != ""
}
