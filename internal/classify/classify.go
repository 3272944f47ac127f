package classify

import (
	"strings"

	"jobscout/internal/config"
	"jobscout/internal/domain"
)

// Classifier splits captured postings into the internship dataset and the
// entry-level dataset based on title keywords.
type Classifier struct {
	rules []config.Rule
}

func New(rules []config.Rule) *Classifier {
	return &Classifier{rules: rules}
}

func (c *Classifier) IsInternship(rec domain.JobRecord) bool {
	title := strings.ToLower(rec.Title)
	for _, r := range c.rules {
		for _, needle := range r.Any {
			n := strings.ToLower(strings.TrimSpace(needle))
			if n == "" {
				continue
			}
			if strings.Contains(title, n) {
				return true
			}
		}
	}
	return false
}

// Split partitions a batch in input order.
func (c *Classifier) Split(batch []domain.JobRecord) (internships, entryLevel []domain.JobRecord) {
	for _, rec := range batch {
		if c.IsInternship(rec) {
			internships = append(internships, rec)
		} else {
			entryLevel = append(entryLevel, rec)
		}
	}
	return internships, entryLevel
}
