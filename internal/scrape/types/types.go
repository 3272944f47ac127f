package types

import (
	"context"

	"jobscout/internal/domain"
)

// SearchTask is one (query, location) pair of a search pass.
type SearchTask struct {
	Query    string
	Location string
}

// Source turns one search task into candidate records. Implementations are
// interchangeable over the same deduplicating store; the store never learns
// which source produced a record.
type Source interface {
	Name() string
	Search(ctx context.Context, task SearchTask) ([]domain.JobRecord, error)
}
