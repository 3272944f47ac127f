package runner

import (
	"context"
	"log"

	"jobscout/internal/classify"
	"jobscout/internal/config"
	"jobscout/internal/domain"
	"jobscout/internal/scrape/types"
	"jobscout/internal/store"
)

// Runner drives one sequential search pass: for every (query, location)
// pair, fetch, extract, filter, then persist once at the end. Cancellation
// is checked at each boundary and never throws away records already
// admitted.
type Runner struct {
	Cfg         config.Config
	Source      types.Source
	Internships *store.Store
	EntryLevel  *store.Store
	Classifier  *classify.Classifier
}

func (r *Runner) Run(ctx context.Context) error {
	if _, err := r.Internships.Load(); err != nil {
		return err
	}
	if _, err := r.EntryLevel.Load(); err != nil {
		return err
	}

	var newInternships, newEntryLevel []domain.JobRecord

pass:
	for _, query := range r.Cfg.Search.Queries {
		if ctx.Err() != nil {
			log.Printf("[runner] stop requested, skipping remaining queries")
			break pass
		}
		for _, loc := range r.Cfg.Search.Locations {
			if ctx.Err() != nil {
				log.Printf("[runner] stop requested, skipping remaining locations")
				break pass
			}

			task := types.SearchTask{Query: query, Location: loc}
			log.Printf("[runner] %s query=%q location=%q", r.Source.Name(), query, loc)

			recs, err := r.Source.Search(ctx, task)
			if err != nil {
				// one bad pair never sinks the pass
				log.Printf("[runner] search failed query=%q location=%q: %v", query, loc, err)
				continue
			}

			internships, entryLevel := r.Classifier.Split(recs)
			newInternships = append(newInternships, r.Internships.FilterNew(internships)...)
			newEntryLevel = append(newEntryLevel, r.EntryLevel.FilterNew(entryLevel)...)
		}
	}

	// Persist runs even after a stop request: everything admitted so far
	// still lands on disk.
	if _, err := r.Internships.Persist(newInternships); err != nil {
		return err
	}
	if _, err := r.EntryLevel.Persist(newEntryLevel); err != nil {
		return err
	}

	log.Printf("[runner] pass done: %d new internships, %d new entry-level",
		len(newInternships), len(newEntryLevel))
	return nil
}
