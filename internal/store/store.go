package store

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"jobscout/internal/domain"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gofrs/flock"
)

const filenameStamp = "20060102_150405"

// Store keeps one append-only dataset of job records under dir, one CSV file
// per run, and filters candidate batches against everything persisted so
// far. Identities are tracked both by URL and by the normalized
// (title, company, location) triple.
type Store struct {
	dir    string
	prefix string
	seen   mapset.Set[string]
	fl     *flock.Flock
	now    func() time.Time
}

func New(dir, prefix string) *Store {
	return &Store{
		dir:    dir,
		prefix: prefix,
		seen:   mapset.NewThreadUnsafeSet[string](),
		fl:     flock.New(filepath.Join(dir, "."+prefix+".lock")),
		now:    time.Now,
	}
}

func urlKey(r domain.JobRecord) string    { return "u:" + r.URLKey() }
func tripleKey(r domain.JobRecord) string { return "t:" + r.TripleKey() }

// Load scans every prior dataset file, seeds the seen-set, and returns the
// combined history deduplicated first by URL, then by normalized triple.
// A corrupt file costs only that file.
func (s *Store) Load() ([]domain.JobRecord, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("store dir %s: %w", s.dir, err)
	}

	var all []domain.JobRecord
	for _, path := range s.datasetFiles() {
		recs, err := readDataset(path)
		if err != nil {
			log.Printf("[store:%s] skipping history file: %v", s.prefix, err)
			continue
		}
		all = append(all, recs...)
	}

	byURL := all[:0]
	urls := mapset.NewThreadUnsafeSet[string]()
	for _, r := range all {
		if !urls.Add(urlKey(r)) {
			continue
		}
		byURL = append(byURL, r)
	}

	var history []domain.JobRecord
	triples := mapset.NewThreadUnsafeSet[string]()
	for _, r := range byURL {
		if !triples.Add(tripleKey(r)) {
			continue
		}
		history = append(history, r)
	}

	for _, r := range history {
		s.seen.Add(urlKey(r))
		s.seen.Add(tripleKey(r))
	}
	log.Printf("[store:%s] loaded %d previously seen postings", s.prefix, len(history))
	return history, nil
}

// FilterNew returns the candidates not yet in the seen-set and records their
// identities immediately, so a duplicate later in the same run collides with
// the first occurrence.
func (s *Store) FilterNew(batch []domain.JobRecord) []domain.JobRecord {
	var fresh []domain.JobRecord
	for _, r := range batch {
		if s.seen.Contains(urlKey(r)) || s.seen.Contains(tripleKey(r)) {
			continue
		}
		s.seen.Add(urlKey(r))
		s.seen.Add(tripleKey(r))
		fresh = append(fresh, r)
	}
	return fresh
}

// Persist writes recs to a new timestamped dataset file and returns its
// path. Nothing is written for an empty set. The persisted URLs are
// recomputed from disk under a directory lock first: an overlapping run may
// have written since Load, and anything it already captured is dropped here
// rather than duplicated.
func (s *Store) Persist(recs []domain.JobRecord) (string, error) {
	if len(recs) == 0 {
		return "", nil
	}

	if err := s.fl.Lock(); err != nil {
		return "", fmt.Errorf("lock %s: %w", s.fl.Path(), err)
	}
	defer s.fl.Unlock()

	persisted := mapset.NewThreadUnsafeSet[string]()
	for _, path := range s.datasetFiles() {
		prior, err := readDataset(path)
		if err != nil {
			log.Printf("[store:%s] skipping history file: %v", s.prefix, err)
			continue
		}
		for _, r := range prior {
			persisted.Add(r.URLKey())
		}
	}

	var residual []domain.JobRecord
	for _, r := range recs {
		if persisted.Contains(r.URLKey()) {
			continue
		}
		residual = append(residual, r)
	}
	if len(residual) == 0 {
		log.Printf("[store:%s] all %d records already persisted by another run", s.prefix, len(recs))
		return "", nil
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.csv", s.prefix, s.now().UTC().Format(filenameStamp)))
	if err := writeDataset(path, residual); err != nil {
		return "", fmt.Errorf("persist %s: %w", path, err)
	}
	log.Printf("[store:%s] wrote %d new postings to %s", s.prefix, len(residual), path)
	return path, nil
}

func (s *Store) datasetFiles() []string {
	paths, err := filepath.Glob(filepath.Join(s.dir, s.prefix+"_*.csv"))
	if err != nil {
		return nil
	}
	sort.Strings(paths)
	return paths
}
