package extract

import (
	"context"
	"log"

	"jobscout/internal/domain"
	"jobscout/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

// Lookup pulls one field value out of a result fragment. Lookups for a field
// run in order; the first usable value wins, so new site layouts are handled
// by appending another lookup rather than rewriting the old ones.
type Lookup func(frag *goquery.Selection) string

// Text looks up the text content of the first node matching sel.
func Text(sel string) Lookup {
	return func(frag *goquery.Selection) string {
		return frag.Find(sel).First().Text()
	}
}

// Attr looks up an attribute of the first node matching sel.
func Attr(sel, name string) Lookup {
	return func(frag *goquery.Selection) string {
		v, _ := frag.Find(sel).First().Attr(name)
		return v
	}
}

// FieldRules holds the ordered fallback chain per field.
type FieldRules struct {
	Title    []Lookup
	Company  []Lookup
	Location []Lookup
	URL      []Lookup
	Date     []Lookup
	Salary   []Lookup
}

// Extractor turns result fragments into candidate records. Describe, when
// set, fetches the full description from the posting's own page; a failure
// there never fails the record.
type Extractor struct {
	Rules    FieldRules
	Describe func(ctx context.Context, url string) (string, error)
}

// Record extracts one candidate from frag. The second return is false when
// the fragment lacks a usable title or URL; such fragments are discarded,
// not errors.
func (e *Extractor) Record(ctx context.Context, frag *goquery.Selection, searchLocation string) (domain.JobRecord, bool) {
	title := first(e.Rules.Title, frag)
	rawURL := first(e.Rules.URL, frag)
	if title == "" || rawURL == "" {
		log.Printf("[extract] discarding fragment: title=%q url=%q", title, rawURL)
		return domain.JobRecord{}, false
	}

	locFallback := util.CleanText(searchLocation)
	if locFallback == "" {
		locFallback = domain.Sentinel
	}

	rec := domain.JobRecord{
		Title:       title,
		URL:         util.CanonicalURL(rawURL),
		Company:     firstOr(e.Rules.Company, frag, domain.Sentinel),
		Location:    firstOr(e.Rules.Location, frag, locFallback),
		Salary:      firstOr(e.Rules.Salary, frag, domain.Sentinel),
		DatePosted:  firstOr(e.Rules.Date, frag, domain.Sentinel),
		Description: domain.Sentinel,
	}

	if e.Describe != nil {
		desc, err := e.Describe(ctx, rec.URL)
		if err != nil {
			log.Printf("[extract] description fetch failed url=%s: %v", rec.URL, err)
		} else if util.Usable(desc) {
			rec.Description = util.CleanField(desc)
		}
	}
	return rec, true
}

func first(chain []Lookup, frag *goquery.Selection) string {
	for _, look := range chain {
		if v := look(frag); util.Usable(v) {
			return util.CleanField(v)
		}
	}
	return ""
}

func firstOr(chain []Lookup, frag *goquery.Selection, fallback string) string {
	if v := first(chain, frag); v != "" {
		return v
	}
	return fallback
}
