package indeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobscout/internal/domain"
	"jobscout/internal/scrape/extract"
	"jobscout/internal/scrape/types"
	"jobscout/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

type Config struct {
	BaseURL   string // override for tests; defaults to the public site
	UserAgent string
	Limiter   *util.HostLimiter
}

type Source struct {
	cfg Config
	hc  *http.Client
	ex  *extract.Extractor
}

func New(cfg Config) *Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.indeed.com"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "JobScout/1.0 (+local)"
	}
	s := &Source{
		cfg: cfg,
		hc:  &http.Client{Timeout: 20 * time.Second},
	}
	s.ex = &extract.Extractor{
		Rules: extract.FieldRules{
			Title: []extract.Lookup{
				extract.Text("h2.jobTitle a span"),
				extract.Text("h2.jobTitle"),
				extract.Text("a.jcs-JobTitle"),
			},
			Company: []extract.Lookup{
				extract.Text("[data-testid='company-name']"),
				extract.Text("span.companyName"),
				extract.Text(".company"),
			},
			Location: []extract.Lookup{
				extract.Text("[data-testid='text-location']"),
				extract.Text("div.companyLocation"),
				extract.Text(".location"),
			},
			URL: []extract.Lookup{
				extract.Attr("h2.jobTitle a", "href"),
				extract.Attr("a.jcs-JobTitle", "href"),
				extract.Attr("a[data-jk]", "href"),
			},
			Date: []extract.Lookup{
				extract.Text("[data-testid='myJobsStateDate']"),
				extract.Text("span.date"),
			},
			Salary: []extract.Lookup{
				extract.Text("[data-testid='attribute_snippet_testid']"),
				extract.Text(".salary-snippet-container"),
				extract.Text(".salaryText"),
			},
		},
		Describe: s.fetchDescription,
	}
	return s
}

func (s *Source) Name() string { return "indeed" }

// Search fetches one results page and extracts every usable fragment on it.
// Cancellation between fragments keeps whatever was already extracted.
func (s *Source) Search(ctx context.Context, task types.SearchTask) ([]domain.JobRecord, error) {
	searchURL := fmt.Sprintf("%s/jobs?q=%s&l=%s",
		s.cfg.BaseURL, url.QueryEscape(task.Query), url.QueryEscape(task.Location))

	doc, err := s.fetchDoc(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("indeed search %q/%q: %w", task.Query, task.Location, err)
	}

	// Result cards moved selectors over the years; take the first layout
	// that matches anything.
	frags := doc.Find("div.job_seen_beacon")
	if frags.Length() == 0 {
		frags = doc.Find("td.resultContent")
	}

	var out []domain.JobRecord
	frags.EachWithBreak(func(_ int, frag *goquery.Selection) bool {
		if ctx.Err() != nil {
			return false
		}
		rec, ok := s.ex.Record(ctx, frag, task.Location)
		if !ok {
			return true
		}
		rec.URL = s.absolute(rec.URL)
		out = append(out, rec)
		return true
	})
	return out, nil
}

func (s *Source) fetchDescription(ctx context.Context, jobURL string) (string, error) {
	doc, err := s.fetchDoc(ctx, s.absolute(jobURL))
	if err != nil {
		return "", err
	}
	for _, sel := range []string{"#jobDescriptionText", ".jobsearch-jobDescriptionText", ".description"} {
		if t := util.CleanText(doc.Find(sel).First().Text()); t != "" {
			return t, nil
		}
	}
	return "", fmt.Errorf("no description element on %s", jobURL)
}

func (s *Source) fetchDoc(ctx context.Context, rawURL string) (*goquery.Document, error) {
	if s.cfg.Limiter != nil {
		if err := s.cfg.Limiter.WaitURL(ctx, rawURL); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("get %s: status %d", rawURL, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}
	return doc, nil
}

func (s *Source) absolute(href string) string {
	if strings.HasPrefix(href, "/") {
		return s.cfg.BaseURL + href
	}
	return href
}
