package indeed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobscout/internal/domain"
	"jobscout/internal/scrape/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPage = `<html><body>
<div class="job_seen_beacon">
  <h2 class="jobTitle"><a href="/viewjob?jk=1"><span>Realtime Engineer</span></a></h2>
  <span data-testid="company-name">Acme</span>
  <div data-testid="text-location">Berkeley, CA</div>
  <div data-testid="attribute_snippet_testid">$150k - $180k</div>
  <span class="date">Posted 2 days ago</span>
</div>
<div class="job_seen_beacon">
  <h2 class="jobTitle"><a href="/viewjob?jk=2"><span>Streaming Intern</span></a></h2>
  <span data-testid="company-name">…</span>
</div>
<div class="job_seen_beacon">
  <h2 class="jobTitle"><span>No Link Here</span></h2>
</div>
</body></html>`

func newTestServer(t *testing.T, descStatus map[string]int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/jobs":
			fmt.Fprint(w, searchPage)
		case "/viewjob":
			jk := r.URL.Query().Get("jk")
			if code, ok := descStatus[jk]; ok && code != http.StatusOK {
				http.Error(w, "nope", code)
				return
			}
			fmt.Fprintf(w, `<html><body><div id="jobDescriptionText">Description for job %s.</div></body></html>`, jk)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchExtractsRecords(t *testing.T) {
	srv := newTestServer(t, nil)
	src := New(Config{BaseURL: srv.URL})

	recs, err := src.Search(context.Background(), types.SearchTask{Query: "engineer", Location: "Berkeley"})
	require.NoError(t, err)
	require.Len(t, recs, 2, "fragment without a link is discarded")

	first := recs[0]
	assert.Equal(t, "Realtime Engineer", first.Title)
	assert.Equal(t, "Acme", first.Company)
	assert.Equal(t, "Berkeley, CA", first.Location)
	assert.Equal(t, "$150k - $180k", first.Salary)
	assert.Equal(t, "Posted 2 days ago", first.DatePosted)
	assert.Equal(t, srv.URL+"/viewjob?jk=1", first.URL)
	assert.Equal(t, "Description for job 1.", first.Description)

	second := recs[1]
	assert.Equal(t, "Streaming Intern", second.Title)
	assert.Equal(t, domain.Sentinel, second.Company, "placeholder company falls back to sentinel")
	assert.Equal(t, "Berkeley", second.Location, "missing location falls back to the search location")
}

func TestSearchDescriptionFailureDegrades(t *testing.T) {
	srv := newTestServer(t, map[string]int{"1": http.StatusServiceUnavailable})
	src := New(Config{BaseURL: srv.URL})

	recs, err := src.Search(context.Background(), types.SearchTask{Query: "engineer", Location: "Berkeley"})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, domain.Sentinel, recs[0].Description)
	assert.Equal(t, "Description for job 2.", recs[1].Description)
}

func TestSearchPageFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	src := New(Config{BaseURL: srv.URL})
	_, err := src.Search(context.Background(), types.SearchTask{Query: "engineer", Location: "Berkeley"})
	assert.Error(t, err)
}

func TestSearchStopsBetweenFragments(t *testing.T) {
	srv := newTestServer(t, nil)
	src := New(Config{BaseURL: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// the search page itself never loads on a dead context
	_, err := src.Search(ctx, types.SearchTask{Query: "engineer", Location: "Berkeley"})
	assert.Error(t, err)
}
