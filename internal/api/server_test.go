package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_vetjobs/internal/engine"
	"github.com/anatolykoptev/go_vetjobs/internal/engine/jobs"
	"github.com/anatolykoptev/go_vetjobs/internal/toolutil"
)

func TestMain(m *testing.M) {
	engine.InitCache("", time.Minute, 1000, time.Minute)
	os.Exit(m.Run())
}

type downSource struct{ name string }

func (d downSource) Name() string { return d.name }

func (d downSource) Search(context.Context, jobs.SearchParams) ([]jobs.Job, error) {
	return nil, errors.New("connection refused")
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	local := jobs.NewLocalFilter(jobs.NewStaticDataset(jobs.BuiltinListings()))
	coord := jobs.NewCoordinator(local, downSource{"jobbank"}, downSource{"adzuna"}, downSource{"remoteok"})
	srv := httptest.NewServer(NewServer(jobs.NewService(coord, jobs.DefaultScoring())).Router())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeBody[map[string]string](t, resp)["status"])
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "search_requests")
}

func TestSearch(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/api/jobs/search", `{"military_skills":["logistics"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeBody[toolutil.SearchOutput](t, resp)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "Logistics Coordinator", out.Jobs[0].Title)

	resp = post(t, srv, "/api/jobs/search", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, len(jobs.BuiltinListings()), decodeBody[toolutil.SearchOutput](t, resp).Count)
}

func TestSearch_BadRequest(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/api/jobs/search", `{"keywords":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeBody[map[string]string](t, resp)["error"], "invalid JSON")

	resp = post(t, srv, "/api/jobs/search", `{"company_rating":12}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeBody[map[string]string](t, resp)["error"], "CompanyRating")
}

func TestSearch_SourcesExhausted(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/api/jobs/search", `{"use_external_sources":true,"keywords":["api-exhausted"]}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, decodeBody[map[string]string](t, resp)["error"], "all sources exhausted")
}

func TestMatch(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/api/jobs/match", `{"skills":["network security","python"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeBody[toolutil.MatchOutput](t, resp)
	require.NotZero(t, out.Count)
	assert.Equal(t, "Cybersecurity Analyst", out.Matches[0].Job.Title)

	resp = post(t, srv, "/api/jobs/match", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecommend(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/api/jobs/recommend",
		`{"filters":{"region":"canada"},"profile":{"skills":["paramedic","emergency medical care"],"years_experience":4,"preferred_locations":["Regina"]},"limit":3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeBody[toolutil.RecommendOutput](t, resp)
	require.Len(t, out.Recommendations, 3)
	assert.Equal(t, "Paramedic", out.Recommendations[0].Job.Title)
	assert.GreaterOrEqual(t, out.Recommendations[0].Relevance, out.Recommendations[1].Relevance)
}
