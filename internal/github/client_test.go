package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	require.NoError(t, err)
	require.Equal(t, "https", u.Scheme)
	require.Equal(t, "api.github.com", u.Host)

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	require.NoError(t, err)
	require.Equal(t, "http://example.com:1234", u.String())

	_, err = parseBaseURL("http://")
	require.Error(t, err)
}

func TestClient_FetchReposEncodesQuery(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery url.Values
	var gotUserAgent, gotAccept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name":"folio","description":null,"html_url":"https://github.com/sqmw/folio","language":"Go",
			 "fork":false,"archived":true,"stargazers_count":7,
			 "updated_at":"2026-02-01T10:00:00Z","created_at":"2025-01-01T00:00:00Z"}
		]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	repos, err := c.FetchRepos(ctx, "sqmw", 0)
	require.NoError(t, err)
	require.Len(t, repos, 1)

	require.Equal(t, "/users/sqmw/repos", gotPath)
	require.Equal(t, "updated", gotQuery.Get("sort"))
	require.Equal(t, "100", gotQuery.Get("per_page"))
	require.True(t, strings.HasPrefix(gotUserAgent, "repofolio/"), "User-Agent = %q", gotUserAgent)
	require.Equal(t, "application/vnd.github+json", gotAccept)

	r := repos[0]
	require.Equal(t, "", r.DescriptionText())
	require.Equal(t, "Go", r.LanguageText())
	require.True(t, r.Archived)
	require.Equal(t, 7, r.StargazersCount)
	require.Equal(t, time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), r.ParsedUpdatedAt())
}

func TestClient_StatusClassification(t *testing.T) {
	t.Parallel()

	reset := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/users/limited/"):
			w.Header().Set("X-RateLimit-Reset", "1772370000")
			http.Error(w, `{"message":"API rate limit exceeded"}`, http.StatusForbidden)
		case strings.HasPrefix(r.URL.Path, "/users/broken/"):
			http.Error(w, "nope", http.StatusInternalServerError)
		case strings.HasPrefix(r.URL.Path, "/users/garbled/"):
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.FetchRepos(ctx, "limited", 100)
	require.ErrorIs(t, err, ErrRateLimit)
	var rl *RateLimitError
	require.True(t, errors.As(err, &rl))
	require.True(t, rl.Reset.Equal(reset), "Reset = %v, want %v", rl.Reset, reset)
	require.Zero(t, StatusCode(err))

	_, err = c.FetchRepos(ctx, "broken", 100)
	require.NotErrorIs(t, err, ErrRateLimit)
	require.Equal(t, 500, StatusCode(err))
	require.Contains(t, err.Error(), "returned status 500")

	_, err = c.FetchRepos(ctx, "missing", 100)
	require.Equal(t, 404, StatusCode(err))

	_, err = c.FetchRepos(ctx, "garbled", 100)
	require.ErrorContains(t, err, "decode response")
	require.Zero(t, StatusCode(err))
}

func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	c, err := NewClient(base)
	require.NoError(t, err)

	_, err = c.FetchRepos(context.Background(), "sqmw", 100)
	require.ErrorIs(t, err, ErrNetworkFailure)
	require.NotErrorIs(t, err, ErrRateLimit)
}

func TestClient_RequiresUser(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	require.NoError(t, err)
	_, err = c.FetchRepos(context.Background(), "  ", 100)
	require.Error(t, err)
}

func TestRateLimitError_Message(t *testing.T) {
	require.Equal(t, ErrRateLimit.Error(), (&RateLimitError{}).Error())
	require.Contains(t, (&RateLimitError{Reset: time.Now()}).Error(), "resets at")
}

func TestRepo_DecodesNullableFields(t *testing.T) {
	var r Repo
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","language":null,"description":"d"}`), &r))
	require.Equal(t, "", r.LanguageText())
	require.Equal(t, "d", r.DescriptionText())
	require.True(t, r.ParsedCreatedAt().IsZero())
}

func TestStarHistoryURLs(t *testing.T) {
	require.Equal(t, "https://star-history.com/#sqmw/folio&Date", StarHistoryURL("sqmw", "folio"))
	require.Equal(t, "https://api.star-history.com/svg?repos=sqmw%2Ffolio&type=Date", StarHistoryChartURL("sqmw", "folio"))
}
