package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sqmw/repofolio/internal/version"
)

// RepoFetcher lists a user's repositories. *Client implements it; tests
// substitute fakes.
type RepoFetcher interface {
	FetchRepos(ctx context.Context, user string, perPage int) ([]Repo, error)
}

// Ensure Client implements RepoFetcher at compile time.
var _ RepoFetcher = (*Client)(nil)

// Client talks to the GitHub REST API anonymously.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	DefaultBaseURL = "https://api.github.com"
	DefaultPerPage = 100
	maxPerPage     = 100
	requestTimeout = 10 * time.Second
)

// NewClient builds a Client for baseURL; empty uses DefaultBaseURL.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: version.UserAgent(),
	}, nil
}

// FetchRepos retrieves one page of the user's repositories, most recently
// updated first.
func (c *Client) FetchRepos(ctx context.Context, user string, perPage int) ([]Repo, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, fmt.Errorf("github user required")
	}
	if perPage <= 0 || perPage > maxPerPage {
		perPage = DefaultPerPage
	}
	values := url.Values{}
	values.Set("sort", "updated")
	values.Set("per_page", strconv.Itoa(perPage))
	rel := &url.URL{Path: "/users/" + url.PathEscape(user) + "/repos", RawQuery: values.Encode()}

	var repos []Repo
	if err := c.doURL(ctx, http.MethodGet, rel, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w: %w", ErrNetworkFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyStatus(resp, rel.Path)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
