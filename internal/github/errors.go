package github

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrRateLimit indicates the anonymous API quota is exhausted.
	ErrRateLimit = errors.New("github api rate limit exceeded")

	// ErrNetworkFailure indicates the request never produced a response.
	ErrNetworkFailure = errors.New("network connection failed")
)

// RateLimitError is returned for HTTP 403. Reset is zero when the response
// carried no X-RateLimit-Reset header.
type RateLimitError struct {
	Reset time.Time
}

func (e *RateLimitError) Error() string {
	if e.Reset.IsZero() {
		return ErrRateLimit.Error()
	}
	return fmt.Sprintf("%s, resets at %s", ErrRateLimit, e.Reset.Local().Format("15:04"))
}

// Is lets errors.Is(err, ErrRateLimit) match.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimit
}

// APIError is any other non-success status.
type APIError struct {
	StatusCode int
	Path       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api %s returned status %d", e.Path, e.StatusCode)
}

// StatusCode extracts the HTTP status from an *APIError chain, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// classifyStatus maps a non-2xx response onto the package error kinds.
func classifyStatus(resp *http.Response, path string) error {
	if resp.StatusCode == http.StatusForbidden {
		return &RateLimitError{Reset: parseReset(resp.Header.Get("X-RateLimit-Reset"))}
	}
	return &APIError{StatusCode: resp.StatusCode, Path: path}
}

func parseReset(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	secs, err := strconv.ParseInt(value, 10, 64)
	if err != nil || secs <= 0 {
		return time.Time{}
	}
	return time.Unix(secs, 0)
}
