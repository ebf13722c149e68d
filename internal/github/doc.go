// Package github provides a minimal anonymous client for the GitHub REST API.
//
// # Overview
//
// Only one endpoint is used:
//
//	GET /users/{user}/repos?sort=updated&per_page=100
//
// The client returns the raw repository records; normalization into
// project.Project happens in the loader.
//
// # Error Kinds
//
// Every failure maps onto one of three kinds so callers can pick a message
// without string matching:
//
//   - *RateLimitError (errors.Is(err, ErrRateLimit)): HTTP 403. Anonymous
//     requests share a small hourly quota, so this is the common failure.
//     Reset carries X-RateLimit-Reset when the header is present.
//   - *APIError: any other non-2xx status; StatusCode holds the code.
//   - ErrNetworkFailure: the request never produced a response (DNS,
//     refused connection, timeout, cancelled context).
//
// Decode failures are returned as plain wrapped errors.
//
// # Star History
//
// StarHistoryURL and StarHistoryChartURL build star-history.com links for a
// repository. They perform no I/O.
package github
