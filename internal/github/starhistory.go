package github

import (
	"net/url"
	"strings"
)

const (
	starHistoryAPI  = "https://api.star-history.com/svg"
	starHistoryPage = "https://star-history.com/"
)

// StarHistoryChartURL returns the star-history.com SVG chart for owner/repo.
func StarHistoryChartURL(owner, repo string) string {
	values := url.Values{}
	values.Set("repos", fullName(owner, repo))
	values.Set("type", "Date")
	return starHistoryAPI + "?" + values.Encode()
}

// StarHistoryURL returns the star-history.com page for owner/repo.
func StarHistoryURL(owner, repo string) string {
	return starHistoryPage + "#" + fullName(owner, repo) + "&Date"
}

func fullName(owner, repo string) string {
	return strings.TrimSpace(owner) + "/" + strings.TrimSpace(repo)
}
