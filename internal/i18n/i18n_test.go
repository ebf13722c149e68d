package i18n

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sqmw/repofolio/internal/github"
	"github.com/sqmw/repofolio/internal/state"
)

func TestCatalogsHaveSameKeys(t *testing.T) {
	var ref map[string]string
	for _, msgs := range catalogs {
		if ref == nil {
			ref = msgs
			continue
		}
		require.Len(t, msgs, len(ref))
		for key := range ref {
			require.Contains(t, msgs, key)
		}
	}
}

func TestPrinter_Messages(t *testing.T) {
	zh := For(state.LocaleZH)
	en := For(state.LocaleEN)

	require.Equal(t, "加载中...", zh.T(Loading))
	require.Equal(t, "Loading...", en.T(Loading))
	require.Equal(t, "共 3 个项目", zh.Results(3))
	require.Equal(t, "3 projects", en.Results(3))
	require.Equal(t, "Active", en.T(Active))
	require.Equal(t, "unknown_key", en.T("unknown_key"))
}

func TestPrinter_UnknownLocaleUsesZH(t *testing.T) {
	p := For(state.Locale("fr"))
	require.Equal(t, state.LocaleZH, p.Locale())
	require.Equal(t, "全部", p.T(FilterAll))
}

func TestPrinter_Filters(t *testing.T) {
	en := For(state.LocaleEN)
	require.Empty(t, en.Filters(nil))
	require.Equal(t, `Filters: "cli" / Go`, en.Filters([]string{`"cli"`, "Go"}))
}

func TestPrinter_Labels(t *testing.T) {
	en := For(state.LocaleEN)
	require.Equal(t, "Name", en.Sort(state.SortName))
	require.Equal(t, "Stars", en.Sort(state.SortKey("bogus")))
	require.Equal(t, "List", en.View(state.ViewList))
	require.Equal(t, "网格", For(state.LocaleZH).View(state.ViewGrid))
}

func TestPrinter_Date(t *testing.T) {
	ts := time.Date(2026, 3, 4, 12, 0, 0, 0, time.Local)
	require.Equal(t, "3/4/2026", For(state.LocaleEN).Date(ts))
	require.Equal(t, "2026/3/4", For(state.LocaleZH).Date(ts))
	require.Equal(t, "-", For(state.LocaleEN).Date(time.Time{}))
	require.Equal(t, "Updated 3/4/2026", For(state.LocaleEN).Updated(ts))
}

func TestPrinter_LoadErrorDistinguishesRateLimit(t *testing.T) {
	en := For(state.LocaleEN)

	rateLimited := fmt.Errorf("fetch repos: %w", &github.RateLimitError{})
	require.Equal(t, "GitHub API rate limit exceeded", en.LoadError(rateLimited))

	reset := time.Date(2026, 3, 1, 13, 5, 0, 0, time.Local)
	withReset := &github.RateLimitError{Reset: reset}
	require.Equal(t, "GitHub API rate limit exceeded, resets at 13:05", en.LoadError(withReset))

	generic := &github.APIError{StatusCode: 500, Path: "/users/sqmw/repos"}
	msg := en.LoadError(generic)
	require.Contains(t, msg, "Failed to load projects")
	require.Contains(t, msg, "500")
	require.NotEqual(t, en.LoadError(rateLimited), msg)

	require.Empty(t, en.LoadError(nil))
	require.Contains(t, For(state.LocaleZH).LoadError(errors.New("boom")), "boom")
}
