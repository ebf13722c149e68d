// Package i18n holds the zh and en string catalogs for the portfolio views.
//
// Messages are registered in a golang.org/x/text catalog and formatted with a
// message.Printer, so numbers follow the locale's conventions.
package i18n

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/sqmw/repofolio/internal/github"
	"github.com/sqmw/repofolio/internal/state"
)

// Message keys.
const (
	Loading           = "loading"
	NoProjects        = "no_projects"
	ErrorTip          = "error_tip"
	ErrorRateLimit    = "error_rate_limit"
	ErrorRateLimitAt  = "error_rate_limit_at"
	ErrorGeneric      = "error_generic"
	RepoDesc          = "repo_desc"
	UpdatedAt         = "updated_at"
	Active            = "active"
	FilterAll         = "filter_all"
	ResultsCount      = "results_count"
	FiltersActive     = "filters_active"
	SearchPlaceholder = "search_placeholder"
	OfflineCache      = "offline_cache"
	Trending          = "trending"
	TopStars          = "top_stars"
	Languages         = "languages"
	StarHistory       = "star_history"
	SortLabel         = "sort_label"
	SortStars         = "sort_stars"
	SortUpdated       = "sort_updated"
	SortCreated       = "sort_created"
	SortName          = "sort_name"
	ViewGrid          = "view_grid"
	ViewList          = "view_list"
	HelpHint          = "help_hint"
	ClearFiltersHint  = "clear_filters_hint"
)

var catalogs = map[language.Tag]map[string]string{
	language.SimplifiedChinese: {
		Loading:           "加载中...",
		NoProjects:        "没有找到匹配的项目",
		ErrorTip:          "请稍后重试，或按 r 重新加载",
		ErrorRateLimit:    "GitHub API 调用次数已达上限",
		ErrorRateLimitAt:  "GitHub API 调用次数已达上限，将于 %s 重置",
		ErrorGeneric:      "加载项目失败：%s",
		RepoDesc:          "暂无描述",
		UpdatedAt:         "更新于 %s",
		Active:            "活跃",
		FilterAll:         "全部",
		ResultsCount:      "共 %d 个项目",
		FiltersActive:     "筛选：%s",
		SearchPlaceholder: "搜索项目、描述或语言",
		OfflineCache:      "离线模式：显示 %s 的缓存数据",
		Trending:          "趋势",
		TopStars:          "最多星标",
		Languages:         "语言",
		StarHistory:       "Star 历史",
		SortLabel:         "排序",
		SortStars:         "星标",
		SortUpdated:       "最近更新",
		SortCreated:       "最新创建",
		SortName:          "名称",
		ViewGrid:          "网格",
		ViewList:          "列表",
		HelpHint:          "按 ? 查看快捷键",
		ClearFiltersHint:  "按 x 清除筛选",
	},
	language.AmericanEnglish: {
		Loading:           "Loading...",
		NoProjects:        "No matching projects",
		ErrorTip:          "Try again later, or press r to reload",
		ErrorRateLimit:    "GitHub API rate limit exceeded",
		ErrorRateLimitAt:  "GitHub API rate limit exceeded, resets at %s",
		ErrorGeneric:      "Failed to load projects: %s",
		RepoDesc:          "No description",
		UpdatedAt:         "Updated %s",
		Active:            "Active",
		FilterAll:         "All",
		ResultsCount:      "%d projects",
		FiltersActive:     "Filters: %s",
		SearchPlaceholder: "Search projects, descriptions or languages",
		OfflineCache:      "Offline: showing data cached at %s",
		Trending:          "Trending",
		TopStars:          "Top Stars",
		Languages:         "Languages",
		StarHistory:       "Star history",
		SortLabel:         "Sort",
		SortStars:         "Stars",
		SortUpdated:       "Recently updated",
		SortCreated:       "Newest",
		SortName:          "Name",
		ViewGrid:          "Grid",
		ViewList:          "List",
		HelpHint:          "Press ? for shortcuts",
		ClearFiltersHint:  "x clears filters",
	},
}

var builder = newBuilder()

func newBuilder() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.AmericanEnglish))
	for tag, msgs := range catalogs {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic("i18n: " + key + ": " + err.Error())
			}
		}
	}
	return b
}

// Tag maps a UI locale onto its catalog language.
func Tag(l state.Locale) language.Tag {
	if l == state.LocaleEN {
		return language.AmericanEnglish
	}
	return language.SimplifiedChinese
}

// Printer formats messages for one locale.
type Printer struct {
	locale state.Locale
	p      *message.Printer
}

// For returns the Printer for l. Unknown locales use zh.
func For(l state.Locale) Printer {
	if !l.Valid() {
		l = state.LocaleZH
	}
	return Printer{locale: l, p: message.NewPrinter(Tag(l), message.Catalog(builder))}
}

// Locale returns the printer's locale.
func (p Printer) Locale() state.Locale {
	return p.locale
}

// T returns the message for key formatted with args. Unknown keys are
// returned as-is.
func (p Printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

// Results returns the result-count line.
func (p Printer) Results(n int) string {
	return p.T(ResultsCount, n)
}

// Filters describes active filters joined by " / ", or "" when none.
func (p Printer) Filters(filters []string) string {
	if len(filters) == 0 {
		return ""
	}
	return p.T(FiltersActive, strings.Join(filters, " / "))
}

// Date formats t the way the locale writes short dates.
func (p Printer) Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	if p.locale == state.LocaleEN {
		return t.Local().Format("1/2/2006")
	}
	return t.Local().Format("2006/1/2")
}

// Updated returns the "updated at" caption for t.
func (p Printer) Updated(t time.Time) string {
	return p.T(UpdatedAt, p.Date(t))
}

// Sort returns the label for a sort key.
func (p Printer) Sort(k state.SortKey) string {
	switch k {
	case state.SortUpdated:
		return p.T(SortUpdated)
	case state.SortCreated:
		return p.T(SortCreated)
	case state.SortName:
		return p.T(SortName)
	default:
		return p.T(SortStars)
	}
}

// View returns the label for a layout.
func (p Printer) View(v state.View) string {
	if v == state.ViewList {
		return p.T(ViewList)
	}
	return p.T(ViewGrid)
}

// LoadError returns the user-facing message for a failed load. Rate limiting
// gets its own wording, with the reset time when GitHub supplied one.
func (p Printer) LoadError(err error) string {
	if err == nil {
		return ""
	}
	var rl *github.RateLimitError
	if errors.As(err, &rl) && !rl.Reset.IsZero() {
		return p.T(ErrorRateLimitAt, rl.Reset.Local().Format("15:04"))
	}
	if errors.Is(err, github.ErrRateLimit) {
		return p.T(ErrorRateLimit)
	}
	return p.T(ErrorGeneric, err.Error())
}
