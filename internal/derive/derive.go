// Package derive computes every view of the portfolio from the state store's
// contents: filtered and sorted lists, the language ranking, the trending and
// top-stars sidebars, and the status-line description.
//
// All functions are pure except Trending, which reads and then overwrites the
// star snapshot through the SnapshotStore it is given. Inputs are never
// mutated; every function returns a fresh slice.
package derive

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sqmw/repofolio/internal/project"
	"github.com/sqmw/repofolio/internal/state"
)

// Criteria narrows a project list.
type Criteria struct {
	Query    string
	Language string
}

// Filter keeps projects whose name, description or language contains the
// query case-insensitively and whose language equals the language filter.
// An empty query and the "all" language match everything. Order is kept.
func Filter(projects []project.Project, c Criteria) []project.Project {
	keyword := strings.ToLower(strings.TrimSpace(c.Query))
	lang := c.Language
	if lang == "" {
		lang = state.AllLanguages
	}

	out := make([]project.Project, 0, len(projects))
	for _, p := range projects {
		if lang != state.AllLanguages && p.Language != lang {
			continue
		}
		if keyword != "" && !matches(p, keyword) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(p project.Project, keyword string) bool {
	return strings.Contains(strings.ToLower(p.Name), keyword) ||
		strings.Contains(strings.ToLower(p.Description), keyword) ||
		strings.Contains(strings.ToLower(p.Language), keyword)
}

// Sort orders projects by key using an undetermined-locale collator for
// names. Unknown keys fall back to stars.
func Sort(projects []project.Project, key state.SortKey) []project.Project {
	return SortLocale(projects, key, language.Und)
}

// SortLocale is Sort with name comparison collated for tag.
func SortLocale(projects []project.Project, key state.SortKey, tag language.Tag) []project.Project {
	sorted := slices.Clone(projects)
	if sorted == nil {
		sorted = []project.Project{}
	}
	switch key {
	case state.SortUpdated:
		slices.SortStableFunc(sorted, func(a, b project.Project) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})
	case state.SortCreated:
		slices.SortStableFunc(sorted, func(a, b project.Project) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case state.SortName:
		col := collate.New(tag)
		slices.SortStableFunc(sorted, func(a, b project.Project) int {
			if c := col.CompareString(a.Name, b.Name); c != 0 {
				return c
			}
			return strings.Compare(a.Name, b.Name)
		})
	default:
		slices.SortStableFunc(sorted, func(a, b project.Project) int {
			return cmp.Compare(b.Stars, a.Stars)
		})
	}
	return sorted
}

// LanguageStat is one entry of the language ranking.
type LanguageStat struct {
	Name  string
	Count int
}

// RankLanguages counts projects per language over the full list and returns
// the top limit entries by count, ties broken alphabetically. A non-positive
// limit returns every language.
func RankLanguages(projects []project.Project, limit int) []LanguageStat {
	counts := make(map[string]int)
	for _, p := range projects {
		counts[p.Language]++
	}
	stats := make([]LanguageStat, 0, len(counts))
	for name, n := range counts {
		stats = append(stats, LanguageStat{Name: name, Count: n})
	}
	slices.SortFunc(stats, func(a, b LanguageStat) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

// Languages is RankLanguages reduced to names.
func Languages(projects []project.Project, limit int) []string {
	stats := RankLanguages(projects, limit)
	names := make([]string, len(stats))
	for i, s := range stats {
		names[i] = s.Name
	}
	return names
}

// TopStars returns the limit most-starred projects.
func TopStars(projects []project.Project, limit int) []project.Project {
	top := SortLocale(projects, state.SortStars, language.Und)
	if limit > 0 && len(top) > limit {
		top = top[:limit]
	}
	return top
}

// LocaleTag maps a UI locale onto a collation tag.
func LocaleTag(l state.Locale) language.Tag {
	switch l {
	case state.LocaleZH:
		return language.SimplifiedChinese
	case state.LocaleEN:
		return language.AmericanEnglish
	default:
		return language.Und
	}
}

// Listing is the main project list as handed to the renderer.
type Listing struct {
	Projects []project.Project
	Count    int
	// ActiveFilters describes the narrowing in effect, e.g. `"cli"` and `Go`.
	ActiveFilters []string
}

// Describe filters and sorts the state's projects and describes the filters.
func Describe(s state.State) Listing {
	filtered := Filter(s.Projects, Criteria{Query: s.Query, Language: s.Language})
	sorted := SortLocale(filtered, s.Sort, LocaleTag(s.Locale))
	return Listing{
		Projects:      sorted,
		Count:         len(sorted),
		ActiveFilters: ActiveFilters(s),
	}
}

// ActiveFilters returns the quoted query and the selected language, in that
// order, omitting whichever is not set.
func ActiveFilters(s state.State) []string {
	var filters []string
	if q := strings.TrimSpace(s.Query); q != "" {
		filters = append(filters, `"`+q+`"`)
	}
	if s.Language != "" && s.Language != state.AllLanguages {
		filters = append(filters, s.Language)
	}
	return filters
}
