package state

import (
	"strings"

	"github.com/sqmw/repofolio/internal/project"
)

// SortKey selects a list ordering.
type SortKey string

const (
	SortStars   SortKey = "stars"
	SortUpdated SortKey = "updated"
	SortCreated SortKey = "created"
	SortName    SortKey = "name"
)

// SortKeys lists the recognised sort keys in menu order.
func SortKeys() []SortKey {
	return []SortKey{SortStars, SortUpdated, SortCreated, SortName}
}

// Valid reports whether k is one of SortKeys.
func (k SortKey) Valid() bool {
	switch k {
	case SortStars, SortUpdated, SortCreated, SortName:
		return true
	}
	return false
}

// Next returns the following sort key, wrapping around.
func (k SortKey) Next() SortKey {
	keys := SortKeys()
	for i, key := range keys {
		if key == k {
			return keys[(i+1)%len(keys)]
		}
	}
	return keys[0]
}

// View is the project list layout.
type View string

const (
	ViewGrid View = "grid"
	ViewList View = "list"
)

// Valid reports whether v is grid or list.
func (v View) Valid() bool {
	return v == ViewGrid || v == ViewList
}

// Theme is the colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is light or dark.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle flips between light and dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Locale selects the UI string catalog.
type Locale string

const (
	LocaleZH Locale = "zh"
	LocaleEN Locale = "en"
)

// Valid reports whether l has a catalog.
func (l Locale) Valid() bool {
	return l == LocaleZH || l == LocaleEN
}

// Toggle flips between zh and en.
func (l Locale) Toggle() Locale {
	if l == LocaleZH {
		return LocaleEN
	}
	return LocaleZH
}

// AllLanguages is the language filter value that matches every project.
const AllLanguages = "all"

// State is everything the views are derived from.
type State struct {
	Query    string
	Language string
	Sort     SortKey
	View     View
	Theme    Theme
	Locale   Locale
	Projects []project.Project
}

// Default returns the state used before preferences are applied.
func Default() State {
	return State{
		Language: AllLanguages,
		Sort:     SortStars,
		View:     ViewGrid,
		Theme:    ThemeLight,
		Locale:   LocaleZH,
	}
}

// HasActiveFilters reports whether a query or language filter narrows the list.
func (s State) HasActiveFilters() bool {
	return strings.TrimSpace(s.Query) != "" || (s.Language != "" && s.Language != AllLanguages)
}

func (s State) clone() State {
	dup := s
	dup.Projects = project.Clone(s.Projects)
	return dup
}

// Patch mutates a state being merged by Store.Set.
type Patch func(*State)

// WithQuery sets the free-text filter.
func WithQuery(q string) Patch { return func(s *State) { s.Query = q } }

// WithLanguage sets the language filter; empty means AllLanguages.
func WithLanguage(lang string) Patch {
	return func(s *State) {
		if lang == "" {
			lang = AllLanguages
		}
		s.Language = lang
	}
}

// WithSort sets the sort key.
func WithSort(k SortKey) Patch { return func(s *State) { s.Sort = k } }

// WithView sets the layout.
func WithView(v View) Patch { return func(s *State) { s.View = v } }

// WithTheme sets the colour scheme.
func WithTheme(t Theme) Patch { return func(s *State) { s.Theme = t } }

// WithLocale sets the UI locale.
func WithLocale(l Locale) Patch { return func(s *State) { s.Locale = l } }

// WithProjects replaces the project list wholesale.
func WithProjects(projects []project.Project) Patch {
	dup := project.Clone(projects)
	return func(s *State) { s.Projects = dup }
}
