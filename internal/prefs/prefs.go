// Package prefs persists the user's display preferences (theme, locale, sort
// key and layout) as bare strings under their own storage keys.
package prefs

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/sqmw/repofolio/internal/state"
	"github.com/sqmw/repofolio/internal/storage"
)

// Storage keys.
const (
	KeyTheme  = "theme"
	KeyLocale = "lang"
	KeySort   = "sort"
	KeyView   = "view"
)

// Prefs holds user preferences for repofolio.
type Prefs struct {
	Theme  state.Theme
	Locale state.Locale
	Sort   state.SortKey
	View   state.View
}

// Defaults returns the preferences used for missing or invalid values.
func Defaults() Prefs {
	d := state.Default()
	return Prefs{Theme: d.Theme, Locale: d.Locale, Sort: d.Sort, View: d.View}
}

// FromState extracts the preference fields of s.
func FromState(s state.State) Prefs {
	return Prefs{Theme: s.Theme, Locale: s.Locale, Sort: s.Sort, View: s.View}
}

// Patches returns the state patches that apply p.
func (p Prefs) Patches() []state.Patch {
	return []state.Patch{
		state.WithTheme(p.Theme),
		state.WithLocale(p.Locale),
		state.WithSort(p.Sort),
		state.WithView(p.View),
	}
}

// Load reads every preference, falling back to the default for each key that
// is missing, unreadable or not a recognised value. The returned Prefs is
// always usable; the error only reports read failures.
func Load(store storage.Store) (Prefs, error) {
	p := Defaults()
	var errs []error

	read := func(key string) string {
		v, ok, err := store.Get(key)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", key, err))
			return ""
		}
		if !ok {
			return ""
		}
		return strings.TrimSpace(v)
	}

	if t := state.Theme(read(KeyTheme)); t.Valid() {
		p.Theme = t
	}
	if l := state.Locale(read(KeyLocale)); l.Valid() {
		p.Locale = l
	}
	if k := state.SortKey(read(KeySort)); k.Valid() {
		p.Sort = k
	}
	if v := state.View(read(KeyView)); v.Valid() {
		p.View = v
	}
	return p, errors.Join(errs...)
}

// Save writes every preference.
func Save(store storage.Store, p Prefs) error {
	return write(store, p, Prefs{})
}

// write stores the fields of next that differ from prev.
func write(store storage.Store, next, prev Prefs) error {
	var errs []error
	set := func(key, value, old string) {
		if value == old {
			return
		}
		if err := store.Set(key, value); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", key, err))
		}
	}
	set(KeyTheme, string(next.Theme), string(prev.Theme))
	set(KeyLocale, string(next.Locale), string(prev.Locale))
	set(KeySort, string(next.Sort), string(prev.Sort))
	set(KeyView, string(next.View), string(prev.View))
	return errors.Join(errs...)
}

// Persister is a state listener that writes preference changes back to
// storage. Only keys whose value changed since the last notification are
// written.
type Persister struct {
	store  storage.Store
	logger *zap.Logger

	mu   sync.Mutex
	last Prefs
}

// NewPersister returns a Persister that treats current as already stored.
func NewPersister(store storage.Store, current Prefs, logger *zap.Logger) *Persister {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Persister{store: store, logger: logger, last: current}
}

// Listen is a state.Listener. Write failures are logged, not propagated.
func (p *Persister) Listen(s state.State) {
	next := FromState(s)

	p.mu.Lock()
	defer p.mu.Unlock()
	if next == p.last {
		return
	}
	if err := write(p.store, next, p.last); err != nil {
		p.logger.Warn("persist preferences", zap.Error(err))
	}
	p.last = next
}
