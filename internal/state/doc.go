// Package state holds the UI state of the portfolio and notifies subscribers
// whenever it changes.
//
// # Overview
//
// Store is the single source of truth for everything the views are derived
// from: the search query, the language filter, the sort key, the layout, the
// theme, the locale and the full unfiltered project list. No other component
// mutates State; they call Store.Set with one or more Patch values.
//
// # Notification Semantics
//
//	store.Set(state.WithQuery("cli"))
//	→ patches applied in argument order (shallow merge)
//	→ every listener called synchronously, in subscription order
//	→ each listener receives its own copy of the full new state
//
// There is no batching and no change detection: two rapid Set calls produce
// two full notification cycles, and a Set that changes nothing still notifies.
// Listeners run after the internal lock is released, so they may call Get or
// even Set (a nested Set starts its own cycle before the outer one finishes).
//
// A listener that panics is not isolated. The panic unwinds through Set to
// its caller and the listeners after it do not run for that cycle.
//
// # Defensive Copying
//
// Get, Set and listener arguments all hand out copies. Project slices and
// each project's tag slice are cloned, so a consumer that sorts or edits its
// copy cannot disturb the store or other subscribers.
//
// # Usage Example
//
//	store := state.New(state.Default())
//	unsubscribe := store.Subscribe(func(s state.State) {
//		listing := derive.Describe(s)
//		render(listing)
//	})
//	defer unsubscribe()
//
//	store.Set(state.WithProjects(result.Projects))
//	store.Set(state.WithLanguage("Go"), state.WithSort(state.SortName))
//
// # Concurrency
//
// The portfolio writes from one goroutine (the Bubble Tea update loop), but
// the store still guards its fields with a sync.RWMutex so background
// readers such as the CLI printers or the refresh poller never observe a torn
// state.
package state
