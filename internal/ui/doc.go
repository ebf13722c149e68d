// Package ui provides the Bubble Tea terminal interface for repofolio.
//
// # Architecture Overview
//
// The UI is the render boundary of the portfolio. It never computes a view
// itself: every list, ranking and count comes from package derive, and every
// change the user makes goes through state.Store.Set.
//
//	key press ──> Update ──> store.Set(patch)
//	                             │ (synchronous listeners)
//	                             ├──> session.refresh ──> derive.Describe, RankLanguages, TopStars
//	                             └──> prefs.Persister.Listen
//	View ──> session.current() ──> lipgloss
//
// # Package Structure
//
//   - app.go: Model, Update loop, key handling, load commands and Run
//   - session.go: derived views shared across Model copies
//   - render.go: header, chips, grid and list layouts, sidebar, status line
//   - keys.go: key bindings (bubbles/key) and help groupings
//   - help.go: help overlay
//   - theme.go: light and dark palettes plus language colors
//   - layout.go: width thresholds and component sizes
//
// # Loading
//
// Init and the reload key run loader.Load in a command goroutine and deliver
// a LoadedMsg. The refresh poller delivers the same message through the Send
// function handed to Options.OnStart. A LoadedMsg that carries an error
// leaves the current list on screen and shows a localized message that
// distinguishes rate limiting from other failures. A successful load replaces
// the project list and recomputes the trending sidebar once.
//
// # Search
//
// The search input owns a debounce.Debouncer. Each edit restarts the window;
// when it elapses the timer goroutine posts the query through Program.Send.
// Enter and esc commit at once and cancel the pending call, since Send cannot
// be used from inside Update.
package ui
