// Package app is the composition root of repofolio.
//
// # Overview
//
// Open turns a config.Config into a Runtime: the storage backend, the
// repository cache, the star snapshot store, the GitHub client and the
// loader, plus the saved preferences. The terminal UI and every CLI
// subcommand share that Runtime so they read and write the same data.
//
// # Startup
//
//  1. Open the configured storage backend (file, sqlite or memory)
//  2. Build the anonymous GitHub REST client for cfg.APIBase
//  3. Wrap storage in the repository cache and the snapshot store
//  4. Read saved preferences; unreadable values fall back to defaults
//  5. NewStore seeds a state.Store with those preferences and subscribes a
//     persister that writes back only the keys that change
//  6. Run starts the TUI, which issues the first load itself
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> rt.NewStore()      Preferences in, persister subscribed
//	       ├─────> ui.Run()           Init issues the first Loader.Load
//	       └─────> StartPoller()      Optional, when refresh_interval > 0
//
//	Background Poller Loop:
//	┌─────────────────────────────────────────┐
//	│ StartPoller() goroutine                 │
//	│  ├─> Loader.Load()  (15s timeout)       │
//	│  └─> deliver(ui.LoadedMsg)              │
//	│      └─> Update applies it on the       │
//	│          Bubble Tea goroutine           │
//	└─────────────────────────────────────────┘
//
// # Polling Behavior
//
// The poller is off unless refresh_interval is set. It waits one interval
// before the first load because the UI already loads on start. After a
// failure (an error, or a result served from cache) it retries with
// exponential backoff starting at 2 seconds, capped at 30 seconds and never
// longer than the interval. A rate-limit error that carries a reset time
// waits until that time instead.
//
// # Error Handling
//
// Fatal errors, returned from Open or Run:
//   - Unknown storage backend or an unopenable data directory
//   - An unparseable API base URL
//   - The TUI failing to start
//
// Recoverable errors, logged while the UI keeps running:
//   - Fetch failures, which fall back to the cache when one is valid
//   - Cache, snapshot and preference write failures
//
// Cancelling the context passed to Run is a normal exit.
package app
