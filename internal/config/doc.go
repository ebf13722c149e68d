// Package config loads repofolio's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/repofolio/config.toml
//  3. If the file doesn't exist, use Default()
//  4. Fields that are missing or blank keep their default
//
// # TOML Format
//
//	user = "sqmw"
//	api_base = "https://api.github.com"
//	exclude = ["sqmw"]
//	per_page = 100
//	cache_ttl = "1h"
//	top_limit = 5
//	language_limit = 8
//	search_debounce = "120ms"
//	storage = "file"          # file, sqlite or memory
//	data_dir = "~/.local/share/repofolio"
//	log_file = "~/.local/state/repofolio/repofolio.log"
//	log_level = "info"
//	refresh_interval = "0s"   # 0 disables periodic refresh
//
// Durations use time.ParseDuration syntax. Tilde expansion applies to the
// config path, data_dir and log_file.
//
// # Error Handling
//
// Load returns errors for unreadable files, TOML syntax errors, unparsable
// durations and values that fail Validate. A missing file is not an error.
//
// # Usage Example
//
//	cfg, err := config.Load(flagPath)
//	if err != nil {
//		return err
//	}
//	client, err := github.NewClient(cfg.APIBase)
package config
