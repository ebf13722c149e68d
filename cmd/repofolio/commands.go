package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sqmw/repofolio/internal/app"
	"github.com/sqmw/repofolio/internal/derive"
	"github.com/sqmw/repofolio/internal/github"
	"github.com/sqmw/repofolio/internal/logging"
	"github.com/sqmw/repofolio/internal/project"
	"github.com/sqmw/repofolio/internal/state"
	"github.com/sqmw/repofolio/internal/version"
)

var errNoCache = errors.New("no valid cached repositories")

type listOptions struct {
	query    string
	language string
	sort     string
	limit    int
	offline  bool

	hideForks    bool
	hideArchived bool
}

func newListCommand(flags *globalFlags) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List repositories with the same filtering and sorting as the UI",
		Example: `  repofolio list --language Go --sort name
  repofolio list -q cli --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := state.Default()
			if opts.sort != "" && !state.SortKey(opts.sort).Valid() {
				return fmt.Errorf("invalid --sort %q: want stars, updated, created or name", opts.sort)
			}

			rt, err := flags.openCLI()
			if err != nil {
				return err
			}
			defer closeRuntime(rt)

			projects, err := loadProjects(cmd, rt, opts.offline)
			if err != nil {
				return err
			}

			for _, patch := range rt.Prefs.Patches() {
				patch(&st)
			}
			st.Projects = withoutTags(projects, opts.hiddenTags()...)
			st.Query = opts.query
			if opts.language != "" {
				st.Language = opts.language
			}
			if opts.sort != "" {
				st.Sort = state.SortKey(opts.sort)
			}

			listing := derive.Describe(st)
			shown := listing.Projects
			if opts.limit > 0 && len(shown) > opts.limit {
				shown = shown[:opts.limit]
			}

			out := cmd.OutOrStdout()
			if flags.jsonOutput {
				items := make([]projectJSON, len(shown))
				for i, p := range shown {
					items[i] = newProjectJSON(rt.Config.User, p)
				}
				return writeJSON(out, listJSON{
					User:     rt.Config.User,
					Count:    listing.Count,
					Filters:  listing.ActiveFilters,
					Sort:     string(st.Sort),
					Projects: items,
				})
			}

			rows := make([][]string, len(shown))
			for i, p := range shown {
				rows[i] = []string{p.Name, p.Language, strconv.Itoa(p.Stars), formatDate(p.UpdatedAt), p.URL}
			}
			fmt.Fprintln(out, renderTable([]string{"NAME", "LANGUAGE", "STARS", "UPDATED", "URL"}, rows))
			fmt.Fprintf(out, "%d of %d projects", len(shown), listing.Count)
			if len(listing.ActiveFilters) > 0 {
				fmt.Fprintf(out, " matching %v", listing.ActiveFilters)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "keyword matched against name, description and language")
	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "only show this language (exact match)")
	cmd.Flags().StringVarP(&opts.sort, "sort", "s", "", "sort key: stars, updated, created or name (default: saved preference)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "maximum rows to print (0 prints all)")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "read from the local cache without contacting GitHub")
	cmd.Flags().BoolVar(&opts.hideForks, "hide-forks", false, "leave out forked repositories")
	cmd.Flags().BoolVar(&opts.hideArchived, "hide-archived", false, "leave out archived repositories")
	return cmd
}

func (o *listOptions) hiddenTags() []string {
	var tags []string
	if o.hideForks {
		tags = append(tags, project.TagFork)
	}
	if o.hideArchived {
		tags = append(tags, project.TagArchived)
	}
	return tags
}

// withoutTags drops projects carrying any of tags.
func withoutTags(projects []project.Project, tags ...string) []project.Project {
	if len(tags) == 0 {
		return projects
	}
	kept := make([]project.Project, 0, len(projects))
outer:
	for _, p := range projects {
		for _, tag := range tags {
			if p.HasTag(tag) {
				continue outer
			}
		}
		kept = append(kept, p)
	}
	return kept
}

func newTrendingCommand(flags *globalFlags) *cobra.Command {
	var limit int
	var offline bool
	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Show star changes since the previous run",
		Long: `trending compares current star counts with the snapshot saved by the previous
run of the UI or this command, prints the change, and then saves the current
counts as the new snapshot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := flags.openCLI()
			if err != nil {
				return err
			}
			defer closeRuntime(rt)

			projects, err := loadProjects(cmd, rt, offline)
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = rt.Config.TopLimit
			}
			trends, err := derive.Trending(projects, rt.Snapshots, limit)
			if err != nil {
				rt.Logger.Warn("star snapshot not saved", zap.Error(err))
			}

			out := cmd.OutOrStdout()
			if flags.jsonOutput {
				items := make([]trendJSON, len(trends))
				for i, tr := range trends {
					items[i] = trendJSON{projectJSON: newProjectJSON(rt.Config.User, tr.Project), Delta: tr.Delta}
				}
				return writeJSON(out, items)
			}

			rows := make([][]string, len(trends))
			for i, tr := range trends {
				rows[i] = []string{tr.Name, strconv.Itoa(tr.Stars), formatDelta(tr.Delta), formatDate(tr.UpdatedAt)}
			}
			fmt.Fprintln(out, renderTable([]string{"NAME", "STARS", "CHANGE", "UPDATED"}, rows))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "entries to show (default: top_limit from config)")
	cmd.Flags().BoolVar(&offline, "offline", false, "read from the local cache without contacting GitHub")
	return cmd
}

func newLanguagesCommand(flags *globalFlags) *cobra.Command {
	var limit int
	var offline bool
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "Rank languages by repository count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := flags.openCLI()
			if err != nil {
				return err
			}
			defer closeRuntime(rt)

			projects, err := loadProjects(cmd, rt, offline)
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = rt.Config.LanguageLimit
			}
			stats := derive.RankLanguages(projects, limit)

			out := cmd.OutOrStdout()
			if flags.jsonOutput {
				items := make([]languageJSON, len(stats))
				for i, s := range stats {
					items[i] = languageJSON{Name: s.Name, Count: s.Count}
				}
				return writeJSON(out, items)
			}
			rows := make([][]string, len(stats))
			for i, s := range stats {
				rows[i] = []string{s.Name, strconv.Itoa(s.Count)}
			}
			fmt.Fprintln(out, renderTable([]string{"LANGUAGE", "REPOS"}, rows))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "languages to show (default: language_limit from config)")
	cmd.Flags().BoolVar(&offline, "offline", false, "read from the local cache without contacting GitHub")
	return cmd
}

func newCacheCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the local repository cache",
	}

	info := &cobra.Command{
		Use:   "info",
		Short: "Show when the cache was written and whether it is still valid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := flags.openCLI()
			if err != nil {
				return err
			}
			defer closeRuntime(rt)

			entry, ok := rt.Cache.Load()
			report := cacheJSON{
				Storage: rt.Config.Storage,
				TTL:     rt.Cache.TTL().String(),
				Valid:   ok,
			}
			if ok {
				stored := entry.StoredAt
				expires := stored.Add(rt.Cache.TTL())
				report.StoredAt = &stored
				report.ExpiresAt = &expires
				report.Count = len(entry.Projects)
			}

			out := cmd.OutOrStdout()
			if flags.jsonOutput {
				return writeJSON(out, report)
			}
			if !ok {
				fmt.Fprintf(out, "no valid cache (%s storage, ttl %s)\n", report.Storage, report.TTL)
				return nil
			}
			fmt.Fprintf(out, "storage:  %s\n", report.Storage)
			fmt.Fprintf(out, "projects: %d\n", report.Count)
			fmt.Fprintf(out, "stored:   %s (%s ago)\n", entry.StoredAt.Local().Format(time.DateTime), time.Since(entry.StoredAt).Round(time.Second))
			fmt.Fprintf(out, "expires:  %s\n", report.ExpiresAt.Local().Format(time.DateTime))
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the cached repositories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := flags.openCLI()
			if err != nil {
				return err
			}
			defer closeRuntime(rt)

			if err := rt.Cache.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return nil
		},
	}

	cmd.AddCommand(info, clearCmd)
	return cmd
}

func newLogsCommand(flags *globalFlags) *cobra.Command {
	var lines int
	var level string
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the terminal UI log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			minLevel, err := logging.ParseLevel(level)
			if err != nil {
				return err
			}
			entries, err := logging.Tail(cfg.LogFile, lines, minLevel)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.jsonOutput {
				if entries == nil {
					entries = []logging.Entry{}
				}
				return writeJSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "no log entries in %s\n", cfg.LogFile)
				return nil
			}
			for _, e := range entries {
				fmt.Fprintln(out, e.Format())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "entries to show (0 shows all)")
	cmd.Flags().StringVar(&level, "level", "debug", "minimum level: debug, info, warn or error")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "repofolio %s\n", version.Version)
		},
	}
}

// loadProjects fetches from GitHub, falling back to the cache with a warning
// on stderr. With offline set only the cache is consulted.
func loadProjects(cmd *cobra.Command, rt *app.Runtime, offline bool) ([]project.Project, error) {
	if offline {
		entry, ok := rt.Cache.Load()
		if !ok {
			return nil, fmt.Errorf("%w; run without --offline to fetch", errNoCache)
		}
		return entry.Projects, nil
	}

	res, err := rt.Loader.Load(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load repositories for %s: %w", rt.Config.User, err)
	}
	if res.FromCache {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; showing cached data from %s\n",
			res.Err, res.CachedAt.Local().Format(time.DateTime))
	}
	return res.Projects, nil
}

type projectJSON struct {
	project.Project
	StarHistory      string `json:"star_history"`
	StarHistoryChart string `json:"star_history_chart"`
}

func newProjectJSON(owner string, p project.Project) projectJSON {
	return projectJSON{
		Project:          p,
		StarHistory:      github.StarHistoryURL(owner, p.Name),
		StarHistoryChart: github.StarHistoryChartURL(owner, p.Name),
	}
}

type listJSON struct {
	User     string        `json:"user"`
	Count    int           `json:"count"`
	Filters  []string      `json:"filters"`
	Sort     string        `json:"sort"`
	Projects []projectJSON `json:"projects"`
}

type trendJSON struct {
	projectJSON
	Delta int `json:"delta"`
}

type languageJSON struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type cacheJSON struct {
	Storage   string     `json:"storage"`
	TTL       string     `json:"ttl"`
	Valid     bool       `json:"valid"`
	Count     int        `json:"count"`
	StoredAt  *time.Time `json:"stored_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateOnly)
}

func formatDelta(d int) string {
	if d > 0 {
		return "+" + strconv.Itoa(d)
	}
	return strconv.Itoa(d)
}
