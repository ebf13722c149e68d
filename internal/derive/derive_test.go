package derive

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/sqmw/repofolio/internal/project"
	"github.com/sqmw/repofolio/internal/snapshot"
	"github.com/sqmw/repofolio/internal/state"
	"github.com/sqmw/repofolio/internal/storage"
)

var base = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time { return base.AddDate(0, 0, n) }

func fixture() []project.Project {
	return []project.Project{
		{Name: "zeta-cli", Description: "A CLI for zeta", Language: "Go", Stars: 5, UpdatedAt: day(3), CreatedAt: day(-300)},
		{Name: "Alpha", Language: "Rust", Stars: 12, UpdatedAt: day(1), CreatedAt: day(-100)},
		{Name: "beta", Description: "Dotfiles", Language: project.OtherLanguage, Stars: 0, UpdatedAt: day(5), CreatedAt: day(-10)},
		{Name: "gamma", Description: "Go bindings", Language: "C", Stars: 7, UpdatedAt: day(2), CreatedAt: day(-50)},
	}
}

func names(projects []project.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Name
	}
	return out
}

func TestFilter_EmptyCriteriaIsIdentity(t *testing.T) {
	in := fixture()
	got := Filter(in, Criteria{Query: "", Language: state.AllLanguages})
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("Filter identity mismatch (-want +got):\n%s", diff)
	}
	require.Empty(t, Filter(nil, Criteria{}))
}

func TestFilter_QueryMatchesCaseInsensitively(t *testing.T) {
	in := fixture()
	for _, q := range []string{"GO", "cli", "  dotfiles ", "ALPHA", "zzz", "o"} {
		got := Filter(in, Criteria{Query: q, Language: state.AllLanguages})
		kw := strings.ToLower(strings.TrimSpace(q))
		for _, p := range got {
			hit := strings.Contains(strings.ToLower(p.Name), kw) ||
				strings.Contains(strings.ToLower(p.Description), kw) ||
				strings.Contains(strings.ToLower(p.Language), kw)
			require.True(t, hit, "query %q returned non-matching %q", q, p.Name)
		}
	}

	got := Filter(in, Criteria{Query: "go", Language: state.AllLanguages})
	require.Equal(t, []string{"zeta-cli", "gamma"}, names(got), "language Go and description 'Go bindings' both match")
}

func TestFilter_MissingDescriptionIsSafe(t *testing.T) {
	got := Filter([]project.Project{{Name: "x", Language: "Go"}}, Criteria{Query: "nothing"})
	require.Empty(t, got)
}

func TestFilter_LanguageExactMatch(t *testing.T) {
	got := Filter(fixture(), Criteria{Language: "Go"})
	require.Equal(t, []string{"zeta-cli"}, names(got))

	got = Filter(fixture(), Criteria{Query: "bindings", Language: "Go"})
	require.Empty(t, got, "query and language must both match")

	got = Filter(fixture(), Criteria{Language: "go"})
	require.Empty(t, got, "language filter is exact")
}

func TestSort_Keys(t *testing.T) {
	tests := []struct {
		key  state.SortKey
		want []string
	}{
		{state.SortStars, []string{"Alpha", "gamma", "zeta-cli", "beta"}},
		{state.SortUpdated, []string{"beta", "zeta-cli", "gamma", "Alpha"}},
		{state.SortCreated, []string{"beta", "gamma", "Alpha", "zeta-cli"}},
		{state.SortName, []string{"Alpha", "beta", "gamma", "zeta-cli"}},
		{state.SortKey("mystery"), []string{"Alpha", "gamma", "zeta-cli", "beta"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			in := fixture()
			got := Sort(in, tt.key)
			require.Equal(t, tt.want, names(got))
			require.Equal(t, "zeta-cli", in[0].Name, "input must not be reordered")
		})
	}
}

func TestSort_NameIsPermutationInvariantAndIdempotent(t *testing.T) {
	in := fixture()
	want := names(Sort(in, state.SortName))

	perms := [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}
	for _, perm := range perms {
		shuffled := make([]project.Project, len(perm))
		for i, idx := range perm {
			shuffled[i] = in[idx]
		}
		once := Sort(shuffled, state.SortName)
		require.Equal(t, want, names(once), "perm %v", perm)
		require.Equal(t, want, names(Sort(once, state.SortName)), "sorting twice must not change the result")
	}
}

func TestSortLocale_CollatesAccents(t *testing.T) {
	in := []project.Project{{Name: "zebra"}, {Name: "Émile"}, {Name: "eagle"}}
	got := SortLocale(in, state.SortName, language.French)
	require.Equal(t, []string{"eagle", "Émile", "zebra"}, names(got), "byte order would put É last")
}

func TestLanguages_CountThenAlphabetical(t *testing.T) {
	var in []project.Project
	for range 5 {
		in = append(in, project.Project{Language: "Go"})
	}
	for range 3 {
		in = append(in, project.Project{Language: "Rust"})
	}
	for range 3 {
		in = append(in, project.Project{Language: "C"})
	}

	require.Equal(t, []string{"Go", "C"}, Languages(in, 2))
	require.Equal(t, []string{"Go", "C", "Rust"}, Languages(in, 0))
	require.Equal(t, []LanguageStat{{"Go", 5}, {"C", 3}, {"Rust", 3}}, RankLanguages(in, 10))
	require.Empty(t, Languages(nil, 3))
}

func TestTopStars(t *testing.T) {
	require.Equal(t, []string{"Alpha", "gamma"}, names(TopStars(fixture(), 2)))
	require.Len(t, TopStars(fixture(), 0), 4)
}

func TestDescribe(t *testing.T) {
	st := state.Default()
	st.Projects = fixture()
	st.Query = " go "
	st.Sort = state.SortName

	listing := Describe(st)
	require.Equal(t, []string{"gamma", "zeta-cli"}, names(listing.Projects))
	require.Equal(t, 2, listing.Count)
	require.Equal(t, []string{`"go"`}, listing.ActiveFilters)

	st.Language = "C"
	require.Equal(t, []string{`"go"`, "C"}, Describe(st).ActiveFilters)

	require.Empty(t, ActiveFilters(state.Default()))
}

func newSnapshots() *snapshot.Store {
	return snapshot.New(storage.NewMemory(), nil)
}

func TestTrending_DeltasAndOrdering(t *testing.T) {
	snaps := newSnapshots()
	require.NoError(t, snaps.Save(map[string]int{"A": 10, "B": 5}))

	current := []project.Project{
		{Name: "A", Stars: 12, UpdatedAt: day(1)},
		{Name: "B", Stars: 5, UpdatedAt: day(2)},
		{Name: "C", Stars: 3, UpdatedAt: day(3)},
	}
	got, err := Trending(current, snaps, 10)
	require.NoError(t, err)

	deltas := map[string]int{}
	for _, tr := range got {
		deltas[tr.Name] = tr.Delta
	}
	require.Equal(t, map[string]int{"A": 2, "B": 0, "C": 0}, deltas)
	require.Equal(t, []string{"A", "C", "B"}, trendNames(got), "A rises; B and C tie and C was updated last")
	require.True(t, got[0].Rising())
	require.False(t, got[1].Rising())
}

func TestTrending_SecondCallIsFlat(t *testing.T) {
	snaps := newSnapshots()
	require.NoError(t, snaps.Save(map[string]int{"A": 10}))
	current := []project.Project{{Name: "A", Stars: 12}, {Name: "B", Stars: 1}}

	_, err := Trending(current, snaps, 0)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"A": 12, "B": 1}, snaps.Load(), "snapshot overwritten with current counts")

	again, err := Trending(current, snaps, 0)
	require.NoError(t, err)
	for _, tr := range again {
		require.Zero(t, tr.Delta, "%s", tr.Name)
	}
}

func TestTrending_Truncates(t *testing.T) {
	got, err := Trending(fixture(), newSnapshots(), 2)
	require.NoError(t, err)
	require.Equal(t, []string{"beta", "zeta-cli"}, trendNames(got), "all deltas zero, ordered by last update")
}

func TestTrending_CorruptSnapshotIsEmpty(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(snapshot.DefaultKey, "{garbage"))
	got, err := Trending([]project.Project{{Name: "A", Stars: 9}}, snapshot.New(mem, nil), 5)
	require.NoError(t, err)
	require.Zero(t, got[0].Delta)
}

type readOnlySnapshots struct{ counts map[string]int }

func (r readOnlySnapshots) Load() map[string]int   { return r.counts }
func (readOnlySnapshots) Save(map[string]int) error { return errors.New("read-only") }

func TestTrending_SaveErrorStillReturnsResult(t *testing.T) {
	got, err := Trending([]project.Project{{Name: "A", Stars: 4}}, readOnlySnapshots{map[string]int{"A": 1}}, 5)
	require.Error(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 3, got[0].Delta)
}

type orderRecorder struct {
	ops []string
}

func (o *orderRecorder) Load() map[string]int {
	o.ops = append(o.ops, "load")
	return map[string]int{}
}

func (o *orderRecorder) Save(map[string]int) error {
	o.ops = append(o.ops, "save")
	return nil
}

func TestTrending_ReadsBeforeWriting(t *testing.T) {
	rec := &orderRecorder{}
	_, err := Trending(fixture(), rec, 3)
	require.NoError(t, err)
	require.Equal(t, []string{"load", "save"}, rec.ops)
}

func trendNames(trends []Trend) []string {
	out := make([]string, len(trends))
	for i, tr := range trends {
		out[i] = tr.Name
	}
	return out
}
