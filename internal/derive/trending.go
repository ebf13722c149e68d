package derive

import (
	"cmp"
	"slices"

	"github.com/sqmw/repofolio/internal/project"
	"github.com/sqmw/repofolio/internal/snapshot"
)

// SnapshotStore is the persisted star baseline. *snapshot.Store implements it.
type SnapshotStore interface {
	Load() map[string]int
	Save(map[string]int) error
}

var _ SnapshotStore = (*snapshot.Store)(nil)

// Trend is a project annotated with its star change since the last snapshot.
type Trend struct {
	project.Project
	Delta int
}

// Rising reports whether the project gained stars.
func (t Trend) Rising() bool {
	return t.Delta > 0
}

// Trending compares projects against the stored baseline, then replaces the
// baseline with the current counts. Projects missing from the baseline get a
// delta of zero. The result is ordered by delta, then by most recent update,
// and truncated to limit (non-positive keeps all).
//
// The baseline is always read before it is written, so deltas measure change
// since the previous call. A failed save is returned alongside the complete
// result.
func Trending(projects []project.Project, snaps SnapshotStore, limit int) ([]Trend, error) {
	baseline := snaps.Load()

	trends := make([]Trend, len(projects))
	for i, p := range projects {
		last, ok := baseline[p.Name]
		if !ok {
			last = p.Stars
		}
		trends[i] = Trend{Project: p, Delta: p.Stars - last}
	}

	saveErr := snaps.Save(snapshot.FromProjects(projects))

	slices.SortStableFunc(trends, func(a, b Trend) int {
		if c := cmp.Compare(b.Delta, a.Delta); c != 0 {
			return c
		}
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	if limit > 0 && len(trends) > limit {
		trends = trends[:limit]
	}
	return trends, saveErr
}
