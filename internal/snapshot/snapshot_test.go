package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqmw/repofolio/internal/project"
	"github.com/sqmw/repofolio/internal/storage"
)

func TestStore_SaveLoad(t *testing.T) {
	s := New(storage.NewMemory(), nil)

	require.Empty(t, s.Load())
	require.NotNil(t, s.Load())

	require.NoError(t, s.Save(map[string]int{"A": 10, "B": 5}))
	require.Equal(t, map[string]int{"A": 10, "B": 5}, s.Load())

	require.NoError(t, s.Save(map[string]int{"C": 1}))
	require.Equal(t, map[string]int{"C": 1}, s.Load(), "Save should overwrite, not merge")
}

func TestStore_CorruptDataIsEmpty(t *testing.T) {
	for _, raw := range []string{"", "{", "null", "[1,2]", `{"A":"ten"}`, `{"A":1.5}`, `{"A":-1}`, `{"A":1} {}`} {
		mem := storage.NewMemory()
		require.NoError(t, mem.Set(DefaultKey, raw))

		got := New(mem, nil).Load()
		require.NotNil(t, got, "raw %q", raw)
		require.Empty(t, got, "raw %q", raw)
	}
}

func TestFromProjects(t *testing.T) {
	got := FromProjects([]project.Project{{Name: "A", Stars: 3}, {Name: "B"}})
	require.Equal(t, map[string]int{"A": 3, "B": 0}, got)
}
