package repocache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sqmw/repofolio/internal/project"
	"github.com/sqmw/repofolio/internal/storage"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sampleProjects() []project.Project {
	return []project.Project{
		{
			Name:      "folio",
			URL:       "https://github.com/sqmw/folio",
			Language:  "Go",
			Tags:      []string{project.TagFork},
			Stars:     12,
			UpdatedAt: time.Date(2026, 2, 20, 8, 30, 0, 0, time.UTC),
			CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestCache_SetThenGetRestoresTimes(t *testing.T) {
	store := storage.NewMemory()
	c := New(store, time.Hour, WithClock(fixedClock(testNow)))

	require.NoError(t, c.Set(sampleProjects()))

	got, ok := c.Get()
	require.True(t, ok)
	require.Len(t, got, 1)
	require.True(t, got[0].UpdatedAt.Equal(sampleProjects()[0].UpdatedAt), "UpdatedAt = %v", got[0].UpdatedAt)
	require.True(t, got[0].CreatedAt.Equal(sampleProjects()[0].CreatedAt), "CreatedAt = %v", got[0].CreatedAt)
	require.Equal(t, []string{project.TagFork}, got[0].Tags)

	entry, ok := c.Load()
	require.True(t, ok)
	require.Equal(t, testNow.UnixMilli(), entry.StoredAt.UnixMilli())
}

func TestCache_TTLBoundary(t *testing.T) {
	ttl := time.Hour
	tests := []struct {
		name  string
		stamp time.Time
		valid bool
	}{
		{"written now", testNow, true},
		{"exactly ttl old", testNow.Add(-ttl), true},
		{"ttl plus one millisecond", testNow.Add(-ttl - time.Millisecond), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemory()
			require.NoError(t, New(store, ttl, WithClock(fixedClock(tt.stamp))).Set(sampleProjects()))

			_, ok := New(store, ttl, WithClock(fixedClock(testNow))).Get()
			require.Equal(t, tt.valid, ok)
		})
	}
}

func TestCache_MalformedEnvelopesAreMisses(t *testing.T) {
	stamp := testNow.UnixMilli()
	cases := map[string]string{
		"not json":          "{oops",
		"missing timestamp": `{"data":[]}`,
		"zero timestamp":    `{"timestamp":0,"data":[]}`,
		"missing data":      fmt.Sprintf(`{"timestamp":%d}`, stamp),
		"null data":         fmt.Sprintf(`{"timestamp":%d,"data":null}`, stamp),
		"unknown field":     fmt.Sprintf(`{"timestamp":%d,"data":[],"version":2}`, stamp),
		"wrong data type":   fmt.Sprintf(`{"timestamp":%d,"data":{"name":"x"}}`, stamp),
		"bad project time":  fmt.Sprintf(`{"timestamp":%d,"data":[{"name":"x","updated":"yesterday"}]}`, stamp),
		"trailing garbage":  fmt.Sprintf(`{"timestamp":%d,"data":[]} extra`, stamp),
		"string timestamp":  `{"timestamp":"now","data":[]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			store := storage.NewMemory()
			require.NoError(t, store.Set(DefaultKey, raw))

			got, ok := New(store, time.Hour, WithClock(fixedClock(testNow))).Get()
			require.False(t, ok)
			require.Nil(t, got)
		})
	}
}

func TestCache_EmptyBatchIsValid(t *testing.T) {
	store := storage.NewMemory()
	c := New(store, time.Hour, WithClock(fixedClock(testNow)))
	require.NoError(t, c.Set(nil))

	got, ok := c.Get()
	require.True(t, ok)
	require.Empty(t, got)
}

func TestCache_SetOverwrites(t *testing.T) {
	store := storage.NewMemory()
	c := New(store, time.Hour, WithClock(fixedClock(testNow)))

	require.NoError(t, c.Set(sampleProjects()))
	require.NoError(t, c.Set([]project.Project{{Name: "other", Language: "Rust"}}))

	got, ok := c.Get()
	require.True(t, ok)
	require.Len(t, got, 1)
	require.Equal(t, "other", got[0].Name)
}

func TestCache_Clear(t *testing.T) {
	store := storage.NewMemory()
	c := New(store, time.Hour, WithClock(fixedClock(testNow)))
	require.NoError(t, c.Set(sampleProjects()))
	require.NoError(t, c.Clear())

	_, ok := c.Get()
	require.False(t, ok)
}

func TestNew_DefaultsTTL(t *testing.T) {
	c := New(storage.NewMemory(), 0)
	require.Equal(t, DefaultTTL, c.TTL())
}
