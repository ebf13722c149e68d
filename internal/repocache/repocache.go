// Package repocache persists the last successful project fetch as a
// timestamped envelope and serves it back while it is younger than a TTL.
package repocache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/sqmw/repofolio/internal/project"
	"github.com/sqmw/repofolio/internal/storage"
)

const (
	// DefaultKey is the storage key holding the envelope.
	DefaultKey = "repos_cache"
	// DefaultTTL bounds how long a cached fetch stays usable.
	DefaultTTL = time.Hour
)

var errMalformed = errors.New("malformed cache envelope")

// Entry is a decoded, unexpired envelope.
type Entry struct {
	Projects []project.Project
	StoredAt time.Time
}

type envelope struct {
	Timestamp int64              `json:"timestamp"`
	Data      *[]project.Project `json:"data"`
}

// Cache reads and writes the envelope through a storage.Store.
type Cache struct {
	store  storage.Store
	key    string
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// Option customises a Cache.
type Option func(*Cache)

// WithClock replaces time.Now; tests use it to pin TTL boundaries.
func WithClock(now func() time.Time) Option { return func(c *Cache) { c.now = now } }

// WithKey overrides DefaultKey.
func WithKey(key string) Option { return func(c *Cache) { c.key = key } }

// WithLogger attaches a logger for swallowed decode failures.
func WithLogger(l *zap.Logger) Option { return func(c *Cache) { c.logger = l } }

// New returns a Cache. A non-positive ttl uses DefaultTTL.
func New(store storage.Store, ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		store:  store,
		key:    DefaultKey,
		ttl:    ttl,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns the cached projects when a valid, unexpired envelope exists.
func (c *Cache) Get() ([]project.Project, bool) {
	entry, ok := c.Load()
	if !ok {
		return nil, false
	}
	return entry.Projects, true
}

// Load is Get plus the time the envelope was written. Any read, decode or
// schema failure is reported as a miss.
func (c *Cache) Load() (Entry, bool) {
	raw, ok, err := c.store.Get(c.key)
	if err != nil {
		c.logger.Debug("repository cache read failed", zap.String("key", c.key), zap.Error(err))
		return Entry{}, false
	}
	if !ok {
		return Entry{}, false
	}
	env, err := decode([]byte(raw))
	if err != nil {
		c.logger.Debug("repository cache ignored", zap.String("key", c.key), zap.Error(err))
		return Entry{}, false
	}
	now := c.now().UnixMilli()
	if now-env.Timestamp > c.ttl.Milliseconds() {
		return Entry{}, false
	}
	return Entry{
		Projects: project.Clone(*env.Data),
		StoredAt: time.UnixMilli(env.Timestamp),
	}, true
}

// Set overwrites the envelope with projects stamped at the current time.
func (c *Cache) Set(projects []project.Project) error {
	data := projects
	if data == nil {
		data = []project.Project{}
	}
	payload, err := json.Marshal(envelope{Timestamp: c.now().UnixMilli(), Data: &data})
	if err != nil {
		return fmt.Errorf("marshal cache envelope: %w", err)
	}
	if err := c.store.Set(c.key, string(payload)); err != nil {
		return fmt.Errorf("write cache envelope: %w", err)
	}
	return nil
}

// Clear removes the envelope.
func (c *Cache) Clear() error {
	if err := c.store.Delete(c.key); err != nil {
		return fmt.Errorf("clear cache envelope: %w", err)
	}
	return nil
}

func decode(raw []byte) (envelope, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var env envelope
	if err := dec.Decode(&env); err != nil {
		return envelope{}, fmt.Errorf("%w: %w", errMalformed, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return envelope{}, fmt.Errorf("%w: trailing data", errMalformed)
	}
	if env.Timestamp <= 0 {
		return envelope{}, fmt.Errorf("%w: missing timestamp", errMalformed)
	}
	if env.Data == nil {
		return envelope{}, fmt.Errorf("%w: missing data", errMalformed)
	}
	return env, nil
}
