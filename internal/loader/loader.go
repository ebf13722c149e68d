// Package loader fetches the repository list, normalizes it and keeps the
// repository cache current, falling back to that cache when a fetch fails.
package loader

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sqmw/repofolio/internal/github"
	"github.com/sqmw/repofolio/internal/project"
	"github.com/sqmw/repofolio/internal/repocache"
)

// Cache is the slice of *repocache.Cache the loader needs.
type Cache interface {
	Load() (repocache.Entry, bool)
	Set(projects []project.Project) error
}

var _ Cache = (*repocache.Cache)(nil)

// Result is the outcome of a load. Err is set only when FromCache is true and
// records the failure that forced the fallback.
type Result struct {
	Projects  []project.Project
	FromCache bool
	CachedAt  time.Time
	Err       error
}

// Options configure a Loader.
type Options struct {
	User    string
	PerPage int
	Exclude []string
	Logger  *zap.Logger
}

// Loader implements the fetch-or-fallback strategy.
type Loader struct {
	fetcher github.RepoFetcher
	cache   Cache
	user    string
	perPage int
	exclude []string
	logger  *zap.Logger
}

// New builds a Loader.
func New(fetcher github.RepoFetcher, cache Cache, opts Options) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = github.DefaultPerPage
	}
	return &Loader{
		fetcher: fetcher,
		cache:   cache,
		user:    opts.User,
		perPage: perPage,
		exclude: append([]string(nil), opts.Exclude...),
		logger:  logger,
	}
}

// Load fetches the latest projects. On success the cache is overwritten
// exactly once. On failure a valid cached batch is returned with the failure
// in Result.Err; without one the failure is returned unchanged.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	projects, err := l.fetch(ctx)
	if err == nil {
		if cacheErr := l.cache.Set(projects); cacheErr != nil {
			l.logger.Warn("repository cache write failed", zap.Error(cacheErr))
		}
		l.logger.Info("repositories fetched",
			zap.String("user", l.user),
			zap.Int("count", len(projects)))
		return Result{Projects: projects}, nil
	}

	entry, ok := l.cache.Load()
	if !ok {
		l.logger.Error("repository load failed, no cache available",
			zap.String("user", l.user),
			zap.Int("status", github.StatusCode(err)),
			zap.Error(err))
		return Result{}, err
	}
	l.logger.Warn("repository fetch failed, serving cache",
		zap.String("user", l.user),
		zap.Int("status", github.StatusCode(err)),
		zap.Time("cached_at", entry.StoredAt),
		zap.Int("count", len(entry.Projects)),
		zap.Error(err))
	return Result{
		Projects:  entry.Projects,
		FromCache: true,
		CachedAt:  entry.StoredAt,
		Err:       err,
	}, nil
}

func (l *Loader) fetch(ctx context.Context) ([]project.Project, error) {
	if l.fetcher == nil {
		return nil, fmt.Errorf("loader has no fetcher")
	}
	repos, err := l.fetcher.FetchRepos(ctx, l.user, l.perPage)
	if err != nil {
		return nil, err
	}
	return Normalize(repos, l.exclude), nil
}
