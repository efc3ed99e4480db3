// Package purge deletes the cache directory of each project with bounded
// concurrency, reporting every status transition on an event stream.
package purge

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/lakshaymaurya-felt/nmsweep/internal/core"
	"github.com/lakshaymaurya-felt/nmsweep/internal/logging"
	"github.com/lakshaymaurya-felt/nmsweep/internal/project"
)

// DefaultConcurrency is the number of deletions allowed in flight when none is configured.
const DefaultConcurrency = 8

// Options configures a Pool.
type Options struct {
	// CacheDir is the directory name removed inside each project.
	CacheDir string

	// Concurrency bounds simultaneous deletions. Values < 1 use DefaultConcurrency.
	Concurrency int
}

// Pool removes cache directories. It holds no per-run state and may be reused.
type Pool struct {
	cacheDir    string
	concurrency int

	// Swappable for tests.
	resolve func(string) (string, error)
	remove  func(string) error
}

// New creates a pool.
func New(opts Options) *Pool {
	n := opts.Concurrency
	if n < 1 {
		n = DefaultConcurrency
	}
	return &Pool{
		cacheDir:    opts.CacheDir,
		concurrency: n,
		resolve:     core.CanonicalPath,
		remove:      core.RemoveDir,
	}
}

// Concurrency returns the effective in-flight limit.
func (p *Pool) Concurrency() int {
	return p.concurrency
}

// Run starts deleting and returns the event stream. Every project yields a
// Deleting event followed by exactly one Done or Failed event. The stream is
// buffered for every event of the run, so it may be left unread, and it is
// closed once all projects reached a terminal state.
//
// There is no cancellation: ctx only carries the logger.
func (p *Pool) Run(ctx context.Context, projects []project.Project) <-chan project.Event {
	events := make(chan project.Event, 2*len(projects))
	ctx = logging.WithComponent(ctx, "purge")

	go func() {
		defer close(events)

		var g errgroup.Group
		g.SetLimit(p.concurrency)
		for _, proj := range projects {
			path := proj.Path
			g.Go(func() error {
				p.purgeOne(ctx, path, events)
				return nil
			})
		}
		_ = g.Wait()
	}()

	return events
}

// purgeOne handles a single project. Both events come from this goroutine,
// which keeps them ordered.
func (p *Pool) purgeOne(ctx context.Context, path string, events chan<- project.Event) {
	log := logging.FromContext(ctx)
	events <- project.Event{Path: path, Status: project.StatusDeleting}

	status := project.StatusDone
	if err := p.removeCache(path); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("cache removal failed")
		status = project.StatusFailed
	} else {
		log.Debug().Str("path", path).Msg("cache removed")
	}

	events <- project.Event{Path: path, Status: status}
}

// removeCache resolves the project path before deleting, since a relative
// path can stop pointing at the project while a long run is in progress.
func (p *Pool) removeCache(path string) error {
	dir, err := p.resolve(path)
	if err != nil {
		return err
	}
	return p.remove(filepath.Join(dir, p.cacheDir))
}
