package characters

import (
	"context"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/OPSAF/Anime/internal/models"
	"golang.org/x/sync/singleflight"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// CharacterSource produces characters from a remote source.
type CharacterSource interface {
	Scrape(ctx context.Context) (ScrapeResult, error)
}

// SnapshotStore persists the last successful scrape so that it survives restarts.
type SnapshotStore interface {
	Save(ctx context.Context, chars []models.Character, fetchedAt time.Time) error
	Latest(ctx context.Context) ([]models.Character, time.Time, error)
}

// DefaultLoadBudget bounds a load when the configuration leaves it unset.
const DefaultLoadBudget = 90 * time.Second

type RepositoryConfig struct {
	// Enabled turns remote fetching on. When off, every load yields the bundled characters.
	Enabled bool
	// Budget bounds a whole load including enrichment.
	Budget time.Duration
}

// Status describes the repository for the debug panel.
type Status struct {
	Enabled      bool
	Loading      bool
	ScrapedCount int
	FetchedAt    time.Time
	Trace        []TraceEntry
	LastError    string
}

// Repository owns the playable characters. It hands out either the last scraped characters or the bundled ones
// and never an empty pool.
type Repository struct {
	source   CharacterSource
	enricher Enricher
	store    SnapshotStore
	cfg      RepositoryConfig
	logger   *slog.Logger
	group    singleflight.Group
	loading  atomic.Bool

	mu        sync.RWMutex
	scraped   []models.Character
	fetchedAt time.Time
	trace     []TraceEntry
	lastErr   string
}

// NewRepository creates a repository. enricher and store may be nil.
func NewRepository(
	source CharacterSource,
	enricher Enricher,
	store SnapshotStore,
	cfg RepositoryConfig,
	logger *slog.Logger,
) *Repository {
	if cfg.Budget <= 0 {
		cfg.Budget = DefaultLoadBudget
	}
	return &Repository{
		source:   source,
		enricher: enricher,
		store:    store,
		cfg:      cfg,
		logger:   logger.With(slog.String("source", "CharacterRepository")),
	}
}

// Restore loads the persisted snapshot, if any.
func (r *Repository) Restore(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	chars, fetchedAt, err := r.store.Latest(ctx)
	if err != nil {
		return errors.Wrap(err, "read snapshot")
	}
	if len(chars) == 0 {
		return nil
	}
	r.mu.Lock()
	r.scraped = chars
	r.fetchedAt = fetchedAt
	r.mu.Unlock()
	r.logger.LogAttrs(ctx, slog.LevelInfo, "restored snapshot",
		slog.Int("count", len(chars)), slog.Time("fetched_at", fetchedAt))
	return nil
}

// Load fetches fresh characters. Every failure degrades to the bundled characters, so the returned pool is
// never empty. Concurrent loads share one fetch; a caller whose ctx ends early gets the current pool while
// the fetch continues in the background.
func (r *Repository) Load(ctx context.Context) models.Pool {
	if !r.cfg.Enabled || r.source == nil {
		r.setTrace([]TraceEntry{{Step: "disabled"}}, "remote fetching is disabled")
		return Backup()
	}

	ch := r.group.DoChan("load", func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.cfg.Budget)
		defer cancel()
		r.loading.Store(true)
		defer r.loading.Store(false)
		return r.load(loadCtx)
	})
	select {
	case <-ctx.Done():
		r.logger.LogAttrs(ctx, slog.LevelWarn, "load still running, serving current pool")
		return r.Pool(models.ProvenanceScraped)
	case res := <-ch:
		if res.Err != nil {
			return Backup()
		}
		chars, _ := res.Val.([]models.Character)
		return models.Pool{Source: models.ProvenanceScraped, Characters: slices.Clone(chars)}
	}
}

func (r *Repository) load(ctx context.Context) ([]models.Character, error) {
	start := time.Now()
	res, err := r.source.Scrape(ctx)
	if err != nil {
		r.setTrace(res.Trace, err.Error())
		r.logger.LogAttrs(ctx, slog.LevelWarn, "scrape failed, using backup characters",
			errors.SlogError(err), slog.Duration("duration", time.Since(start)))
		return nil, err
	}
	r.setTrace(res.Trace, "")

	chars := r.enrich(ctx, res.Characters)
	fetchedAt := time.Now()
	r.mu.Lock()
	r.scraped = chars
	r.fetchedAt = fetchedAt
	r.mu.Unlock()

	if r.store != nil {
		if err = r.store.Save(ctx, chars, fetchedAt); err != nil {
			r.logger.LogAttrs(ctx, slog.LevelError, "could not save snapshot", errors.SlogError(err))
		}
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, "loaded characters",
		slog.Int("count", len(chars)), slog.Duration("duration", time.Since(start)))
	return chars, nil
}

func (r *Repository) enrich(ctx context.Context, chars []models.Character) []models.Character {
	out := make([]models.Character, 0, len(chars))
	for _, c := range chars {
		if !c.Case.IsEmpty() {
			out = append(out, c)
			continue
		}
		c.Case = DerivedCaseFile(c)
		if r.enricher != nil && ctx.Err() == nil {
			cf, err := r.enricher.Enrich(ctx, c)
			if err != nil {
				r.logger.LogAttrs(ctx, slog.LevelWarn, "enrichment failed",
					slog.String("name", c.Name), errors.SlogError(err))
			} else if !cf.IsEmpty() {
				c.Case = cf
			}
		}
		out = append(out, c)
	}
	return out
}

func (r *Repository) setTrace(trace []TraceEntry, lastErr string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trace = trace
	r.lastErr = lastErr
}

// Backup returns the bundled characters.
func (r *Repository) Backup() models.Pool {
	return Backup()
}

// Pool returns the pool for source. Scraped is served only when a scrape has succeeded, otherwise the bundled
// characters are returned.
func (r *Repository) Pool(source models.Provenance) models.Pool {
	if source == models.ProvenanceScraped {
		r.mu.RLock()
		defer r.mu.RUnlock()
		if len(r.scraped) > 0 {
			return models.Pool{Source: models.ProvenanceScraped, Characters: slices.Clone(r.scraped)}
		}
	}
	return Backup()
}

// HasScraped reports whether scraped characters are available.
func (r *Repository) HasScraped() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.scraped) > 0
}

// Status returns a snapshot of the repository state.
func (r *Repository) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Status{
		Enabled:      r.cfg.Enabled,
		Loading:      r.loading.Load(),
		ScrapedCount: len(r.scraped),
		FetchedAt:    r.fetchedAt,
		Trace:        slices.Clone(r.trace),
		LastError:    r.lastErr,
	}
}
