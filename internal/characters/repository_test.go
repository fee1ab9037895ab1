package characters_test

import (
	"context"
	"github.com/OPSAF/Anime/internal/characters"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/OPSAF/Anime/internal/models"
	"github.com/OPSAF/Anime/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeSource struct {
	chars   []models.Character
	err     error
	calls   atomic.Int32
	release chan struct{}
}

func (f *fakeSource) Scrape(ctx context.Context) (characters.ScrapeResult, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return characters.ScrapeResult{}, ctx.Err()
		}
	}
	trace := []characters.TraceEntry{{Step: "listing", URL: "http://example.test", Count: len(f.chars)}}
	if f.err != nil {
		return characters.ScrapeResult{Trace: trace}, f.err
	}
	return characters.ScrapeResult{Characters: f.chars, Trace: trace}, nil
}

type fakeEnricher struct {
	cases map[string]models.CaseFile
}

func (f fakeEnricher) Enrich(_ context.Context, c models.Character) (models.CaseFile, error) {
	cf, ok := f.cases[c.Name]
	if !ok {
		return models.CaseFile{}, errors.New("no case file", slog.String("name", c.Name))
	}
	return cf, nil
}

type memoryStore struct {
	mu        sync.Mutex
	chars     []models.Character
	fetchedAt time.Time
}

func (m *memoryStore) Save(_ context.Context, chars []models.Character, fetchedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chars = chars
	m.fetchedAt = fetchedAt
	return nil
}

func (m *memoryStore) Latest(_ context.Context) ([]models.Character, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chars, m.fetchedAt, nil
}

var scrapedFixture = []models.Character{
	{Name: "Frieren", Anime: "Frieren", Hint: "An elf mage", Source: models.ProvenanceScraped},
	{Name: "Laios Touden", Anime: "Dungeon Meshi", Hint: "Eats monsters", Source: models.ProvenanceScraped},
}

func newRepository(source characters.CharacterSource, enricher characters.Enricher, store characters.SnapshotStore,
	enabled bool) *characters.Repository {
	cfg := characters.RepositoryConfig{Enabled: enabled, Budget: 5 * time.Second}
	return characters.NewRepository(source, enricher, store, cfg, testhelpers.NewLogger(io.Discard))
}

func TestRepository_Load_disabled(t *testing.T) {
	t.Parallel()
	source := &fakeSource{chars: scrapedFixture}
	repo := newRepository(source, nil, nil, false)

	pool := repo.Load(context.Background())
	require.Equal(t, models.ProvenanceBackup, pool.Source)
	require.Equal(t, 10, pool.Len())
	require.Zero(t, source.calls.Load())

	status := repo.Status()
	require.False(t, status.Enabled)
	require.Equal(t, "disabled", status.Trace[0].Step)
}

func TestRepository_Load_failureFallsBack(t *testing.T) {
	t.Parallel()
	repo := newRepository(&fakeSource{err: characters.ErrNetwork}, nil, nil, true)

	pool := repo.Load(context.Background())
	require.Equal(t, models.ProvenanceBackup, pool.Source)
	require.Equal(t, 10, pool.Len())
	require.False(t, repo.HasScraped())

	status := repo.Status()
	require.NotEmpty(t, status.LastError)
	require.Len(t, status.Trace, 1)
	require.Equal(t, models.ProvenanceBackup, repo.Pool(models.ProvenanceScraped).Source)
}

func TestRepository_Load_success(t *testing.T) {
	t.Parallel()
	store := &memoryStore{}
	enricher := fakeEnricher{cases: map[string]models.CaseFile{
		"Frieren": {Evidence: []string{"Carries a staff older than most kingdoms"}},
	}}
	repo := newRepository(&fakeSource{chars: scrapedFixture}, enricher, store, true)

	pool := repo.Load(context.Background())
	require.Equal(t, models.ProvenanceScraped, pool.Source)
	require.Equal(t, []string{"Frieren", "Laios Touden"}, names(pool.Characters))
	require.Equal(t, []string{"Carries a staff older than most kingdoms"}, pool.Characters[0].Case.Evidence)

	// Laios has no generated case file and keeps the derived one.
	laios := pool.Characters[1].Case
	require.Equal(t, "Who is this character from Dungeon Meshi?", laios.MysteryQuestion)
	require.Equal(t, []string{"Eats monsters"}, laios.Evidence)

	require.True(t, repo.HasScraped())
	require.Len(t, store.chars, 2)
	require.False(t, store.fetchedAt.IsZero())

	status := repo.Status()
	require.Equal(t, 2, status.ScrapedCount)
	require.Empty(t, status.LastError)
}

func TestRepository_Load_sharesInFlightFetch(t *testing.T) {
	t.Parallel()
	source := &fakeSource{chars: scrapedFixture, release: make(chan struct{})}
	repo := newRepository(source, nil, nil, true)

	var wg sync.WaitGroup
	pools := make([]models.Pool, 3)
	for i := range pools {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pools[i] = repo.Load(context.Background())
		}()
	}
	require.Eventually(t, func() bool { return source.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	// Give the remaining callers time to join the in-flight fetch.
	time.Sleep(50 * time.Millisecond)
	close(source.release)
	wg.Wait()

	require.Equal(t, int32(1), source.calls.Load())
	for _, p := range pools {
		require.Equal(t, models.ProvenanceScraped, p.Source)
		require.Equal(t, 2, p.Len())
	}
}

func TestRepository_Load_callerGivesUp(t *testing.T) {
	t.Parallel()
	source := &fakeSource{chars: scrapedFixture, release: make(chan struct{})}
	repo := newRepository(source, nil, nil, true)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	pool := repo.Load(ctx)
	require.Equal(t, models.ProvenanceBackup, pool.Source, "nothing scraped yet")
	require.True(t, repo.Status().Loading)

	close(source.release)
	require.Eventually(t, repo.HasScraped, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return !repo.Status().Loading }, time.Second, 5*time.Millisecond)
	require.Equal(t, models.ProvenanceScraped, repo.Pool(models.ProvenanceScraped).Source)
}

func TestRepository_Restore(t *testing.T) {
	t.Parallel()
	fetchedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store := &memoryStore{chars: scrapedFixture, fetchedAt: fetchedAt}
	repo := newRepository(nil, nil, store, true)

	require.NoError(t, repo.Restore(context.Background()))
	require.True(t, repo.HasScraped())
	require.Equal(t, fetchedAt, repo.Status().FetchedAt)

	pool := repo.Pool(models.ProvenanceScraped)
	require.Equal(t, "Frieren", pool.Characters[0].Name)
	require.Equal(t, models.ProvenanceBackup, repo.Pool(models.ProvenanceBackup).Source)
}

func TestRepository_Restore_empty(t *testing.T) {
	t.Parallel()
	repo := newRepository(nil, nil, &memoryStore{}, true)
	require.NoError(t, repo.Restore(context.Background()))
	require.False(t, repo.HasScraped())

	require.NoError(t, newRepository(nil, nil, nil, true).Restore(context.Background()))
}
