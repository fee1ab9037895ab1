package main

import (
	"context"
	"github.com/OPSAF/Anime/internal/ai"
	"github.com/OPSAF/Anime/internal/characters"
	"github.com/OPSAF/Anime/internal/config"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/OPSAF/Anime/internal/game"
	"github.com/OPSAF/Anime/internal/logging"
	"github.com/OPSAF/Anime/internal/random"
	"github.com/OPSAF/Anime/internal/repositories"
	"github.com/OPSAF/Anime/internal/sqlite"
	"github.com/OPSAF/Anime/internal/telemetry"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/caarlos0/env/v11"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"
)

type application struct {
	logger         *slog.Logger
	cfg            config.Config
	engine         *game.Engine
	characters     *characters.Repository
	sessionManager *scs.SessionManager
	htmx           *htmx.HTMX
	templates      map[string]*template.Template
}

func run(ctx context.Context, logger *slog.Logger, environ map[string]string) error {
	cfg, err := config.Load(environ)
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	shutdownTracing, err := telemetry.Setup(ctx, "anime", cfg.OTelEndpoint, logger)
	if err != nil {
		return errors.Wrap(err, "setup tracing")
	}
	defer func() {
		if err = shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to flush traces", errors.SlogError(err))
		}
	}()

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, cfg.SQLiteURL, logger); err != nil {
		return errors.Wrap(err, "open database", slog.String("url", cfg.SQLiteURL))
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close database", errors.SlogError(err))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	var enricher characters.Enricher
	if cfg.OpenAIAPIKey != "" {
		enricher = ai.NewClient(ai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.AIModel,
		}, logger)
	}
	scraper := characters.NewScraper(characters.NewHTTPFetcher(cfg.Scrape.UserAgent), cfg.ScraperConfig(), logger)
	snapshots := repositories.NewSnapshotRepository(db, logger)
	repo := characters.NewRepository(scraper, enricher, snapshots, cfg.RepositoryConfig(), logger)
	if err = repo.Restore(ctx); err != nil {
		// The snapshot is only a cache, the game works without it.
		logger.LogAttrs(ctx, slog.LevelWarn, "could not restore snapshot", errors.SlogError(err))
	}

	var engine *game.Engine
	if engine, err = game.NewEngine(cfg.GameRules(), cfg.ScoringMode, random.Picker); err != nil {
		return errors.Wrap(err, "create game engine")
	}

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, 24*time.Hour) //nolint:mnd // daily
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Cookie.Name = "anime_session"
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	var templates map[string]*template.Template
	if templates, err = parseTemplates(); err != nil {
		return errors.Wrap(err, "parse templates")
	}

	app := application{
		logger:         logger,
		cfg:            cfg,
		engine:         engine,
		characters:     repo,
		sessionManager: sessionManager,
		htmx:           htmx.New(),
		templates:      templates,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Default().LogAttrs(ctx, slog.LevelError, "failed to load .env file", errors.SlogError(err))
		os.Exit(1)
	}
	environ := env.ToMap(os.Environ())

	// The level is read here as well because the logger must exist before run reports configuration errors.
	level := slog.LevelInfo
	if cfg, err := config.Load(environ); err == nil {
		level = cfg.LogLevel
	}
	logger := slog.New(logging.NewContextHandler(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true,
		Level:       level,
		ReplaceAttr: nil,
	})))

	if err := run(ctx, logger, environ); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
