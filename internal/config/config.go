// Package config reads the process configuration from environment variables prefixed with ANIME_.
package config

import (
	"github.com/OPSAF/Anime/internal/characters"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/OPSAF/Anime/internal/game"
	"github.com/caarlos0/env/v11"
	"log/slog"
	"time"
)

// Prefix is prepended to every variable name except OPENAI_API_KEY.
const Prefix = "ANIME_"

var ErrInvalidConfig = errors.NewSentinel("invalid configuration")

type Config struct {
	Addr            string           `env:"ADDR"             envDefault:"localhost:4000"`
	SQLiteURL       string           `env:"SQLITE_URL"       envDefault:":memory:"`
	PprofAddr       string           `env:"PPROF_ADDR"`
	LogLevel        slog.Level       `env:"LOG_LEVEL"        envDefault:"INFO"`
	SessionLifetime time.Duration    `env:"SESSION_LIFETIME" envDefault:"12h"`
	ScoringMode     game.ScoringMode `env:"SCORING_MODE"     envDefault:"combo"`
	OTelEndpoint    string           `env:"OTEL_ENDPOINT"`
	AIModel         string           `env:"AI_MODEL"         envDefault:"gpt-4o-mini"`
	// OpenAIAPIKey turns on case file generation for scraped characters. OPENAI_API_KEY is honoured as well.
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	// OpenAIBaseURL points the client at a compatible server.
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	Scrape Scrape `envPrefix:"SCRAPE_"`
	Rules  Rules
}

type Scrape struct {
	Enabled        bool          `env:"ENABLED"         envDefault:"true"`
	URLs           []string      `env:"URLS"            envDefault:"https://bangumi.tv/anime/browser?sort=hot,https://bangumi.tv/anime/browser?sort=rank"` //nolint:lll // default list
	ListingTimeout time.Duration `env:"LISTING_TIMEOUT" envDefault:"20s"`
	DetailTimeout  time.Duration `env:"DETAIL_TIMEOUT"  envDefault:"10s"`
	Delay          time.Duration `env:"DELAY"           envDefault:"2s"`
	MaxListings    int           `env:"MAX_LISTINGS"    envDefault:"10"`
	PerListing     int           `env:"PER_LISTING"     envDefault:"3"`
	RefreshBudget  time.Duration `env:"REFRESH_BUDGET"  envDefault:"90s"`
	// UserAgent defaults to [characters.DefaultUserAgent] when empty.
	UserAgent string `env:"USER_AGENT"`
}

type Rules struct {
	MaxAttempts        int `env:"MAX_ATTEMPTS"        envDefault:"3"`
	CaseEnergy         int `env:"CASE_ENERGY"         envDefault:"100"`
	EvidenceCost       int `env:"EVIDENCE_COST"       envDefault:"10"`
	PuzzleCost         int `env:"PUZZLE_COST"         envDefault:"5"`
	DeductionThreshold int `env:"DEDUCTION_THRESHOLD" envDefault:"5"`
}

// Load parses the configuration from environ, a map of variable names to values such as the one returned by
// env.ToMap(os.Environ()).
func Load(environ map[string]string) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{ //nolint:exhaustruct // defaults suffice
		Environment: environ,
		Prefix:      Prefix,
	})
	if err != nil {
		return Config{}, errors.Wrap(err, "parse environment")
	}
	if cfg.OpenAIAPIKey == "" {
		cfg.OpenAIAPIKey = environ["OPENAI_API_KEY"]
	}
	if err = cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if _, err := game.ScorerFor(c.ScoringMode); err != nil {
		errs = append(errs, errors.Wrap(ErrInvalidConfig, "scoring mode",
			slog.String("mode", string(c.ScoringMode))))
	}
	if c.Rules.MaxAttempts < 1 {
		errs = append(errs, errors.Wrap(ErrInvalidConfig, "max attempts must be positive",
			slog.Int("max_attempts", c.Rules.MaxAttempts)))
	}
	if c.Rules.EvidenceCost < 0 || c.Rules.PuzzleCost < 0 || c.Rules.CaseEnergy < 0 {
		errs = append(errs, errors.Wrap(ErrInvalidConfig, "energy values must not be negative"))
	}
	if c.Scrape.MaxListings < 1 || c.Scrape.PerListing < 1 {
		errs = append(errs, errors.Wrap(ErrInvalidConfig, "scrape caps must be positive",
			slog.Int("max_listings", c.Scrape.MaxListings), slog.Int("per_listing", c.Scrape.PerListing)))
	}
	if c.Scrape.Enabled && len(c.Scrape.URLs) == 0 {
		errs = append(errs, errors.Wrap(ErrInvalidConfig, "scraping is enabled without URLs"))
	}
	if c.SessionLifetime <= 0 {
		errs = append(errs, errors.Wrap(ErrInvalidConfig, "session lifetime must be positive"))
	}
	return errors.Join(errs...)
}

// GameRules converts the rule settings for the game engine.
func (c Config) GameRules() game.Rules {
	return game.Rules{
		MaxAttempts:        c.Rules.MaxAttempts,
		CaseEnergy:         c.Rules.CaseEnergy,
		EvidenceCost:       c.Rules.EvidenceCost,
		PuzzleCost:         c.Rules.PuzzleCost,
		DeductionThreshold: c.Rules.DeductionThreshold,
	}
}

func (c Config) ScraperConfig() characters.ScraperConfig {
	return characters.ScraperConfig{
		URLs:           c.Scrape.URLs,
		ListingTimeout: c.Scrape.ListingTimeout,
		DetailTimeout:  c.Scrape.DetailTimeout,
		Delay:          c.Scrape.Delay,
		MaxListings:    c.Scrape.MaxListings,
		PerListing:     c.Scrape.PerListing,
	}
}

func (c Config) RepositoryConfig() characters.RepositoryConfig {
	return characters.RepositoryConfig{
		Enabled: c.Scrape.Enabled,
		Budget:  c.Scrape.RefreshBudget,
	}
}
