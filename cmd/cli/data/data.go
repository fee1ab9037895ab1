// Package data holds the commands that fetch characters and inspect stored snapshots.
package data

import (
	"context"
	"fmt"
	"github.com/OPSAF/Anime/internal/characters"
	"github.com/OPSAF/Anime/internal/config"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/OPSAF/Anime/internal/logging"
	"github.com/OPSAF/Anime/internal/models"
	"github.com/OPSAF/Anime/internal/repositories"
	"github.com/OPSAF/Anime/internal/sqlite"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"io"
	"log/slog"
	"os"
	"time"
)

var Group = &cobra.Group{
	ID:    "data",
	Title: "Character data",
}

func init() {
	Scrape.Flags().Bool("save", false, "store the characters as the newest snapshot in ANIME_SQLITE_URL")
	Scrape.Flags().Bool("trace", false, "print every scrape step")
}

func setup() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(env.ToMap(os.Environ()))
	if err != nil {
		return config.Config{}, nil, errors.Wrap(err, "load config")
	}
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   false,
		Level:       cfg.LogLevel,
		ReplaceAttr: nil,
	})))
	return cfg, logger, nil
}

var Scrape = &cobra.Command{
	Use:     "scrape",
	GroupID: "data",
	Short:   "Fetch characters",
	Long:    `Runs the scraper once with the configured listing URLs and prints the characters it found.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		save, _ := cmd.Flags().GetBool("save")
		trace, _ := cmd.Flags().GetBool("trace")

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Scrape.RefreshBudget)
		defer cancel()

		scraper := characters.NewScraper(characters.NewHTTPFetcher(cfg.Scrape.UserAgent), cfg.ScraperConfig(), logger)
		result, err := scraper.Scrape(ctx)
		out := cmd.OutOrStdout()
		if trace {
			printTrace(out, result.Trace)
		}
		if err != nil {
			return errors.Wrap(err, "scrape")
		}
		printCharacters(out, result.Characters)

		if !save {
			return nil
		}
		var db *sqlite.Database
		if db, err = sqlite.NewDatabase(ctx, cfg.SQLiteURL, logger); err != nil {
			return errors.Wrap(err, "open database", slog.String("url", cfg.SQLiteURL))
		}
		defer func() {
			_ = db.Close()
		}()
		if err = repositories.NewSnapshotRepository(db, logger).Save(ctx, result.Characters, time.Now()); err != nil {
			return errors.Wrap(err, "save snapshot")
		}
		_, _ = fmt.Fprintf(out, "saved %d characters to %s\n", len(result.Characters), cfg.SQLiteURL)
		return nil
	},
}

var Snapshot = &cobra.Command{
	Use:     "snapshot",
	GroupID: "data",
	Short:   "Show the stored snapshot",
	Long:    `Prints the characters of the newest snapshot in ANIME_SQLITE_URL.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		var db *sqlite.Database
		if db, err = sqlite.NewDatabase(ctx, cfg.SQLiteURL, logger); err != nil {
			return errors.Wrap(err, "open database", slog.String("url", cfg.SQLiteURL))
		}
		defer func() {
			_ = db.Close()
		}()

		chars, fetchedAt, err := repositories.NewSnapshotRepository(db, logger).Latest(ctx)
		if err != nil {
			return errors.Wrap(err, "read snapshot")
		}
		out := cmd.OutOrStdout()
		if len(chars) == 0 {
			_, _ = fmt.Fprintln(out, "no snapshot stored")
			return nil
		}
		_, _ = fmt.Fprintf(out, "fetched at %s\n", fetchedAt.Format(time.RFC3339))
		printCharacters(out, chars)
		return nil
	},
}

func printCharacters(w io.Writer, chars []models.Character) {
	pool := models.Pool{Source: models.ProvenanceScraped, Characters: chars}
	_, _ = fmt.Fprintf(w, "%d characters from %d works\n", pool.Len(), len(pool.Works()))
	for _, c := range chars {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, c.Anime, c.Hint)
	}
}

func printTrace(w io.Writer, trace []characters.TraceEntry) {
	for _, entry := range trace {
		_, _ = fmt.Fprintf(w, "%-10s %3d  %s %s", entry.Step, entry.Count, entry.URL, entry.Selector)
		if entry.Error != "" {
			_, _ = fmt.Fprintf(w, "  error: %s", entry.Error)
		}
		_, _ = fmt.Fprintln(w)
	}
}
