// Package casefile holds the commands that work with the investigation material of characters.
package casefile

import (
	"encoding/json"
	"fmt"
	"github.com/OPSAF/Anime/internal/ai"
	"github.com/OPSAF/Anime/internal/characters"
	"github.com/OPSAF/Anime/internal/config"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/OPSAF/Anime/internal/logging"
	"github.com/OPSAF/Anime/internal/models"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"log/slog"
	"os"
	"strings"
)

var Group = &cobra.Group{
	ID:    "casefile",
	Title: "Case files",
}

func init() {
	Enrich.Flags().String("anime", "", "work of a character that is not bundled")
	Enrich.Flags().String("hint", "", "description of a character that is not bundled")
	Enrich.Flags().String("out", "", "path of the JSON file to write instead of stdout")
}

var Enrich = &cobra.Command{
	Use:     "enrich [name]",
	GroupID: "casefile",
	Short:   "Generate a case file",
	Long: `Asks the chat completion model for the case file of a character. Bundled characters are looked up by
name, others need --anime and --hint. Requires OPENAI_API_KEY.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(env.ToMap(os.Environ()))
		if err != nil {
			return errors.Wrap(err, "load config")
		}
		if cfg.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is not set")
		}
		logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			AddSource:   false,
			Level:       cfg.LogLevel,
			ReplaceAttr: nil,
		})))

		name := strings.Join(args, " ")
		char, ok := characters.Backup().Find(name)
		if !ok {
			anime, _ := cmd.Flags().GetString("anime")
			hint, _ := cmd.Flags().GetString("hint")
			if anime == "" || hint == "" {
				return errors.New("not a bundled character, pass --anime and --hint", slog.String("name", name))
			}
			char = models.Character{Name: name, Anime: anime, Hint: hint, Source: models.ProvenanceScraped}
		}

		client := ai.NewClient(ai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.AIModel,
		}, logger)
		cf, err := client.Enrich(cmd.Context(), char)
		if err != nil {
			return errors.Wrap(err, "enrich")
		}

		data, err := json.MarshalIndent(cf, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encode case file")
		}
		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		if err = os.WriteFile(outPath, data, 0o600); err != nil { //nolint:mnd // owner only
			return errors.Wrap(err, "write case file", slog.String("path", outPath))
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "The case file was saved as %s\n", outPath)
		return nil
	},
}

var Backup = &cobra.Command{
	Use:     "backup",
	GroupID: "casefile",
	Short:   "List bundled characters",
	Long:    `Lists the bundled characters with the number of clues each case file offers.`,
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		pool := characters.Backup()
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "%d characters from %d works\n", pool.Len(), len(pool.Works()))
		for _, c := range pool.Characters {
			_, _ = fmt.Fprintf(out, "%-20s %-28s traits=%d timeline=%d relationships=%d testimony=%d\n",
				c.Name, c.Anime, len(c.Case.PuzzlePieces()), len(c.Case.Timeline), len(c.Case.Relationships),
				len(c.Case.Evidence))
		}
	},
}
