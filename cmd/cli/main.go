package main

import (
	"fmt"
	"github.com/OPSAF/Anime/cmd/cli/casefile"
	"github.com/OPSAF/Anime/cmd/cli/data"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"io/fs"
	"os"
)

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(data.Group)
	rootCmd.AddCommand(data.Scrape, data.Snapshot)
	rootCmd.AddGroup(casefile.Group)
	rootCmd.AddCommand(casefile.Enrich, casefile.Backup)
}

var rootCmd = &cobra.Command{
	Use:  "anime-cli",
	Long: `Command line utilities for the anime character guessing game. Settings are read from ANIME_ variables.`,
	// Errors are reported by Execute.
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
