package main

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/myrjola/detectivequest/cmd/cli/app"
	"github.com/myrjola/detectivequest/cmd/cli/game"
	"github.com/myrjola/detectivequest/cmd/cli/journal"
	"github.com/myrjola/detectivequest/internal/errors"
	"github.com/spf13/cobra"
	"io/fs"
	"os"
)

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	app.AddFlags(rootCmd)
	rootCmd.AddGroup(game.Group)
	rootCmd.AddCommand(game.Play, game.Map, game.Suspects)
	rootCmd.AddGroup(journal.Group)
	rootCmd.AddCommand(journal.History)
}

var rootCmd = &cobra.Command{
	Use:           "detectivequest",
	Long:          `Detective Quest: explore the mansion, collect clues and accuse the culprit.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return game.Play.RunE(cmd, args)
	},
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
