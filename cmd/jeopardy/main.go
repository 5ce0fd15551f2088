// Jeopardy is a trivia board game played against a jService-compatible
// trivia API.
//
// It deals six random categories of five clues each. Every clue starts
// hidden; selecting it shows the question, selecting it again shows the
// answer. The board can be played in the terminal or served to browsers on
// the local network.
//
// Usage:
//
//	jeopardy [command] [flags]
//
// Running without arguments starts the terminal board.
// See 'jeopardy --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/jeopardy/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jeopardy",
	Short: "Trivia board game",
	Long: `A Jeopardy-style trivia board backed by the jService trivia API.

Six random categories of five clues are dealt onto a board. Select a clue
once to show the question and again to show the answer.

If no command is specified, the terminal board starts.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: play in the terminal
		return runPlay(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("jeopardy " + version.Full())
	},
}
