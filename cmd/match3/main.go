// match3 is a terminal match-3 puzzle.
//
// Usage:
//
//	match3 list               - List game modes
//	match3 play [mode]        - Play a mode (default: match3)
//	match3 menu               - Pick modes and view scores interactively
//	match3 serve              - Start SSH server for remote play
//	match3 scores [mode]      - Show high scores for a mode
//	match3 simulate           - Autoplay boards headlessly and print stats
//	match3 config [mode]      - Print the built-in config YAML
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.arcade/match3.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

// logger is configured in PersistentPreRunE from the log flags.
var (
	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - swap pieces, line up three, chain cascades",
	Long: `Match-3 is a terminal puzzle game. Swap two neighbouring pieces to
line up three or more of the same kind; cleared pieces fall and new ones
drop in from the top, sometimes chaining into cascades.

Available commands:
  list      - Show the game modes
  play      - Play a mode directly
  menu      - Interactive mode picker and scoreboard
  serve     - Start SSH server for remote play
  scores    - View high scores
  simulate  - Autoplay boards and print statistics
  config    - Print or install the built-in config

Examples:
  match3 play
  match3 play match3_moves --difficulty hard
  match3 menu
  match3 serve --ssh :2222
  match3 simulate --games 100 --moves 30`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/match3.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// setup validates shared flags and builds the logger. Interactive commands
// own the terminal, so they log to ~/.arcade/match3.log unless --log-file
// says otherwise.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}

	path := flagLogFile
	if path == "" && interactive(cmd) {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".arcade", "match3.log")
		}
	}

	var out io.Writer = os.Stderr
	switch {
	case path != "":
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	case interactive(cmd):
		out = io.Discard
	}

	logger = log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "match3",
	})

	match3.SetLogger(logger)
	match3.SetConfigPath(flagConfig)
	match3.SetDifficultyPreset(flagDifficulty)
	return nil
}

func interactive(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "play", "menu":
		return true
	}
	return false
}
