package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/sim"
)

var (
	flagSimGames    int
	flagSimMoves    int
	flagSimStrategy string
	flagSimVerbose  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Autoplay boards and print statistics",
	Long: `Play games headlessly with instant animations and report scores.
Useful for tuning a config: compare average scores and cascade depth
across board sizes, palettes and difficulty presets.

Strategies:
  greedy - always play the swap that clears the most pieces
  random - play any valid swap

Examples:
  match3 simulate
  match3 simulate --games 200 --moves 40 --strategy random
  match3 simulate --config ./my-match3.yaml --difficulty hard --seed 1`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimGames, "games", 50, "Number of games to play")
	simulateCmd.Flags().IntVar(&flagSimMoves, "moves", 30, "Swaps per game")
	simulateCmd.Flags().StringVar(&flagSimStrategy, "strategy", "greedy", "Swap choice: greedy, random")
	simulateCmd.Flags().BoolVar(&flagSimVerbose, "verbose", false, "Print every game")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	strategy, err := sim.ParseStrategy(flagSimStrategy)
	if err != nil {
		return err
	}
	if flagSimGames <= 0 || flagSimMoves <= 0 {
		return errors.New("--games and --moves must be positive")
	}

	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		logger.Warn("falling back to default config", "path", flagConfig, "err", err)
		cfg = config.DefaultMatch3Config()
	}
	runner, err := sim.NewRunner(cfg, logger)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		preset, _ := config.ParsePreset(flagDifficulty)
		runner.WithPreset(preset)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	start := time.Now()
	stats, err := runner.Run(ctx, sim.Options{
		Games:    flagSimGames,
		Moves:    flagSimMoves,
		Seed:     seed,
		Strategy: strategy,
	})
	if err != nil && len(stats.Games) == 0 {
		return err
	}
	if err != nil {
		logger.Warn("simulation stopped early", "err", err, "played", len(stats.Games))
	}

	out := cmd.OutOrStdout()
	if flagSimVerbose {
		fmt.Fprintf(out, "  %-20s  %-8s  %-5s  %-5s  %s\n", "Seed", "Score", "Moves", "Chain", "Shuffles")
		for _, g := range stats.Games {
			fmt.Fprintf(out, "  %-20d  %-8d  %-5d  x%-4d  %d\n", g.Seed, g.Score, g.Moves, g.BestCascade, g.Shuffles)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Board:          %dx%d, %d kinds, match %d\n",
		cfg.Board.Width, cfg.Board.Height, len(cfg.Board.Types), cfg.Board.MinMatch)
	fmt.Fprintf(out, "Games:          %d x %d swaps (%s, first seed %d)\n",
		len(stats.Games), flagSimMoves, strategy, seed)
	fmt.Fprintf(out, "Average score:  %.1f\n", stats.AvgScore())
	fmt.Fprintf(out, "Best score:     %d\n", stats.BestScore)
	fmt.Fprintf(out, "Longest chain:  x%d\n", stats.BestCascade)
	fmt.Fprintf(out, "Dead boards:    %d\n", stats.Shuffles)
	fmt.Fprintf(out, "Elapsed:        %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
