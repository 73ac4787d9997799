package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
)

var flagConfigWrite bool

var configCmd = &cobra.Command{
	Use:   "config [mode]",
	Short: "Print the built-in game config",
	Long: `Prints the embedded YAML config for a mode (default: match3).

Copy it to ~/.arcade/configs/match3.yaml, or pass --write to do that,
then edit board size, palette, timing and difficulty. Keys left out of
the file keep their defaults.

Examples:
  match3 config
  match3 config --write`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigWrite, "write", false, "Write the config to ~/.arcade/configs/match3.yaml")
}

func runConfig(cmd *cobra.Command, args []string) error {
	gameID := "match3"
	if len(args) > 0 {
		gameID = args[0]
	}

	data := config.GetDefaultYAML(gameID)
	if data == nil {
		return fmt.Errorf("no config for mode %q", gameID)
	}

	if !flagConfigWrite {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	path := config.UserConfigPath("match3.yaml")
	if path == "" {
		return errors.New("cannot locate home directory")
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
