// greedycat is a terminal snake game about a very hungry cat.
//
// Usage:
//
//	greedycat play [mode]     - Play a mode, or pick one from the menu
//	greedycat modes           - List game modes
//	greedycat profiles        - List device profiles
//	greedycat scores [mode]   - Show top scores
//	greedycat stats           - Show lifetime stats and achievements
//	greedycat serve           - Start SSH server for remote play
//	greedycat sim [mode]      - Run a headless game with the autopilot
//
// Global flags:
//
//	--db <path>         - Set database path (default: ~/.greedycat/scores.db)
//	--config <path>     - Load rules from a YAML file
//	--profile <name>    - Grid size and base speed (phone, tablet, desktop)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/greedycat/internal/config"
	"github.com/vovakirdan/greedycat/internal/core"
	"github.com/vovakirdan/greedycat/internal/registry"
)

var (
	// Global flags
	flagDBPath   string
	flagConfig   string
	flagProfile  string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "greedycat",
	Short: "Greedy Cat - a snake game for your terminal",
	Long: `Greedy Cat is a snake game: steer a hungry cat around the board,
eat fish to grow, chain catches into combos and fight the bosses that
show up once your score gets high enough.

Available commands:
  play      - Play a mode, or pick one from the menu
  modes     - Show all game modes
  profiles  - Show device profiles
  scores    - View high scores
  stats     - View lifetime stats and achievements
  serve     - Start SSH server for remote play
  sim       - Run a headless game with the autopilot

Examples:
  greedycat play
  greedycat play classic --profile desktop
  greedycat serve --ssh :2222
  greedycat sim hardcore --seed 42`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.greedycat/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Device profile (default: fit the terminal)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

// fail prints the error the way every command reports it and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig reads the rules and registers the profiles they define.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if err := registry.LoadConfig(cfg); err != nil {
		fail("%v", err)
	}
	return cfg
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("invalid --log-level %q: %v", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// profileSettings resolves --profile. ok is false when no profile was
// requested and the caller should pick one.
func profileSettings() (s core.Settings, ok bool) {
	if flagProfile == "" {
		return core.Settings{}, false
	}
	s, err := registry.Get(flagProfile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'greedycat profiles' to see available profiles.")
		os.Exit(1)
	}
	return s, true
}

// checkMode exits unless cfg defines mode.
func checkMode(cfg config.Config, mode string) {
	if _, ok := cfg.Mode(mode); !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'greedycat modes' to see available modes.")
		os.Exit(1)
	}
}
