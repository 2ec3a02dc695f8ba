// bikecity is an eco-themed bicycle city game for the terminal.
//
// Usage:
//
//	bikecity play            - Ride as a player
//	bikecity menu            - Pick a rider interactively, then ride
//	bikecity riders          - Show the rider leaderboard
//	bikecity catalog         - List bicycles, shops and missions
//	bikecity serve           - Start SSH server for remote play
//	bikecity api             - Start the HTTP game API
//	bikecity config          - Print the default configuration
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for the city layout
//	--db <path>       - Set database path (default: ~/.bikecity/bikecity.db)
//	--config <path>   - Use a custom game config YAML
//
// Settings may also come from the environment or a .env file in the working
// directory: BIKECITY_DB, BIKECITY_API_URL, BIKECITY_API_ADDR, BIKECITY_SSH_ADDR.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bikecity",
	Short: "Bike City - ride, recycle and clean up a city in your terminal",
	Long: `Bike City is a terminal game about getting around a city by bicycle:
dodge traffic, buy better bikes and take on green missions.

Available commands:
  play     - Ride as a player
  menu     - Interactive rider picker
  riders   - Show the rider leaderboard
  catalog  - List bicycles, shops and missions
  serve    - Start SSH server for remote play
  api      - Start the HTTP game API
  config   - Print the default configuration

Examples:
  bikecity play --name alice
  bikecity play --api http://localhost:8001 --player <id>
  bikecity menu
  bikecity serve --ssh :2222
  bikecity api --addr :8001`,
	PersistentPreRunE: loadEnv,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bikecity/bikecity.db", "Path to player database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(ridersCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(configCmd)
}

// loadEnv reads .env if present and lets the environment fill flags the
// user did not set.
func loadEnv(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot read .env: %w", err)
	}

	envFlags := map[string]string{
		"db":   "BIKECITY_DB",
		"api":  "BIKECITY_API_URL",
		"addr": "BIKECITY_API_ADDR",
		"ssh":  "BIKECITY_SSH_ADDR",
	}
	for name, env := range envFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if v, ok := os.LookupEnv(env); ok && v != "" {
			if err := f.Value.Set(v); err != nil {
				return fmt.Errorf("invalid %s: %w", env, err)
			}
		}
	}
	return nil
}
