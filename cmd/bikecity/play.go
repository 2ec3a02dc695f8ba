package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bike-city/internal/config"
)

var (
	flagName    string
	flagPlayer  string
	flagAPI     string
	flagLogFile string
	flagTraffic string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Ride as a player",
	Long: `Start riding around the city.

Without --player, the rider named by --name is loaded from the local
database, or created when it does not exist yet. With --api the game
talks to a running 'bikecity api' server instead of the database.

Controls:
  WASD/Arrows      - Ride
  Shift+direction  - Sprint
  E                - Talk to a nearby shop
  F                - Look at a nearby mission
  Enter/Space      - Accept
  Esc              - Dismiss
  Tab              - Mission log
  Q/Ctrl+C         - Quit

Traffic options:
  light  - Half the cars, slower
  normal - As configured
  heavy  - Twice the cars, faster, more people about
  fixed  - Exactly what the config file says

Examples:
  bikecity play --name alice
  bikecity play --traffic heavy
  bikecity play --api http://localhost:8001 --player 5f0c...
  bikecity play --log ./ride.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", defaultRiderName(), "Rider name")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player ID to ride as")
	playCmd.Flags().StringVar(&flagAPI, "api", "", "Game API base URL (default: local database)")
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write debug logs to this file")
	playCmd.Flags().StringVar(&flagTraffic, "traffic", "", "Traffic preset: light, normal, heavy, fixed")
}

// defaultRiderName is the login name, or "rider".
func defaultRiderName() string {
	if u := strings.TrimSpace(os.Getenv("USER")); u != "" {
		return u
	}
	return "rider"
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithTraffic(flagConfig, flagTraffic)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(flagLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Sync.Timeout())
	src, err := openSource(ctx, flagAPI)
	if err != nil {
		cancel()
		return err
	}
	defer src.Close()

	rec, err := src.rider(ctx, flagPlayer, flagName)
	cancel()
	if err != nil {
		return fmt.Errorf("cannot load rider: %w", err)
	}

	return ride(cmd.Context(), src, rec, cfg, terminalConfig(), logger)
}
