package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bike-city/internal/config"
	"github.com/vovakirdan/bike-city/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a rider with an interactive menu",
	Long: `Start in interactive menu mode.

The menu lists the riders in the local database, best first, plus an
entry for a new rider. After a ride ends you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Ride
  Tab          - Leaderboard
  Q            - Quit

Examples:
  bikecity menu
  bikecity menu --name newbie
  bikecity menu --fps 30 --db ./city.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagName, "name", defaultRiderName(), "Name for a new rider")
	menuCmd.Flags().StringVar(&flagLogFile, "log", "", "Write debug logs to this file")
	menuCmd.Flags().StringVar(&flagTraffic, "traffic", "", "Traffic preset: light, normal, heavy, fixed")
}

func runMenu(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithTraffic(flagConfig, flagTraffic)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(flagLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	src, err := openSource(cmd.Context(), "")
	if err != nil {
		return err
	}
	defer src.Close()

	rt := terminalConfig()

	// Menu loop
	for {
		result, err := tui.RunMenu(src.store, rt, flagName)
		if err != nil {
			return err
		}
		rt = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsLeaderboard {
			if err := tui.RunLeaderboard(src.store, rt.ScreenW, rt.ScreenH); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			continue
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Sync.Timeout())
		rec, err := src.rider(ctx, result.Rider.PlayerID, result.Rider.Name)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading rider: %v\n", err)
			continue
		}

		// A fresh city for every ride unless the seed is pinned.
		if flagSeed == 0 {
			rt.Seed = time.Now().UnixNano()
		}

		if err := ride(cmd.Context(), src, rec, cfg, rt, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
