package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bike-city/internal/platform/tui"
)

var (
	flagLimit int
	flagTUI   bool
)

var ridersCmd = &cobra.Command{
	Use:   "riders",
	Short: "Show the rider leaderboard",
	Long: `Display the riders with the most eco points.

Examples:
  bikecity riders
  bikecity riders --limit 25
  bikecity riders --tui`,
	Args: cobra.NoArgs,
	RunE: runRiders,
}

func init() {
	ridersCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of riders to show")
	ridersCmd.Flags().BoolVar(&flagTUI, "tui", false, "Open the interactive leaderboard")
}

func runRiders(cmd *cobra.Command, _ []string) error {
	src, err := openSource(cmd.Context(), "")
	if err != nil {
		return err
	}
	defer src.Close()

	if flagTUI {
		rt := terminalConfig()
		return tui.RunLeaderboard(src.store, rt.ScreenW, rt.ScreenH)
	}

	players, err := src.store.ListPlayers(cmd.Context(), flagLimit)
	if err != nil {
		return fmt.Errorf("cannot list riders: %w", err)
	}

	fmt.Println("Bike City riders")
	fmt.Println()

	if len(players) == 0 {
		fmt.Println("No riders yet.")
		fmt.Println()
		fmt.Println("Run 'bikecity play' to start riding!")
		return nil
	}

	fmt.Printf("  %-4s  %-20s  %-6s  %-6s  %s\n", "Rank", "Name", "Eco", "Money", "Missions")
	fmt.Printf("  %-4s  %-20s  %-6s  %-6s  %s\n", "----", "----", "---", "-----", "--------")

	for i, p := range players {
		fmt.Printf("  %-4d  %-20s  %-6d  %-6d  %d\n", i+1, p.Name, p.EcoPoints, p.Money, len(p.CompletedMissions))
	}
	return nil
}
