package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bike-city/internal/game"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List bicycles, shops and missions",
	Long: `Shows the bicycles for sale, the shops in town and the missions on offer.

Examples:
  bikecity catalog
  bikecity catalog --api http://localhost:8001`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&flagAPI, "api", "", "Game API base URL (default: local database)")
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	src, err := openSource(ctx, flagAPI)
	if err != nil {
		return err
	}
	defer src.Close()

	c, err := game.LoadCatalog(ctx, src.backend)
	if err != nil {
		return err
	}

	fmt.Println("Bicycles:")
	fmt.Println()
	fmt.Printf("  %-20s  %-22s  %-9s  %-5s  %s\n", "ID", "Name", "Type", "Speed", "Price")
	fmt.Printf("  %-20s  %-22s  %-9s  %-5s  %s\n", "--", "----", "----", "-----", "-----")
	for _, b := range c.Bicycles {
		fmt.Printf("  %-20s  %-22s  %-9s  %-5.0f  $%d\n", b.ID, b.Name, b.Type, b.Speed, b.Price)
	}

	fmt.Println()
	fmt.Println("Shops:")
	fmt.Println()
	for _, s := range c.Shops {
		fmt.Printf("  %-22s  %-16s  at (%.0f, %.0f)\n", s.Name, s.Type, s.Position.X, s.Position.Y)
		for _, item := range s.Inventory {
			price := item.Price
			if price == 0 {
				price = item.BuyPrice
			}
			fmt.Printf("    - %-20s  $%d\n", item.Name, price)
		}
	}

	fmt.Println()
	fmt.Println("Missions:")
	fmt.Println()
	for _, m := range c.Missions {
		fmt.Printf("  %-26s  goal %-3d  +%d eco  +$%d\n", m.Name, m.Objectives.Required, m.Rewards.EcoPoints, m.Rewards.Money)
		fmt.Printf("    %s\n", m.Description)
	}

	fmt.Println()
	fmt.Println("Run 'bikecity play' to go shopping.")
	return nil
}
