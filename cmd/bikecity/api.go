package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bike-city/internal/api"
	"github.com/vovakirdan/bike-city/internal/storage"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP game API",
	Long: `Serve the player database over HTTP so games can run against it with
'bikecity play --api'.

Routes live under /api: health, bicycles, shops, missions, player/create
and player/{id} with its position, purchase and mission endpoints.

Examples:
  bikecity api
  bikecity api --addr :9000 --db ./city.db
  BIKECITY_API_ADDR=:9000 bikecity api`,
	Args: cobra.NoArgs,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", api.DefaultAddr, "HTTP listen address (host:port)")
}

func runAPI(cmd *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bikecity-api",
	})

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open player database: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return api.NewServer(store, logger).ListenAndServe(ctx, flagAPIAddr)
}
