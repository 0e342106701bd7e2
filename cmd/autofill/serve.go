package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/job-autofill/internal/config"
	"github.com/jonathan/job-autofill/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing POST /fill, GET and PUT /profile and GET /health.
Set JWT_SECRET to require bearer tokens; each token's profile ID then selects
the profile rows in the database store.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	store, release, err := openStore(ctx, settings)
	if err != nil {
		return err
	}
	defer release()

	srv, err := server.New(server.Config{
		Port:   settings.Port,
		Store:  store,
		JWT:    jwtCfg,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start(ctx)
}
