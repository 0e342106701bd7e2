package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/job-autofill/internal/config"
	"github.com/jonathan/job-autofill/internal/server"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for a profile (requires JWT_SECRET)",
	Long: `Issue a bearer token for the server. The token is bound to --profile-id, or to
a new random profile when none is given.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		jwtCfg, err := config.NewJWTConfig()
		if err != nil {
			return err
		}
		if jwtCfg == nil {
			return errors.New("JWT_SECRET is not set")
		}

		id := uuid.New()
		if settings.ProfileID != "" {
			if id, err = uuid.Parse(settings.ProfileID); err != nil {
				return fmt.Errorf("invalid profile id: %w", err)
			}
		}

		token, err := server.NewJWTService(jwtCfg).GenerateToken(id)
		if err != nil {
			return err
		}
		fmt.Printf("profile: %s\ntoken:   %s\n", id, token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
