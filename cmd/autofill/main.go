// Package main provides the entry point for the job application autofill CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/job-autofill/internal/config"
	"github.com/jonathan/job-autofill/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath  string
	verbose     bool
	profilePath string
	databaseURL string
	profileID   string

	// Set in PersistentPreRunE
	settings config.Config
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "autofill",
	Short: "Fill job application forms from a saved profile",
	Long: `autofill writes your saved profile into job application forms. It recognizes
Greenhouse, Lever and Workday forms, falls back to hint-based field
classification everywhere else, and fills repeating work-experience blocks.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		settings = cfg

		logger, err = observability.NewLogger(cfg.Verbose)
		return err
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	flags.StringVar(&profilePath, "profile", "", "Profile file (JSON or YAML)")
	flags.StringVar(&databaseURL, "database-url", "", "PostgreSQL URL for the profile store")
	flags.StringVar(&profileID, "profile-id", "", "Profile UUID in the database store")
}

// resolveConfig layers flags over the environment over the config file over
// built-in defaults.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	fileCfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg = loaded
	}

	flagCfg := config.Config{
		ProfilePath: profilePath,
		DatabaseURL: databaseURL,
		ProfileID:   profileID,
		Verbose:     verbose,
	}
	if f := cmd.Flags().Lookup("port"); f != nil && f.Changed {
		flagCfg.Port = servePort
	}
	if f := cmd.Flags().Lookup("driver"); f != nil && f.Changed {
		flagCfg.Driver = fillDriver
	}

	env := config.FromEnv()
	merged := env.MergeWithDefaults(*fileCfg)
	merged = flagCfg.MergeWithDefaults(merged)
	merged = merged.MergeWithDefaults(config.Defaults())

	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
