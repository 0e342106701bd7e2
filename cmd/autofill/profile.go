package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/job-autofill/internal/observability"
	"github.com/jonathan/job-autofill/internal/profile"
	"github.com/jonathan/job-autofill/internal/types"
	"github.com/spf13/cobra"
)

var exportYAML bool

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show and edit the saved profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a summary of the saved profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, release, err := openStore(cmd.Context(), settings)
		if err != nil {
			return err
		}
		defer release()

		p, err := profile.Load(cmd.Context(), store)
		if err != nil {
			return err
		}
		observability.NewPrinter(os.Stdout).PrintProfile(p)
		return nil
	},
}

var profileGetCmd = &cobra.Command{
	Use:   "get [key ...]",
	Short: "Print stored values as JSON (all keys by default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		keys := args
		if len(keys) == 0 {
			keys = types.ProfileKeys
		}
		if err := checkKeys(keys); err != nil {
			return err
		}

		store, release, err := openStore(cmd.Context(), settings)
		if err != nil {
			return err
		}
		defer release()

		values, err := store.Get(cmd.Context(), keys...)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(values)
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set key=value [key=value ...]",
	Short: "Write profile values",
	Example: `  autofill profile set fullName="Jane Doe" email=jane@example.com
  autofill profile set workExperience='[{"title":"Engineer","company":"Acme"}]'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := profile.ParseAssignments(args)
		if err != nil {
			return err
		}
		return saveValues(cmd, values)
	},
}

var profileImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a JSON or YAML profile document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read profile: %w", err)
		}
		values, err := profile.Decode(data, profile.IsYAML(args[0]))
		if err != nil {
			return err
		}
		return saveValues(cmd, values)
	},
}

var profileExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the whole profile as a JSON or YAML document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, release, err := openStore(cmd.Context(), settings)
		if err != nil {
			return err
		}
		defer release()

		values, err := store.Get(cmd.Context(), types.ProfileKeys...)
		if err != nil {
			return err
		}
		out, err := profile.Encode(values, exportYAML)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

func init() {
	profileExportCmd.Flags().BoolVar(&exportYAML, "yaml", false, "Export as YAML")
	profileCmd.AddCommand(profileShowCmd, profileGetCmd, profileSetCmd, profileImportCmd, profileExportCmd)
	rootCmd.AddCommand(profileCmd)
}

func saveValues(cmd *cobra.Command, values profile.Values) error {
	store, release, err := openStore(cmd.Context(), settings)
	if err != nil {
		return err
	}
	defer release()

	if err := profile.Save(cmd.Context(), store, values); err != nil {
		return err
	}
	fmt.Printf("Saved %d value(s)\n", len(values))
	return nil
}

func checkKeys(keys []string) error {
	values := make(profile.Values, len(keys))
	for _, k := range keys {
		values[k] = nil
	}
	return values.CheckKeys()
}
