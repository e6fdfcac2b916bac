package cmd

import (
	"context"
	"fmt"

	"github.com/dbsmedya/discbot/internal/seed"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and check the store",
	Long: `Validate checks the configuration file and verifies that the store
is reachable and holds the reference data the disc command reads.

Checks performed:
  - Configuration syntax and required fields
  - Store connectivity
  - Reference tables present and loaded at the embedded version

Example:
  discbot validate --config discbot.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cmd.Printf("\n=== Configuration Validation ===\n")
	cmd.Printf("Config file: %s\n", GetConfigFile())

	env, err := openEnvironment(ctx, false)
	if err != nil {
		cmd.Printf("❌ %v\n", err)
		return fmt.Errorf("validation failed: %w", err)
	}
	defer env.Close()

	cmd.Printf("Store: %s\n", env.cfg.Store.Driver)
	cmd.Printf("Bot name: %s\n\n", env.cfg.Bot.Name)

	if err := env.db.Ping(ctx); err != nil {
		cmd.Printf("❌ %v\n", err)
		return fmt.Errorf("store connection failed: %w", err)
	}
	cmd.Printf("✅ Store reachable\n")

	hasErrors := false
	for _, table := range []string{"discs", "nanos", "nanolines", "nano_nanolines_ref"} {
		var n int
		if err := env.db.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			cmd.Printf("❌ Table %s: %v\n", table, err)
			hasErrors = true
			continue
		}
		cmd.Printf("✅ Table %s: %d row(s)\n", table, n)
	}

	datasets, err := seed.Datasets(seed.Files())
	if err != nil {
		return fmt.Errorf("failed to list datasets: %w", err)
	}
	loader := seed.NewLoader(env.db.DB, env.cfg.Store.Driver, seed.Files(), env.log)
	for _, ds := range datasets {
		loaded, err := loader.LoadedVersion(ctx, ds.Module, ds.Name)
		if err != nil {
			return fmt.Errorf("failed to read version of %s/%s: %w", ds.Module, ds.Name, err)
		}
		if ds.Versioned && loaded < ds.Version {
			cmd.Printf("❌ Dataset %s/%s: loaded %d, embedded %d (run 'discbot load')\n",
				ds.Module, ds.Name, loaded, ds.Version)
			hasErrors = true
			continue
		}
		cmd.Printf("✅ Dataset %s/%s: version %d\n", ds.Module, ds.Name, loaded)
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}

	cmd.Println("\n=== Validation Complete ===")
	return nil
}
