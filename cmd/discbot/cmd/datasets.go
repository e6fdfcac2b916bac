package cmd

import (
	"context"
	"fmt"

	"github.com/dbsmedya/discbot/internal/seed"
	"github.com/spf13/cobra"
)

var datasetsStatus bool

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List the embedded reference datasets",
	Long: `Datasets lists every dataset shipped with the binary together with its
file version. With --status the store is queried for the version that was
last imported.

Example:
  discbot datasets --status`,
	RunE: runDatasets,
}

func init() {
	datasetsCmd.Flags().BoolVar(&datasetsStatus, "status", false,
		"Show the version currently loaded in the store")
	rootCmd.AddCommand(datasetsCmd)
}

func runDatasets(cmd *cobra.Command, args []string) error {
	datasets, err := seed.Datasets(seed.Files())
	if err != nil {
		return fmt.Errorf("failed to list datasets: %w", err)
	}

	if len(datasets) == 0 {
		cmd.Println("No datasets embedded")
		return nil
	}

	var loader *seed.Loader
	ctx := context.Background()
	if datasetsStatus {
		env, err := openEnvironment(ctx, false)
		if err != nil {
			return err
		}
		defer env.Close()
		loader = seed.NewLoader(env.db.DB, env.cfg.Store.Driver, seed.Files(), env.log)
	}

	cmd.Printf("Embedded datasets:\n\n")

	for i, ds := range datasets {
		cmd.Printf("%d. %s/%s\n", i+1, ds.Module, ds.Name)
		if ds.Versioned {
			cmd.Printf("   Version:   %d\n", ds.Version)
		} else {
			cmd.Printf("   Version:   (none, always imported)\n")
		}

		if loader != nil {
			loaded, err := loader.LoadedVersion(ctx, ds.Module, ds.Name)
			if err != nil {
				return fmt.Errorf("failed to read version of %s/%s: %w", ds.Module, ds.Name, err)
			}
			switch {
			case loaded < 0:
				cmd.Printf("   Loaded:    (never)\n")
			case ds.Versioned && loaded < ds.Version:
				cmd.Printf("   Loaded:    %d (outdated)\n", loaded)
			default:
				cmd.Printf("   Loaded:    %d\n", loaded)
			}
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d dataset(s)\n", len(datasets))
	return nil
}
