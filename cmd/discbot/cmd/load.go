package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dbsmedya/discbot/internal/seed"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load [MODULE/dataset ...]",
	Short: "Import reference datasets into the store",
	Long: `Load imports embedded datasets into the configured store. Without
arguments every embedded dataset is loaded. A dataset whose recorded version
is already current is skipped.

On MySQL each import holds an advisory lock, so several bots sharing one
database never import the same dataset at the same time.

Example:
  discbot load
  discbot load NANO_MODULE/discs`,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

// parseDatasetRef splits "MODULE/dataset".
func parseDatasetRef(ref string) (module, dataset string, err error) {
	parts := strings.Split(ref, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid dataset %q, expected MODULE/dataset", ref)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".sql"), nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	type target struct{ module, dataset string }

	var targets []target
	if len(args) == 0 {
		datasets, err := seed.Datasets(seed.Files())
		if err != nil {
			return fmt.Errorf("failed to list datasets: %w", err)
		}
		// nanos before discs keeps the nano tables in place for lookups.
		for _, name := range seed.NanoDatasets {
			targets = append(targets, target{seed.NanoModule, name})
		}
		for _, ds := range datasets {
			if ds.Module == seed.NanoModule && slices.Contains(seed.NanoDatasets, ds.Name) {
				continue
			}
			targets = append(targets, target{ds.Module, ds.Name})
		}
	} else {
		for _, arg := range args {
			module, dataset, err := parseDatasetRef(arg)
			if err != nil {
				return err
			}
			targets = append(targets, target{module, dataset})
		}
	}

	ctx := context.Background()
	env, err := openEnvironment(ctx, false)
	if err != nil {
		return err
	}
	defer env.Close()

	loader := seed.NewLoader(env.db.DB, env.cfg.Store.Driver, seed.Files(), env.log)

	imported, skipped := 0, 0
	for _, t := range targets {
		res, err := loader.Load(ctx, t.module, t.dataset)
		if err != nil {
			return fmt.Errorf("failed to load %s/%s: %w", t.module, t.dataset, err)
		}
		if res.Skipped {
			skipped++
			cmd.Printf("%s/%s: already at version %d\n", res.Module, res.Dataset, res.Previous)
			continue
		}
		imported++
		cmd.Printf("%s/%s: imported version %d (%d statements)\n",
			res.Module, res.Dataset, res.Version, res.Statements)
	}

	env.log.WithFields(map[string]interface{}{
		"imported": imported,
		"skipped":  skipped,
	}).Info("Dataset load finished")
	return nil
}
