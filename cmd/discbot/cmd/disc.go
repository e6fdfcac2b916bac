package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// Console identity used when commands are issued from the CLI.
const (
	consoleSender  = "console"
	consoleChannel = "cli"
)

var discRaw bool

var discCmd = &cobra.Command{
	Use:   "disc <name or item reference>",
	Short: "Look up which nano an instruction disc turns into",
	Long: `Disc runs the chat command of the same name once and prints the reply.

The argument is either part of a disc name, where every word must occur in
the name, or an item reference as pasted from the game client.

Example:
  discbot disc light heal
  discbot disc '<a href="itemref://28601/28601/3">Instruction Disc (Light Heal)</a>'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDisc,
}

func init() {
	discCmd.Flags().BoolVar(&discRaw, "raw", false,
		"Print the reply as chat markup instead of rendering it")
	rootCmd.AddCommand(discCmd)
}

func runDisc(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	env, err := openEnvironment(ctx, true)
	if err != nil {
		return err
	}
	defer env.Close()

	registry, err := env.registry()
	if err != nil {
		return err
	}

	replier := consoleReplier(cmd.OutOrStdout(), discRaw, !GetCLIOverrides().NoColor)
	return registry.Dispatch(ctx, "disc "+strings.Join(args, " "), consoleSender, consoleChannel, replier)
}
