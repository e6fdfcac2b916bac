package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	shellSender  string
	shellChannel string
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Read chat commands from stdin and print the replies",
	Long: `Shell dispatches every input line as a chat message, the way the bot
would when receiving a tell. Type "help" for the command list and "quit"
or Ctrl-D to leave.

Example:
  discbot shell --sender Nady`,
	RunE: runShell,
}

func init() {
	shellCmd.Flags().StringVar(&shellSender, "sender", consoleSender, "Character the messages appear to come from")
	shellCmd.Flags().StringVar(&shellChannel, "channel", "tell", "Channel the messages appear to arrive on")
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := openEnvironment(ctx, true)
	if err != nil {
		return err
	}
	defer env.Close()

	registry, err := env.registry()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	replier := consoleReplier(out, false, !GetCLIOverrides().NoColor)

	env.log.Infof("Shell ready as %s on %s", shellSender, shellChannel)

	lines, readErr := readLines(cmd.InOrStdin(), ctx.Done())
	for {
		fmt.Fprint(out, "> ")

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			env.log.Info("Shell interrupted")
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			break
		}

		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		if err := registry.Dispatch(ctx, line, shellSender, shellChannel, replier); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
	}
	fmt.Fprintln(out)

	if err := <-readErr; err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// readLines scans r in the background so the prompt can also wait on done.
// The lines channel is closed at end of input or once done is closed.
func readLines(r io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}
