package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dbsmedya/discbot/internal/logger"
	"github.com/dbsmedya/discbot/internal/text"
)

// Registry maps command words to commands.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	logger   *logger.Logger
}

// NewRegistry returns an empty registry. A nil log falls back to the default logger.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Registry{
		commands: make(map[string]Command),
		logger:   log,
	}
}

// Register adds a command. Names are case-insensitive and must be unique.
func (r *Registry) Register(cmd Command) error {
	name := strings.ToLower(cmd.Name())
	if name == "" || strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("invalid command name %q", cmd.Name())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command %q already registered", name)
	}
	r.commands[name] = cmd
	return nil
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[strings.ToLower(name)]
	return cmd, ok
}

// Commands returns every registered command sorted by name.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return strings.ToLower(cmds[i].Name()) < strings.ToLower(cmds[j].Name())
	})
	return cmds
}

// Dispatch runs the command named by the first word of message. Unknown
// commands and missing arguments are answered through replier; the returned
// error is the command's own failure or a failed reply.
func (r *Registry) Dispatch(ctx context.Context, message, sender, channel string, replier Replier) error {
	word, args := splitCommand(message)
	if word == "" {
		return nil
	}

	log := r.logger.WithCommand(strings.ToLower(word)).WithSender(sender, channel)

	cmd, ok := r.Lookup(word)
	if !ok {
		log.Debug("Unknown command")
		return replier.Reply(ctx, text.Single(fmt.Sprintf("Unknown command %q.", word)))
	}

	if u, ok := cmd.(Usager); ok && args == "" {
		return replier.Reply(ctx, text.Single("Usage: "+text.TagHighlight+u.Usage()+text.TagEnd))
	}

	inv := &Invocation{
		Sender:  sender,
		Channel: channel,
		Args:    args,
		Reply:   replier,
	}

	log.Debugw("Running command", "args", args)
	if err := cmd.Run(ctx, inv); err != nil {
		log.Errorf("Command failed: %v", err)
		return fmt.Errorf("command %s: %w", cmd.Name(), err)
	}
	return nil
}

// splitCommand separates the command word from the rest of the message.
func splitCommand(message string) (word, args string) {
	message = strings.TrimSpace(message)
	i := strings.IndexAny(message, " \t\n")
	if i < 0 {
		return message, ""
	}
	return message[:i], strings.TrimSpace(message[i+1:])
}
