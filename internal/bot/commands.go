package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/dbsmedya/discbot/internal/logger"
	"github.com/dbsmedya/discbot/internal/text"
)

// DiscHandler answers a disc lookup. *nano.Controller implements it.
type DiscHandler interface {
	Handle(ctx context.Context, arg string) (text.Pages, error)
}

// lookupFailed is sent when the store could not be queried.
const lookupFailed = "Could not look up that disc right now, please try again later."

// DiscCommand is the "disc" command.
type DiscCommand struct {
	handler DiscHandler
	logger  *logger.Logger
}

// NewDiscCommand wraps handler as a chat command.
func NewDiscCommand(handler DiscHandler, log *logger.Logger) *DiscCommand {
	if log == nil {
		log = logger.NewDefault()
	}
	return &DiscCommand{handler: handler, logger: log.WithCommand("disc")}
}

func (c *DiscCommand) Name() string { return "disc" }

func (c *DiscCommand) Description() string {
	return "Show which nano an instruction disc turns into"
}

func (c *DiscCommand) Usage() string { return "disc <name or item reference>" }

// Run replies with the lookup result. Store failures are logged and answered
// with a generic message so the sender is never left without a reply.
func (c *DiscCommand) Run(ctx context.Context, inv *Invocation) error {
	pages, err := c.handler.Handle(ctx, inv.Args)
	if err != nil {
		c.logger.WithSender(inv.Sender, inv.Channel).Errorf("Disc lookup for %q failed: %v", inv.Args, err)
		return inv.Reply.Reply(ctx, text.Single(lookupFailed))
	}
	return inv.Reply.Reply(ctx, pages)
}

// HelpCommand lists the commands of a registry.
type HelpCommand struct {
	registry *Registry
}

// NewHelpCommand creates the "help" command for registry.
func NewHelpCommand(registry *Registry) *HelpCommand {
	return &HelpCommand{registry: registry}
}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "List available commands" }

func (c *HelpCommand) Run(ctx context.Context, inv *Invocation) error {
	var b strings.Builder
	for i, cmd := range c.registry.Commands() {
		if i > 0 {
			b.WriteString("\n")
		}
		name := cmd.Name()
		if u, ok := cmd.(Usager); ok {
			name = u.Usage()
		}
		fmt.Fprintf(&b, "%s%s%s: %s", text.TagHighlight, name, text.TagEnd, cmd.Description())
	}
	return inv.Reply.Reply(ctx, text.Single(b.String()))
}
