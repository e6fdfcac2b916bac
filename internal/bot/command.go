// Package bot dispatches chat messages to commands and sends their replies
// back where the message came from.
package bot

import (
	"context"

	"github.com/dbsmedya/discbot/internal/text"
)

// Replier delivers a reply to the sender and channel of a message.
type Replier interface {
	Reply(ctx context.Context, pages text.Pages) error
}

// ReplierFunc adapts a function to Replier.
type ReplierFunc func(ctx context.Context, pages text.Pages) error

// Reply calls f.
func (f ReplierFunc) Reply(ctx context.Context, pages text.Pages) error {
	return f(ctx, pages)
}

// Invocation is one command call.
type Invocation struct {
	Sender  string
	Channel string
	// Args is the message after the command word, trimmed.
	Args  string
	Reply Replier
}

// Command is a named chat command.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}

// Usager is implemented by commands that require an argument. Dispatch
// answers with the usage line instead of running them without one.
type Usager interface {
	Usage() string
}
