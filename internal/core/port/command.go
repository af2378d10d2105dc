package port

import (
	"context"
	"eggbot/internal/core/domain"
)

// Command is the one capability every command has. What it can do beyond
// that is expressed by the optional interfaces below; the dispatcher checks
// for them before invoking.
type Command interface {
	// Definition returns the static help and configuration block of the command.
	Definition() *domain.Definition
}

type MessageRunner interface {
	// Run executes the command for a text message that passed every gate.
	Run(ctx context.Context, inv *domain.Invocation) error
}

type InteractionHandler interface {
	// Callback executes the command for a structured interaction.
	Callback(ctx context.Context, interaction *domain.Interaction) error
}

type Autocompleter interface {
	// Autocomplete returns suggestions for the focused option of an interaction.
	Autocomplete(ctx context.Context, interaction *domain.Interaction) ([]string, error)
}

type ContextMenuReplier interface {
	// ContextMenuReply answers a context menu invocation on a user or message.
	ContextMenuReply(ctx context.Context, interaction *domain.Interaction) error
}

type CommandRegistry interface {
	// Add registers a command in the primary or sub-command table and indexes its aliases.
	Add(cmd Command) error
	// Get looks a name up in the primary, sub-command and alias tables, in that order.
	Get(name string) (Command, error)
	// AllNames returns the keys of all three tables.
	AllNames() []string
	// Remove unregisters a command and every alias pointing to it.
	Remove(name string) error
	// Commands returns the primary commands in registration order.
	Commands() []Command
}

type ArgumentResolver interface {
	// Resolve turns the words of a text command into typed arguments following its option schema.
	Resolve(ctx context.Context, cmd Command, message *domain.Message) (domain.Args, error)
}
