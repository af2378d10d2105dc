package port

import (
	"context"
	"eggbot/internal/core/domain"
)

// Platform is the entity store of the chat platform. Lookups of entities that
// do not exist return domain.ErrNotFound.
type Platform interface {
	Member(ctx context.Context, guildID, userID string) (*domain.Member, error)
	Role(ctx context.Context, guildID, roleID string) (*domain.Role, error)
	Channel(ctx context.Context, channelID string) (*domain.Channel, error)
	// NativeCommand returns the guild's native registration with the given name.
	NativeCommand(ctx context.Context, guildID, name string) (*domain.NativeCommand, error)
	// CommandPermissions returns the overwrites of a native command, in platform order.
	CommandPermissions(ctx context.Context, guildID, commandID string) ([]domain.Overwrite, error)
	// MemberPermissions returns the effective permissions of a user in a channel.
	MemberPermissions(ctx context.Context, channelID, userID string) (domain.Permission, error)
	// BotPermissions returns the effective permissions of the bot in a channel.
	BotPermissions(ctx context.Context, channelID string) (domain.Permission, error)
}

type SettingsProvider interface {
	Settings(ctx context.Context, guildID string) domain.Settings
}

type Translator interface {
	// Translate renders key in the given language, replacing {{NAME}} placeholders from subs.
	Translate(language, key string, subs map[string]string) string
}
