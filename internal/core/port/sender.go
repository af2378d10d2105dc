package port

import (
	"context"
	"eggbot/internal/core/domain"
)

type Messenger interface {
	// Send posts text to a channel.
	Send(ctx context.Context, channelID, text string) error
	// Delete removes a message. Deleting a message that is already gone is not an error.
	Delete(ctx context.Context, channelID, messageID string) error
	// CanSend reports whether the bot may post in the channel.
	CanSend(ctx context.Context, channelID string) bool
	// Respond answers an interaction, optionally only visible to the invoker.
	Respond(ctx context.Context, interaction *domain.Interaction, text string, ephemeral bool) error
	// Suggest answers an autocomplete interaction.
	Suggest(ctx context.Context, interaction *domain.Interaction, choices []string) error
}
