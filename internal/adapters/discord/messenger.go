package discord

import (
	"context"
	"eggbot/internal/core/domain"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// MessageLimit is the maximum length of a Discord message.
const MessageLimit = 2000

type Messenger struct {
	session  Session
	platform *Platform
}

func NewMessenger(session Session, platform *Platform) *Messenger {
	return &Messenger{session: session, platform: platform}
}

// Send posts text to a channel, split into chunks of at most MessageLimit runes.
func (m *Messenger) Send(ctx context.Context, channelID, text string) error {
	for _, chunk := range chunk(text, MessageLimit) {
		_, err := m.session.ChannelMessageSend(channelID, chunk, discordgo.WithContext(ctx))
		if err != nil {
			log.Error().Err(err).Str("channelID", channelID).Msg("failed to send message")
			return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
		}
	}

	return nil
}

func (m *Messenger) Delete(ctx context.Context, channelID, messageID string) error {
	err := m.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil && !errors.Is(notFound(err), domain.ErrNotFound) {
		return fmt.Errorf("failed to delete message %s: %w", messageID, err)
	}

	return nil
}

// CanSend reports whether the channel is text based and the bot may post there.
func (m *Messenger) CanSend(ctx context.Context, channelID string) bool {
	channel, err := m.platform.Channel(ctx, channelID)
	if err != nil {
		log.Warn().Err(err).Str("channelID", channelID).Msg("failed to fetch channel")
		return false
	}

	switch channel.Kind {
	case domain.ChannelDM, domain.ChannelGroupDM:
		return true
	case domain.ChannelGuildCategory, domain.ChannelGuildForum:
		return false
	}

	perms, err := m.platform.BotPermissions(ctx, channelID)
	if err != nil {
		log.Warn().Err(err).Str("channelID", channelID).Msg("failed to fetch bot permissions")
		return false
	}

	return perms.Has(domain.PermissionViewChannel | domain.PermissionSendMessages)
}

func (m *Messenger) Respond(ctx context.Context, interaction *domain.Interaction, text string, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{Content: truncate(text, MessageLimit)}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	err := m.session.InteractionRespond(rawInteraction(interaction), &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

// maxChoices is the number of autocomplete choices Discord accepts.
const maxChoices = 25

func (m *Messenger) Suggest(ctx context.Context, interaction *domain.Interaction, choices []string) error {
	if len(choices) > maxChoices {
		choices = choices[:maxChoices]
	}

	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(choices))
	for _, c := range choices {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: c, Value: c})
	}

	err := m.session.InteractionRespond(rawInteraction(interaction), &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: out},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send autocomplete choices: %w", err)
	}

	return nil
}

func rawInteraction(interaction *domain.Interaction) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:    interaction.ID,
		AppID: interaction.AppID,
		Token: interaction.Token,
	}
}

func chunk(text string, size int) []string {
	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	var chunks []string
	for len(runes) > 0 {
		n := min(size, len(runes))
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}

	return chunks
}

func truncate(text string, size int) string {
	runes := []rune(text)
	if len(runes) <= size {
		return text
	}

	return string(runes[:size])
}
