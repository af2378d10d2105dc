package handler

import (
	"context"
	"eggbot/internal/adapters/discord"
	"eggbot/internal/core/domain"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type Dispatcher interface {
	Verify(ctx context.Context, message *domain.Message) (bool, error)
	Interact(ctx context.Context, interaction *domain.Interaction) error
}

type Registrar interface {
	Sync(ctx context.Context, guildID string) error
}

type Permissions interface {
	BotPermissions(ctx context.Context, channelID string) (domain.Permission, error)
}

// Command turns gateway events into dispatcher calls.
type Command struct {
	dispatcher  Dispatcher
	registrar   Registrar
	permissions Permissions
	premium     []string
	timeout     time.Duration
}

type CommandParams struct {
	Dispatcher  Dispatcher
	Registrar   Registrar
	Permissions Permissions
	Premium     []string
	Timeout     time.Duration
}

func NewCommand(p CommandParams) *Command {
	return &Command{
		dispatcher:  p.Dispatcher,
		registrar:   p.Registrar,
		permissions: p.Permissions,
		premium:     p.Premium,
		timeout:     p.Timeout,
	}
}

// HandleMessage is registered for MESSAGE_CREATE events.
func (c *Command) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	botID := ""
	if s != nil && s.State != nil && s.State.User != nil {
		botID = s.State.User.ID
	}

	c.handleMessage(m.Message, botID)
}

func (c *Command) handleMessage(m *discordgo.Message, botID string) {
	if m == nil || m.Author == nil || m.Author.Bot || m.Author.ID == botID {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	log.Debug().Str("message", m.Content).Str("channelID", m.ChannelID).Msg("received message")

	message := discord.ToMessage(m, c.premium, c.deletable(ctx, m))

	handled, err := c.dispatcher.Verify(ctx, message)
	if err != nil {
		log.Err(err).Str("messageID", m.ID).Msg("failed to dispatch message")
		return
	}

	log.Debug().Str("messageID", m.ID).Bool("handled", handled).Msg("message dispatched")
}

// deletable reports whether the bot can remove the message, which needs
// Manage Messages in a guild channel.
func (c *Command) deletable(ctx context.Context, m *discordgo.Message) bool {
	if m.GuildID == "" {
		return false
	}

	perms, err := c.permissions.BotPermissions(ctx, m.ChannelID)
	if err != nil {
		log.Debug().Err(err).Str("channelID", m.ChannelID).Msg("failed to fetch bot permissions")
		return false
	}

	return perms.Has(domain.PermissionManageMessages)
}

// HandleInteraction is registered for INTERACTION_CREATE events.
func (c *Command) HandleInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	c.handleInteraction(i.Interaction)
}

func (c *Command) handleInteraction(i *discordgo.Interaction) {
	if i == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	interaction := discord.ToInteraction(i, c.premium)
	if interaction.Name == "" {
		log.Debug().Str("interaction", i.ID).Msg("ignoring non command interaction")
		return
	}

	if err := c.dispatcher.Interact(ctx, interaction); err != nil {
		log.Err(err).Str("interaction", i.ID).Str("command", interaction.Name).Msg("failed to dispatch interaction")
	}
}

// HandleGuildCreate publishes native commands whenever a guild becomes available.
func (c *Command) HandleGuildCreate(_ *discordgo.Session, g *discordgo.GuildCreate) {
	if g.Guild == nil || g.Unavailable {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.registrar.Sync(ctx, g.ID); err != nil {
		log.Err(err).Str("guildID", g.ID).Msg("failed to sync native commands")
	}
}
