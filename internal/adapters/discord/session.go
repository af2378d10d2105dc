package discord

import "github.com/bwmarrin/discordgo"

//go:generate mockery --name Session

// Session is the part of *discordgo.Session the adapters use.
type Session interface {
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandPermissions(appID, guildID, cmdID string,
		options ...discordgo.RequestOption) (*discordgo.GuildApplicationCommandPermissions, error)
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand,
		options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	UserChannelPermissions(userID, channelID string, options ...discordgo.RequestOption) (int64, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse,
		options ...discordgo.RequestOption) error
}

// Identity returns the application and bot user ids of a connected session.
type Identity func() (appID, botID string)

// SessionIdentity reads the ids from the session state filled by the READY event.
func SessionIdentity(s *discordgo.Session) Identity {
	return func() (string, string) {
		var appID, botID string
		if s.State != nil && s.State.User != nil {
			botID = s.State.User.ID
		}
		if s.State != nil && s.State.Application != nil {
			appID = s.State.Application.ID
		}
		if appID == "" {
			appID = botID
		}

		return appID, botID
	}
}
