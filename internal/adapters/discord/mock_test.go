package discord

import (
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

type MockSession struct {
	mock.Mock
}

func (m *MockSession) GuildMember(guildID, userID string, _ ...discordgo.RequestOption) (*discordgo.Member, error) {
	args := m.Called(guildID, userID)
	member, _ := args.Get(0).(*discordgo.Member)
	return member, args.Error(1)
}

func (m *MockSession) GuildRoles(guildID string, _ ...discordgo.RequestOption) ([]*discordgo.Role, error) {
	args := m.Called(guildID)
	roles, _ := args.Get(0).([]*discordgo.Role)
	return roles, args.Error(1)
}

func (m *MockSession) Channel(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	args := m.Called(channelID)
	channel, _ := args.Get(0).(*discordgo.Channel)
	return channel, args.Error(1)
}

func (m *MockSession) ApplicationCommands(appID, guildID string,
	_ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	args := m.Called(appID, guildID)
	cmds, _ := args.Get(0).([]*discordgo.ApplicationCommand)
	return cmds, args.Error(1)
}

func (m *MockSession) ApplicationCommandPermissions(appID, guildID, cmdID string,
	_ ...discordgo.RequestOption) (*discordgo.GuildApplicationCommandPermissions, error) {
	args := m.Called(appID, guildID, cmdID)
	perms, _ := args.Get(0).(*discordgo.GuildApplicationCommandPermissions)
	return perms, args.Error(1)
}

func (m *MockSession) ApplicationCommandBulkOverwrite(appID string, guildID string,
	commands []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	args := m.Called(appID, guildID, commands)
	cmds, _ := args.Get(0).([]*discordgo.ApplicationCommand)
	return cmds, args.Error(1)
}

func (m *MockSession) UserChannelPermissions(userID, channelID string, _ ...discordgo.RequestOption) (int64, error) {
	args := m.Called(userID, channelID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSession) ChannelMessageSend(channelID string, content string,
	_ ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, content)
	msg, _ := args.Get(0).(*discordgo.Message)
	return msg, args.Error(1)
}

func (m *MockSession) ChannelMessageDelete(channelID, messageID string, _ ...discordgo.RequestOption) error {
	args := m.Called(channelID, messageID)
	return args.Error(0)
}

func (m *MockSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse,
	_ ...discordgo.RequestOption) error {
	args := m.Called(interaction, resp)
	return args.Error(0)
}

func fixedIdentity() (string, string) {
	return "app", "bot"
}

func restError(status int) error {
	return &discordgo.RESTError{Response: &http.Response{StatusCode: status}}
}
