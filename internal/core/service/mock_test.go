package service

import (
	"context"
	"eggbot/internal/core/domain"
	"eggbot/internal/core/port"
	"strings"

	"github.com/stretchr/testify/mock"
)

type MockPlatform struct {
	mock.Mock
}

func (m *MockPlatform) Member(ctx context.Context, guildID, userID string) (*domain.Member, error) {
	args := m.Called(ctx, guildID, userID)
	member, _ := args.Get(0).(*domain.Member)
	return member, args.Error(1)
}

func (m *MockPlatform) Role(ctx context.Context, guildID, roleID string) (*domain.Role, error) {
	args := m.Called(ctx, guildID, roleID)
	role, _ := args.Get(0).(*domain.Role)
	return role, args.Error(1)
}

func (m *MockPlatform) Channel(ctx context.Context, channelID string) (*domain.Channel, error) {
	args := m.Called(ctx, channelID)
	channel, _ := args.Get(0).(*domain.Channel)
	return channel, args.Error(1)
}

func (m *MockPlatform) NativeCommand(ctx context.Context, guildID, name string) (*domain.NativeCommand, error) {
	args := m.Called(ctx, guildID, name)
	native, _ := args.Get(0).(*domain.NativeCommand)
	return native, args.Error(1)
}

func (m *MockPlatform) CommandPermissions(ctx context.Context, guildID, commandID string) ([]domain.Overwrite, error) {
	args := m.Called(ctx, guildID, commandID)
	overwrites, _ := args.Get(0).([]domain.Overwrite)
	return overwrites, args.Error(1)
}

func (m *MockPlatform) MemberPermissions(ctx context.Context, channelID, userID string) (domain.Permission, error) {
	args := m.Called(ctx, channelID, userID)
	return args.Get(0).(domain.Permission), args.Error(1)
}

func (m *MockPlatform) BotPermissions(ctx context.Context, channelID string) (domain.Permission, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(domain.Permission), args.Error(1)
}

type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) Send(ctx context.Context, channelID, text string) error {
	args := m.Called(ctx, channelID, text)
	return args.Error(0)
}

func (m *MockMessenger) Delete(ctx context.Context, channelID, messageID string) error {
	args := m.Called(ctx, channelID, messageID)
	return args.Error(0)
}

func (m *MockMessenger) CanSend(ctx context.Context, channelID string) bool {
	args := m.Called(ctx, channelID)
	return args.Bool(0)
}

func (m *MockMessenger) Respond(ctx context.Context, interaction *domain.Interaction, text string, ephemeral bool) error {
	args := m.Called(ctx, interaction, text, ephemeral)
	return args.Error(0)
}

func (m *MockMessenger) Suggest(ctx context.Context, interaction *domain.Interaction, choices []string) error {
	args := m.Called(ctx, interaction, choices)
	return args.Error(0)
}

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) Evaluate(ctx context.Context, cmd port.Command, message *domain.Message) (domain.Verdict, error) {
	args := m.Called(ctx, cmd, message)
	return args.Get(0).(domain.Verdict), args.Error(1)
}

func (m *MockAuthorizer) EvaluateInteraction(ctx context.Context, cmd port.Command,
	interaction *domain.Interaction) (domain.Verdict, error) {
	args := m.Called(ctx, cmd, interaction)
	return args.Get(0).(domain.Verdict), args.Error(1)
}

type staticSettings struct {
	settings domain.Settings
}

func (s staticSettings) Settings(_ context.Context, _ string) domain.Settings {
	return s.settings
}

// keyTranslator echoes the key followed by its substitutions.
type keyTranslator struct{}

func (keyTranslator) Translate(_, key string, subs map[string]string) string {
	if len(subs) == 0 {
		return key
	}

	parts := []string{key}
	for _, name := range []string{"ERROR", "PERMISSIONS"} {
		if v, ok := subs[name]; ok {
			parts = append(parts, name+"="+v)
		}
	}

	return strings.Join(parts, " ")
}

type stubCommand struct {
	definition *domain.Definition
	run        func(ctx context.Context, inv *domain.Invocation) error
}

func (s *stubCommand) Definition() *domain.Definition {
	return s.definition
}

func (s *stubCommand) Run(ctx context.Context, inv *domain.Invocation) error {
	return s.run(ctx, inv)
}

// bareCommand implements no capability besides its definition.
type bareCommand struct {
	definition *domain.Definition
}

func (b *bareCommand) Definition() *domain.Definition {
	return b.definition
}

func definition(name string, conf domain.Conf) *domain.Definition {
	return &domain.Definition{Help: domain.Help{Name: name}, Conf: conf}
}

func guildMessage(content string) *domain.Message {
	return &domain.Message{
		ID:        "1",
		Content:   content,
		Author:    domain.Invoker{ID: "200", Username: "bob"},
		ChannelID: "100",
		GuildID:   "300",
	}
}
