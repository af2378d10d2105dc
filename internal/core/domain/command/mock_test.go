package command

import (
	"context"
	"eggbot/internal/core/domain"
	"eggbot/internal/core/port"

	"github.com/stretchr/testify/mock"
)

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

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, cmd port.Command, message *domain.Message) (domain.Args, error) {
	args := m.Called(ctx, cmd, message)
	resolved, _ := args.Get(0).(domain.Args)
	return resolved, args.Error(1)
}

type stubCommand struct {
	definition *domain.Definition
}

func (s *stubCommand) Definition() *domain.Definition {
	return s.definition
}

func newStub(name string, aliases ...string) *stubCommand {
	return &stubCommand{definition: &domain.Definition{
		Help: domain.Help{Name: name, Aliases: aliases},
		Conf: domain.DefaultConf(),
	}}
}

func newSubStub(name string) *stubCommand {
	stub := newStub(name)
	stub.definition.Conf.IsSubCommand = true
	return stub
}

func invocation(content string) *domain.Invocation {
	return &domain.Invocation{
		ID: "inv",
		Message: &domain.Message{
			ID:        "1",
			Content:   content,
			Author:    domain.Invoker{ID: "200"},
			ChannelID: "100",
			GuildID:   "300",
		},
		Settings: domain.Settings{Prefix: "!", Language: "en-US"},
	}
}
