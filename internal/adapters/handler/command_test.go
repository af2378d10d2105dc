package handler

import (
	"context"
	"eggbot/internal/core/domain"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Verify(ctx context.Context, message *domain.Message) (bool, error) {
	args := m.Called(ctx, message)
	return args.Bool(0), args.Error(1)
}

func (m *MockDispatcher) Interact(ctx context.Context, interaction *domain.Interaction) error {
	args := m.Called(ctx, interaction)
	return args.Error(0)
}

type MockRegistrar struct {
	mock.Mock
}

func (m *MockRegistrar) Sync(ctx context.Context, guildID string) error {
	args := m.Called(ctx, guildID)
	return args.Error(0)
}

type MockPermissions struct {
	mock.Mock
}

func (m *MockPermissions) BotPermissions(ctx context.Context, channelID string) (domain.Permission, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(domain.Permission), args.Error(1)
}

func newTestCommand(d *MockDispatcher, r *MockRegistrar, p *MockPermissions) *Command {
	return NewCommand(CommandParams{
		Dispatcher:  d,
		Registrar:   r,
		Permissions: p,
		Premium:     []string{"vip"},
		Timeout:     time.Second,
	})
}

func makeMessage(authorID, guildID string, bot bool) *discordgo.Message {
	return &discordgo.Message{
		ID:        "1",
		Content:   "!ping",
		ChannelID: "100",
		GuildID:   guildID,
		Author:    &discordgo.User{ID: authorID, Username: "bob", Bot: bot},
	}
}

func TestCommand_HandleMessage(t *testing.T) {
	type testcase struct {
		name       string
		message    *discordgo.Message
		mockSetup  func(d *MockDispatcher, p *MockPermissions)
		wantCalled bool
		wantMsg    *domain.Message
	}

	tests := []testcase{
		{
			name:       "no author",
			message:    &discordgo.Message{ID: "1", Content: "!ping"},
			mockSetup:  func(_ *MockDispatcher, _ *MockPermissions) {},
			wantCalled: false,
		},
		{
			name:       "bot author",
			message:    makeMessage("200", "300", true),
			mockSetup:  func(_ *MockDispatcher, _ *MockPermissions) {},
			wantCalled: false,
		},
		{
			name:       "own message",
			message:    makeMessage("self", "300", false),
			mockSetup:  func(_ *MockDispatcher, _ *MockPermissions) {},
			wantCalled: false,
		},
		{
			name:    "guild message deletable",
			message: makeMessage("vip", "300", false),
			mockSetup: func(d *MockDispatcher, p *MockPermissions) {
				p.On("BotPermissions", mock.Anything, "100").
					Return(domain.PermissionManageMessages|domain.PermissionSendMessages, nil)
				d.On("Verify", mock.Anything, mock.Anything).Return(true, nil)
			},
			wantCalled: true,
			wantMsg: &domain.Message{
				ID: "1", Content: "!ping", ChannelID: "100", GuildID: "300", Deletable: true,
				Author: domain.Invoker{ID: "vip", Username: "bob", Premium: true},
			},
		},
		{
			name:    "guild message permission fetch fails",
			message: makeMessage("200", "300", false),
			mockSetup: func(d *MockDispatcher, p *MockPermissions) {
				p.On("BotPermissions", mock.Anything, "100").Return(domain.Permission(0), errors.New("boom"))
				d.On("Verify", mock.Anything, mock.Anything).Return(false, errors.New("gateway down"))
			},
			wantCalled: true,
			wantMsg: &domain.Message{
				ID: "1", Content: "!ping", ChannelID: "100", GuildID: "300",
				Author: domain.Invoker{ID: "200", Username: "bob"},
			},
		},
		{
			name:    "direct message",
			message: makeMessage("200", "", false),
			mockSetup: func(d *MockDispatcher, _ *MockPermissions) {
				d.On("Verify", mock.Anything, mock.Anything).Return(false, nil)
			},
			wantCalled: true,
			wantMsg: &domain.Message{
				ID: "1", Content: "!ping", ChannelID: "100",
				Author: domain.Invoker{ID: "200", Username: "bob"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := new(MockDispatcher)
			p := new(MockPermissions)
			tc.mockSetup(d, p)

			c := newTestCommand(d, new(MockRegistrar), p)
			c.handleMessage(tc.message, "self")

			if tc.wantCalled {
				d.AssertCalled(t, "Verify", mock.Anything, tc.wantMsg)
			} else {
				d.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestCommand_HandleInteraction(t *testing.T) {
	d := new(MockDispatcher)
	c := newTestCommand(d, new(MockRegistrar), new(MockPermissions))

	d.On("Interact", mock.Anything, mock.MatchedBy(func(i *domain.Interaction) bool {
		return i.Name == "ping" && i.Invoker.ID == "200" && i.Kind == domain.InteractionCommand
	})).Return(nil)

	c.handleInteraction(&discordgo.Interaction{
		ID:   "i1",
		Type: discordgo.InteractionApplicationCommand,
		User: &discordgo.User{ID: "200"},
		Data: discordgo.ApplicationCommandInteractionData{Name: "ping", CommandType: discordgo.ChatApplicationCommand},
	})
	c.handleInteraction(&discordgo.Interaction{
		ID:   "i2",
		Type: discordgo.InteractionMessageComponent,
		User: &discordgo.User{ID: "200"},
	})
	c.handleInteraction(nil)

	d.AssertNumberOfCalls(t, "Interact", 1)
}

func TestCommand_HandleGuildCreate(t *testing.T) {
	r := new(MockRegistrar)
	c := newTestCommand(new(MockDispatcher), r, new(MockPermissions))

	r.On("Sync", mock.Anything, "300").Return(nil).Once()

	c.HandleGuildCreate(nil, &discordgo.GuildCreate{Guild: &discordgo.Guild{ID: "300"}})
	c.HandleGuildCreate(nil, &discordgo.GuildCreate{Guild: &discordgo.Guild{ID: "301", Unavailable: true}})

	r.AssertExpectations(t)
	assert.Len(t, r.Calls, 1)
}
