package command

import (
	"context"
	"eggbot/internal/core/domain"
	"eggbot/internal/core/port"
	"fmt"
	"time"
)

type Ping struct {
	messenger  port.Messenger
	definition *domain.Definition
}

func NewPing(messenger port.Messenger) *Ping {
	return &Ping{
		messenger: messenger,
		definition: &domain.Definition{
			Help: domain.Help{
				Name:        "ping",
				Category:    CategoryGeneral,
				Aliases:     []string{"latency"},
				Description: "Check that the bot is responding.",
				Usage:       "ping",
				Examples:    []string{"ping"},
			},
			Conf: withSlash(domain.DefaultConf()),
		},
	}
}

func (p *Ping) Definition() *domain.Definition {
	return p.definition
}

func (p *Ping) Run(ctx context.Context, inv *domain.Invocation) error {
	start := time.Now()

	err := p.messenger.Send(ctx, inv.Message.ChannelID, "Pong!")
	if err != nil {
		return fmt.Errorf("failed to send pong: %w", err)
	}

	return p.messenger.Send(ctx, inv.Message.ChannelID,
		fmt.Sprintf("Round trip took %s.", time.Since(start).Truncate(time.Millisecond)))
}

func (p *Ping) Callback(ctx context.Context, interaction *domain.Interaction) error {
	return p.messenger.Respond(ctx, interaction, "Pong!", false)
}

func withSlash(conf domain.Conf) domain.Conf {
	conf.Slash = true
	return conf
}
