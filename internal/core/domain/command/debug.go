package command

import (
	"context"
	"eggbot/internal/core/domain"
	"eggbot/internal/core/port"
	"fmt"
	"runtime"
	"runtime/debug"
	"runtime/metrics"

	"github.com/rs/zerolog/log"
)

type lockCounter interface {
	Len() int
}

// Debug reports runtime and dispatch statistics to bot owners.
type Debug struct {
	messenger  port.Messenger
	registry   port.CommandRegistry
	cooldowns  lockCounter
	definition *domain.Definition
}

func NewDebug(messenger port.Messenger, registry port.CommandRegistry, cooldowns lockCounter) *Debug {
	conf := domain.DefaultConf()
	conf.OwnerOnly = true
	conf.Cooldown = 0

	return &Debug{
		messenger: messenger,
		registry:  registry,
		cooldowns: cooldowns,
		definition: &domain.Definition{
			Help: domain.Help{
				Name:        "debug",
				Category:    CategoryHost,
				Aliases:     []string{"stats"},
				Description: "Show runtime statistics of the bot.",
				Usage:       "debug",
				Examples:    []string{"debug"},
			},
			Conf: conf,
		},
	}
}

func (d *Debug) Definition() *domain.Definition {
	return d.definition
}

const kb = 1024
const debugTemplate = `allocated mem: %d KB
goroutines running: %d
heap: %d KB
stack: %d KB
commands registered: %d
invokers on cooldown: %d
compiled with %s for %s-%s
`
const metricCount = 3

func (d *Debug) Run(ctx context.Context, inv *domain.Invocation) error {
	l := log.With().
		Str("invocation", inv.ID).
		Str("channelID", inv.Message.ChannelID).
		Str("command", d.definition.Help.Name).
		Logger()

	data := make([]metrics.Sample, metricCount)
	data[0] = metrics.Sample{Name: "/memory/classes/heap/objects:bytes"}
	data[1] = metrics.Sample{Name: "/memory/classes/heap/stacks:bytes"}
	data[2] = metrics.Sample{Name: "/memory/classes/total:bytes"}

	metrics.Read(data)

	for _, sample := range data {
		l.Debug().Str("name", sample.Name).Msgf("%d", sample.Value.Uint64())
	}

	l.Info().Msg("handling request")

	var goos, goarch string
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "GOOS":
				goos = setting.Value
			case "GOARCH":
				goarch = setting.Value
			}
		}
	}

	err := d.messenger.Send(ctx, inv.Message.ChannelID,
		fmt.Sprintf(
			debugTemplate,
			data[2].Value.Uint64()/kb,
			runtime.NumGoroutine(),
			data[0].Value.Uint64()/kb,
			data[1].Value.Uint64()/kb,
			len(d.registry.Commands()),
			d.cooldowns.Len(),
			runtime.Version(), goos, goarch,
		))
	if err != nil {
		return fmt.Errorf("failed to send debug info: %w", err)
	}

	return nil
}
