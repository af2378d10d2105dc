package command

import (
	"context"
	"eggbot/internal/core/domain"
	"eggbot/internal/core/port"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

type Roll struct {
	messenger  port.Messenger
	resolver   port.ArgumentResolver
	definition *domain.Definition
	// intn is swapped in tests.
	intn func(n int) int
}

const defaultSides = 6

func NewRoll(messenger port.Messenger, resolver port.ArgumentResolver) *Roll {
	conf := withSlash(domain.DefaultConf())
	conf.Options = []domain.Option{
		{Name: "sides", Description: "Sides of each die", Kind: domain.OptionInteger,
			MinValue: domain.Bound(2), MaxValue: domain.Bound(1000)},
		{Name: "count", Description: "Number of dice", Kind: domain.OptionInteger,
			MinValue: domain.Bound(1), MaxValue: domain.Bound(20)},
	}

	return &Roll{
		messenger: messenger,
		resolver:  resolver,
		intn:      rand.IntN,
		definition: &domain.Definition{
			Help: domain.Help{
				Name:        "roll",
				Category:    CategoryFun,
				Aliases:     []string{"dice"},
				Description: "Roll one or more dice.",
				Usage:       "roll [sides] [count]",
				Examples:    []string{"roll", "roll 20", "roll 6 3"},
			},
			Conf: conf,
		},
	}
}

func (r *Roll) Definition() *domain.Definition {
	return r.definition
}

func (r *Roll) Run(ctx context.Context, inv *domain.Invocation) error {
	args, err := r.resolver.Resolve(ctx, r, inv.Message)
	if err != nil {
		return err
	}

	return r.messenger.Send(ctx, inv.Message.ChannelID, r.roll(args))
}

func (r *Roll) Callback(ctx context.Context, interaction *domain.Interaction) error {
	return r.messenger.Respond(ctx, interaction, r.roll(interaction.Args), false)
}

func (r *Roll) roll(args domain.Args) string {
	sides, ok := args.Int("sides")
	if !ok {
		sides = defaultSides
	}
	count, ok := args.Int("count")
	if !ok {
		count = 1
	}

	results := make([]string, 0, count)
	var total int64
	for range count {
		v := int64(r.intn(int(sides))) + 1
		total += v
		results = append(results, strconv.FormatInt(v, 10))
	}

	if count == 1 {
		return fmt.Sprintf("🎲 %d", total)
	}

	return fmt.Sprintf("🎲 %s (total %d)", strings.Join(results, " + "), total)
}
