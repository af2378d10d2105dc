package command

import (
	"context"
	"eggbot/internal/core/domain"
	"eggbot/internal/core/port"
	"errors"
	"fmt"
	"slices"
	"strings"
)

type Help struct {
	messenger  port.Messenger
	registry   port.CommandRegistry
	resolver   port.ArgumentResolver
	definition *domain.Definition
}

func NewHelp(messenger port.Messenger, registry port.CommandRegistry, resolver port.ArgumentResolver) *Help {
	conf := withSlash(domain.DefaultConf())
	conf.Options = []domain.Option{
		{Name: "command", Description: "The command to show help for", Kind: domain.OptionString},
	}

	return &Help{
		messenger: messenger,
		registry:  registry,
		resolver:  resolver,
		definition: &domain.Definition{
			Help: domain.Help{
				Name:        "help",
				Category:    CategoryGeneral,
				Aliases:     []string{"commands"},
				Description: "List the commands or show how to use one of them.",
				Usage:       "help [command]",
				Examples:    []string{"help", "help ping"},
			},
			Conf: conf,
		},
	}
}

func (h *Help) Definition() *domain.Definition {
	return h.definition
}

func (h *Help) Run(ctx context.Context, inv *domain.Invocation) error {
	args, err := h.resolver.Resolve(ctx, h, inv.Message)
	if err != nil {
		return err
	}

	var text string
	if names := args.Strings("command"); len(names) > 0 {
		text, err = h.describe(names[0], inv.Settings.Prefix)
		if err != nil {
			return err
		}
	} else {
		text = h.overview(inv.Settings.Prefix)
	}

	return h.messenger.Send(ctx, inv.Message.ChannelID, text)
}

func (h *Help) Callback(ctx context.Context, interaction *domain.Interaction) error {
	var text string
	if names := interaction.Args.Strings("command"); len(names) > 0 {
		var err error
		text, err = h.describe(names[0], "/")
		if err != nil {
			return err
		}
	} else {
		text = h.overview("/")
	}

	return h.messenger.Respond(ctx, interaction, text, true)
}

func (h *Help) Autocomplete(_ context.Context, interaction *domain.Interaction) ([]string, error) {
	typed := strings.ToLower(interaction.Focused)

	var choices []string
	for _, cmd := range h.registry.Commands() {
		if strings.HasPrefix(cmd.Definition().Help.Name, typed) {
			choices = append(choices, cmd.Definition().Help.Name)
		}
	}

	return choices, nil
}

func (h *Help) overview(prefix string) string {
	byCategory := map[string][]string{}
	var categories []string

	for _, cmd := range h.registry.Commands() {
		def := cmd.Definition()
		if _, ok := byCategory[def.Help.Category]; !ok {
			categories = append(categories, def.Help.Category)
		}
		byCategory[def.Help.Category] = append(byCategory[def.Help.Category], "`"+def.Help.Name+"`")
	}

	slices.Sort(categories)

	sb := &strings.Builder{}
	for _, category := range categories {
		fmt.Fprintf(sb, "**%s**: %s\n", category, strings.Join(byCategory[category], ", "))
	}
	fmt.Fprintf(sb, "\nUse `%shelp <command>` for details.", prefix)

	return sb.String()
}

func (h *Help) describe(name, prefix string) (string, error) {
	cmd, err := h.registry.Get(name)
	if errors.Is(err, domain.ErrCommandNotFound) {
		return "", &domain.ValidationError{Token: name, Reason: "is not a command"}
	}
	if err != nil {
		return "", err
	}

	help := cmd.Definition().Help

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "**%s** (%s)\n%s\n", help.Name, help.Category, help.Description)
	fmt.Fprintf(sb, "Usage: `%s%s`\n", prefix, help.Usage)
	if len(help.Aliases) > 0 {
		fmt.Fprintf(sb, "Aliases: %s\n", strings.Join(help.Aliases, ", "))
	}
	for _, example := range help.Examples {
		fmt.Fprintf(sb, "Example: `%s%s`\n", prefix, example)
	}

	return sb.String(), nil
}
