package command

import (
	"context"
	"eggbot/internal/core/domain"
	"eggbot/internal/core/port"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// TagStore keeps per-guild text snippets in memory.
type TagStore struct {
	mu   sync.RWMutex
	tags map[string]map[string]string
}

func NewTagStore() *TagStore {
	return &TagStore{tags: make(map[string]map[string]string)}
}

func (s *TagStore) Set(guildID, name, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tags[guildID] == nil {
		s.tags[guildID] = make(map[string]string)
	}
	s.tags[guildID][strings.ToLower(name)] = text
}

func (s *TagStore) Names(guildID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.tags[guildID]))
	for name := range s.tags[guildID] {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Tag is a parent command whose sub-commands are registered as "tag-<name>".
type Tag struct {
	messenger  port.Messenger
	registry   port.CommandRegistry
	resolver   port.ArgumentResolver
	definition *domain.Definition
}

// NewTag builds the parent command from the tag sub-commands already present
// in registry, so they must be added first.
func NewTag(messenger port.Messenger, registry port.CommandRegistry, resolver port.ArgumentResolver,
	subCommands []port.Command) *Tag {
	conf := withSlash(domain.DefaultConf())
	conf.GuildOnly = true

	for _, sub := range subCommands {
		help := sub.Definition().Help
		conf.Options = append(conf.Options, domain.Option{
			Name:        strings.TrimPrefix(help.Name, "tag-"),
			Description: help.Description,
			Kind:        domain.OptionSubcommand,
			Options:     sub.Definition().Conf.Options,
		})
	}

	return &Tag{
		messenger: messenger,
		registry:  registry,
		resolver:  resolver,
		definition: &domain.Definition{
			Help: domain.Help{
				Name:        "tag",
				Category:    CategoryGuild,
				Description: "Manage the text tags of this server.",
				Usage:       "tag [list | add] <information>",
				Examples:    []string{"tag list", "tag add rules Be nice."},
			},
			Conf: conf,
		},
	}
}

func (t *Tag) Definition() *domain.Definition {
	return t.definition
}

func (t *Tag) Run(ctx context.Context, inv *domain.Invocation) error {
	args, err := t.resolver.Resolve(ctx, t, inv.Message)
	if err != nil {
		return err
	}

	cmd, err := t.registry.Get(domain.SubCommandName(t.definition.Help.Name, args.SubCommand()))
	if err != nil {
		return fmt.Errorf("failed to find tag sub command: %w", err)
	}

	runner, ok := cmd.(port.MessageRunner)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotImplemented, cmd.Definition().Help.Name)
	}

	return runner.Run(ctx, inv)
}

func (t *Tag) Callback(ctx context.Context, interaction *domain.Interaction) error {
	cmd, err := t.registry.Get(domain.SubCommandName(t.definition.Help.Name, interaction.SubCommand))
	if err != nil {
		return fmt.Errorf("failed to find tag sub command: %w", err)
	}

	handler, ok := cmd.(port.InteractionHandler)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotImplemented, cmd.Definition().Help.Name)
	}

	return handler.Callback(ctx, interaction)
}

type TagList struct {
	messenger  port.Messenger
	store      *TagStore
	definition *domain.Definition
}

func NewTagList(messenger port.Messenger, store *TagStore) *TagList {
	conf := domain.DefaultConf()
	conf.GuildOnly = true
	conf.IsSubCommand = true

	return &TagList{
		messenger: messenger,
		store:     store,
		definition: &domain.Definition{
			Help: domain.Help{
				Name:        "tag-list",
				Category:    CategoryGuild,
				Description: "List the tags of this server.",
				Usage:       "tag list",
			},
			Conf: conf,
		},
	}
}

func (t *TagList) Definition() *domain.Definition {
	return t.definition
}

func (t *TagList) Run(ctx context.Context, inv *domain.Invocation) error {
	return t.messenger.Send(ctx, inv.Message.ChannelID, t.list(inv.Message.GuildID))
}

func (t *TagList) Callback(ctx context.Context, interaction *domain.Interaction) error {
	return t.messenger.Respond(ctx, interaction, t.list(interaction.GuildID), false)
}

func (t *TagList) list(guildID string) string {
	names := t.store.Names(guildID)
	if len(names) == 0 {
		return "This server has no tags yet."
	}

	return "Tags: " + strings.Join(names, ", ")
}

type TagAdd struct {
	messenger  port.Messenger
	store      *TagStore
	resolver   port.ArgumentResolver
	definition *domain.Definition
}

func NewTagAdd(messenger port.Messenger, store *TagStore, resolver port.ArgumentResolver) *TagAdd {
	conf := domain.DefaultConf()
	conf.GuildOnly = true
	conf.IsSubCommand = true
	conf.UserPermissions = domain.PermissionManageMessages
	conf.Options = []domain.Option{
		{Name: "text", Description: "Tag name followed by its content", Kind: domain.OptionString, Required: true},
	}

	return &TagAdd{
		messenger: messenger,
		store:     store,
		resolver:  resolver,
		definition: &domain.Definition{
			Help: domain.Help{
				Name:        "tag-add",
				Category:    CategoryGuild,
				Description: "Add or replace a tag.",
				Usage:       "tag add <name> <content>",
				Examples:    []string{"tag add rules Be nice."},
			},
			Conf: conf,
		},
	}
}

func (t *TagAdd) Definition() *domain.Definition {
	return t.definition
}

func (t *TagAdd) Run(ctx context.Context, inv *domain.Invocation) error {
	args, err := t.resolver.Resolve(ctx, t, inv.Message)
	if err != nil {
		return err
	}

	text, err := t.add(inv.Message.GuildID, args.Strings("text"))
	if err != nil {
		return err
	}

	return t.messenger.Send(ctx, inv.Message.ChannelID, text)
}

func (t *TagAdd) Callback(ctx context.Context, interaction *domain.Interaction) error {
	text, err := t.add(interaction.GuildID, interaction.Args.Strings("text"))
	if err != nil {
		return err
	}

	return t.messenger.Respond(ctx, interaction, text, true)
}

func (t *TagAdd) add(guildID string, words []string) (string, error) {
	if len(words) < 2 {
		return "", &domain.ValidationError{Option: "text", Reason: "needs a tag name and its content"}
	}

	t.store.Set(guildID, words[0], strings.Join(words[1:], " "))

	return fmt.Sprintf("Tag `%s` saved.", strings.ToLower(words[0])), nil
}
