package discord

import (
	"eggbot/internal/core/domain"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func toMember(m *discordgo.Member) *domain.Member {
	member := &domain.Member{Nick: m.Nick, Roles: m.Roles}
	if m.User != nil {
		member.ID = m.User.ID
		member.Username = m.User.Username
	}

	return member
}

func toChannel(c *discordgo.Channel) *domain.Channel {
	return &domain.Channel{
		ID:   c.ID,
		Name: c.Name,
		Kind: domain.ChannelKind(c.Type),
		NSFW: c.NSFW,
	}
}

func toInvoker(u *discordgo.User, premium []string) domain.Invoker {
	if u == nil {
		return domain.Invoker{}
	}

	return domain.Invoker{
		ID:       u.ID,
		Username: u.Username,
		Bot:      u.Bot,
		Premium:  slices.Contains(premium, u.ID),
	}
}

func ToMessage(m *discordgo.Message, premium []string, deletable bool) *domain.Message {
	return &domain.Message{
		ID:        m.ID,
		Content:   m.Content,
		Author:    toInvoker(m.Author, premium),
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		Deletable: deletable,
	}
}

func ToInteraction(i *discordgo.Interaction, premium []string) *domain.Interaction {
	user := i.User
	if i.Member != nil && i.Member.User != nil {
		user = i.Member.User
	}

	interaction := &domain.Interaction{
		ID:        i.ID,
		AppID:     i.AppID,
		Token:     i.Token,
		Invoker:   toInvoker(user, premium),
		ChannelID: i.ChannelID,
		GuildID:   i.GuildID,
		Args:      domain.Args{},
	}

	if i.Member != nil {
		interaction.Permissions = domain.Permission(i.Member.Permissions)
	}

	if i.Type != discordgo.InteractionApplicationCommand && i.Type != discordgo.InteractionApplicationCommandAutocomplete {
		return interaction
	}

	data := i.ApplicationCommandData()
	interaction.Name = data.Name
	interaction.TargetID = data.TargetID

	switch {
	case i.Type == discordgo.InteractionApplicationCommandAutocomplete:
		interaction.Kind = domain.InteractionAutocomplete
	case data.CommandType == discordgo.UserApplicationCommand || data.CommandType == discordgo.MessageApplicationCommand:
		interaction.Kind = domain.InteractionContextMenu
	default:
		interaction.Kind = domain.InteractionCommand
	}

	collectOptions(interaction, data.Options, data.Resolved)

	return interaction
}

// collectOptions flattens pre-typed interaction options into Args, following
// the selected sub-command.
func collectOptions(interaction *domain.Interaction, options []*discordgo.ApplicationCommandInteractionDataOption,
	resolved *discordgo.ApplicationCommandInteractionDataResolved) {
	for _, opt := range options {
		if opt.Focused {
			interaction.Focused, _ = opt.Value.(string)
		}

		switch opt.Type {
		case discordgo.ApplicationCommandOptionSubCommand:
			interaction.SubCommand = opt.Name
			interaction.Args[domain.SubCommandKey] = opt.Name
			collectOptions(interaction, opt.Options, resolved)
		case discordgo.ApplicationCommandOptionString:
			s, _ := opt.Value.(string)
			interaction.Args[opt.Name] = strings.Fields(s)
		case discordgo.ApplicationCommandOptionInteger:
			f, _ := opt.Value.(float64)
			interaction.Args[opt.Name] = int64(f)
		case discordgo.ApplicationCommandOptionNumber:
			f, _ := opt.Value.(float64)
			interaction.Args[opt.Name] = f
		case discordgo.ApplicationCommandOptionBoolean:
			b, _ := opt.Value.(bool)
			interaction.Args[opt.Name] = b
		case discordgo.ApplicationCommandOptionUser:
			id, _ := opt.Value.(string)
			interaction.Args[opt.Name] = resolvedMember(id, resolved)
		case discordgo.ApplicationCommandOptionRole:
			id, _ := opt.Value.(string)
			role := &domain.Role{ID: id}
			if resolved != nil && resolved.Roles[id] != nil {
				role.Name = resolved.Roles[id].Name
			}
			interaction.Args[opt.Name] = role
		case discordgo.ApplicationCommandOptionChannel:
			id, _ := opt.Value.(string)
			channel := &domain.Channel{ID: id}
			if resolved != nil && resolved.Channels[id] != nil {
				channel = toChannel(resolved.Channels[id])
			}
			interaction.Args[opt.Name] = channel
		}
	}
}

func resolvedMember(id string, resolved *discordgo.ApplicationCommandInteractionDataResolved) *domain.Member {
	member := &domain.Member{ID: id}
	if resolved == nil {
		return member
	}

	if m := resolved.Members[id]; m != nil {
		member.Nick = m.Nick
		member.Roles = m.Roles
	}
	if u := resolved.Users[id]; u != nil {
		member.Username = u.Username
	}

	return member
}

// toApplicationCommand converts a slash-enabled definition into its native
// registration.
func toApplicationCommand(def *domain.Definition) *discordgo.ApplicationCommand {
	cmd := &discordgo.ApplicationCommand{
		Name:        def.Help.Name,
		Description: description(def.Help.Description),
		Options:     toApplicationOptions(def.Conf.Options),
	}

	if def.Conf.UserPermissions != 0 {
		perms := int64(def.Conf.UserPermissions)
		cmd.DefaultMemberPermissions = &perms
	}
	if def.Conf.GuildOnly {
		dm := false
		cmd.DMPermission = &dm
	}
	if def.Conf.NSFW {
		nsfw := true
		cmd.NSFW = &nsfw
	}

	return cmd
}

func toApplicationOptions(options []domain.Option) []*discordgo.ApplicationCommandOption {
	if len(options) == 0 {
		return nil
	}

	out := make([]*discordgo.ApplicationCommandOption, 0, len(options))
	for _, o := range options {
		opt := &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionType(o.Kind),
			Name:        o.Name,
			Description: description(o.Description),
			Required:    o.Required,
			MinValue:    o.MinValue,
			Options:     toApplicationOptions(o.Options),
		}
		if o.MaxValue != nil {
			opt.MaxValue = *o.MaxValue
		}
		for _, kind := range o.ChannelKinds {
			opt.ChannelTypes = append(opt.ChannelTypes, discordgo.ChannelType(kind))
		}
		out = append(out, opt)
	}

	return out
}

func description(s string) string {
	if s == "" {
		return "No description."
	}

	return s
}
