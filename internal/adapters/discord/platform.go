package discord

import (
	"context"
	"eggbot/internal/core/domain"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// Platform implements the entity store over the Discord REST API.
type Platform struct {
	session  Session
	identity Identity
}

func NewPlatform(session Session, identity Identity) *Platform {
	return &Platform{session: session, identity: identity}
}

// notFound maps Discord 404 responses to domain.ErrNotFound.
func notFound(err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}

	return err
}

func (p *Platform) Member(ctx context.Context, guildID, userID string) (*domain.Member, error) {
	m, err := p.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, notFound(err)
	}

	return toMember(m), nil
}

func (p *Platform) Role(ctx context.Context, guildID, roleID string) (*domain.Role, error) {
	roles, err := p.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, notFound(err)
	}

	for _, r := range roles {
		if r.ID == roleID {
			return &domain.Role{ID: r.ID, Name: r.Name}, nil
		}
	}

	return nil, fmt.Errorf("%w: role %s", domain.ErrNotFound, roleID)
}

func (p *Platform) Channel(ctx context.Context, channelID string) (*domain.Channel, error) {
	c, err := p.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, notFound(err)
	}

	return toChannel(c), nil
}

func (p *Platform) NativeCommand(ctx context.Context, guildID, name string) (*domain.NativeCommand, error) {
	appID, _ := p.identity()

	cmds, err := p.session.ApplicationCommands(appID, guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, notFound(err)
	}

	for _, c := range cmds {
		if c.Name == name {
			return &domain.NativeCommand{ID: c.ID, Name: c.Name}, nil
		}
	}

	return nil, fmt.Errorf("%w: native command %s", domain.ErrNotFound, name)
}

func (p *Platform) CommandPermissions(ctx context.Context, guildID, commandID string) ([]domain.Overwrite, error) {
	appID, _ := p.identity()

	perms, err := p.session.ApplicationCommandPermissions(appID, guildID, commandID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, notFound(err)
	}

	overwrites := make([]domain.Overwrite, 0, len(perms.Permissions))
	for _, perm := range perms.Permissions {
		overwrites = append(overwrites, domain.Overwrite{
			Kind:  domain.OverwriteKind(perm.Type),
			ID:    perm.ID,
			Allow: perm.Permission,
		})
	}

	return overwrites, nil
}

func (p *Platform) MemberPermissions(ctx context.Context, channelID, userID string) (domain.Permission, error) {
	perms, err := p.session.UserChannelPermissions(userID, channelID, discordgo.WithContext(ctx))
	if err != nil {
		return 0, notFound(err)
	}

	return domain.Permission(perms), nil
}

func (p *Platform) BotPermissions(ctx context.Context, channelID string) (domain.Permission, error) {
	_, botID := p.identity()

	return p.MemberPermissions(ctx, channelID, botID)
}
