package service

import (
	"context"
	"eggbot/internal/core/domain"
	"eggbot/internal/core/port"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Authorizer interface {
	Evaluate(ctx context.Context, cmd port.Command, message *domain.Message) (domain.Verdict, error)
	EvaluateInteraction(ctx context.Context, cmd port.Command, interaction *domain.Interaction) (domain.Verdict, error)
}

// CommandAuthorizer combines native command permission overwrites with the
// static permission requirements of a command.
type CommandAuthorizer struct {
	owners   []string
	platform port.Platform
}

func NewAuthorizer(platform port.Platform) (*CommandAuthorizer, error) {
	var owners []string

	err := viper.UnmarshalKey("bot.owners", &owners)
	if err != nil {
		return nil, errors.New("failed to load bot owners")
	}

	return &CommandAuthorizer{
		owners:   owners,
		platform: platform,
	}, nil
}

func (a *CommandAuthorizer) IsOwner(userID string) bool {
	return slices.Contains(a.owners, userID)
}

// Evaluate decides whether message may run cmd. A denial is a verdict, only
// platform fetch failures are returned as errors.
func (a *CommandAuthorizer) Evaluate(ctx context.Context, cmd port.Command, message *domain.Message) (domain.Verdict, error) {
	def := cmd.Definition()
	l := log.With().
		Str("command", def.Help.Name).
		Str("invoker", message.Author.ID).
		Str("channelID", message.ChannelID).
		Logger()

	verdict, decided, err := a.precheck(ctx, l, def, message.Author.ID, message.ChannelID, message.InGuild())
	if err != nil || decided {
		return verdict, err
	}

	native, err := a.platform.NativeCommand(ctx, message.GuildID, def.Help.Name)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.Verdict{}, fmt.Errorf("failed to fetch native commands: %w", err)
	}

	if native != nil {
		overwrites, err := a.platform.CommandPermissions(ctx, message.GuildID, native.ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return domain.Verdict{}, fmt.Errorf("failed to fetch command permissions: %w", err)
		}

		verdict := evaluateOverwrites(overwrites, message)
		if !verdict.Allowed {
			l.Debug().Str("reason", string(verdict.Reason)).Msg("denied by permission overwrite")
		}

		return verdict, nil
	}

	return a.evaluateStatic(ctx, def, message)
}

// EvaluateInteraction decides whether an interaction may run cmd. Native
// overwrites are enforced by the platform before the interaction arrives, so
// only the owner and NSFW gates and the invoker's permissions are checked.
func (a *CommandAuthorizer) EvaluateInteraction(ctx context.Context, cmd port.Command,
	interaction *domain.Interaction) (domain.Verdict, error) {
	def := cmd.Definition()
	l := log.With().
		Str("command", def.Help.Name).
		Str("invoker", interaction.Invoker.ID).
		Str("channelID", interaction.ChannelID).
		Logger()

	verdict, decided, err := a.precheck(ctx, l, def, interaction.Invoker.ID, interaction.ChannelID,
		interaction.InGuild())
	if err != nil || decided {
		return verdict, err
	}

	if missing := def.Conf.UserPermissions.Missing(interaction.Permissions); missing != 0 {
		return domain.Verdict{Reason: domain.ReasonMissingPermissions, Missing: missing}, nil
	}

	return domain.Allow(), nil
}

// precheck runs the owner, scope and NSFW gates shared by both paths. decided
// is false when the remaining permission checks still apply.
func (a *CommandAuthorizer) precheck(ctx context.Context, l zerolog.Logger, def *domain.Definition,
	invokerID, channelID string, inGuild bool) (domain.Verdict, bool, error) {
	if def.Conf.OwnerOnly && !a.IsOwner(invokerID) {
		l.Debug().Msg("denied, owner only")
		return domain.Deny(domain.ReasonOwnerOnly), true, nil
	}

	if !inGuild {
		return domain.Allow(), true, nil
	}

	if def.Conf.NSFW {
		channel, err := a.platform.Channel(ctx, channelID)
		if err != nil {
			return domain.Verdict{}, true, fmt.Errorf("failed to fetch channel: %w", err)
		}
		if !channel.NSFW {
			l.Debug().Msg("denied, nsfw channel required")
			return domain.Deny(domain.ReasonNSFW), true, nil
		}
	}

	return domain.Verdict{}, false, nil
}

// evaluateOverwrites applies the first overwrite that matches the current
// channel or invoker. Role overwrites are not matched against member roles; a
// role deny is reported as unsupported rather than ignored.
func evaluateOverwrites(overwrites []domain.Overwrite, message *domain.Message) domain.Verdict {
	for _, ow := range overwrites {
		switch ow.Kind {
		case domain.OverwriteChannel:
			if ow.ID != message.ChannelID {
				continue
			}
			if !ow.Allow {
				return domain.Deny(domain.ReasonChannelBanned)
			}
			return domain.Allow()
		case domain.OverwriteUser:
			if ow.ID != message.Author.ID {
				continue
			}
			if !ow.Allow {
				return domain.Deny(domain.ReasonUserBanned)
			}
			return domain.Allow()
		case domain.OverwriteRole:
			if !ow.Allow {
				log.Warn().Str("roleID", ow.ID).Msg("role overwrite cannot be evaluated for text commands")
				return domain.Deny(domain.ReasonRoleUnsupported)
			}
		}
	}

	return domain.Allow()
}

func (a *CommandAuthorizer) evaluateStatic(ctx context.Context, def *domain.Definition, message *domain.Message) (domain.Verdict, error) {
	if def.Conf.UserPermissions != 0 {
		held, err := a.platform.MemberPermissions(ctx, message.ChannelID, message.Author.ID)
		if err != nil {
			return domain.Verdict{}, fmt.Errorf("failed to fetch member permissions: %w", err)
		}

		if missing := def.Conf.UserPermissions.Missing(held); missing != 0 {
			return domain.Verdict{Reason: domain.ReasonMissingPermissions, Missing: missing}, nil
		}
	}

	if def.Conf.BotPermissions != 0 {
		held, err := a.platform.BotPermissions(ctx, message.ChannelID)
		if err != nil {
			return domain.Verdict{}, fmt.Errorf("failed to fetch bot permissions: %w", err)
		}

		if missing := def.Conf.BotPermissions.Missing(held); missing != 0 {
			return domain.Verdict{Reason: domain.ReasonBotMissingPermissions, Missing: missing}, nil
		}
	}

	return domain.Allow(), nil
}
