package service

import (
	"context"
	"eggbot/internal/core/domain"
	"eggbot/internal/core/port"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// ArgumentResolver turns the tokens of a text command into typed arguments
// following the command's option schema.
type ArgumentResolver struct {
	platform port.Platform
}

func NewArgumentResolver(platform port.Platform) *ArgumentResolver {
	return &ArgumentResolver{platform: platform}
}

// Resolve walks the options of cmd against the words following the command
// word of message. A sub-command reached through its parent ("tag add ...")
// skips the selector word first; one invoked by its own name does not.
func (r *ArgumentResolver) Resolve(ctx context.Context, cmd port.Command, message *domain.Message) (domain.Args, error) {
	def := cmd.Definition()

	word, tokens := domain.ParseCommand(message.Content)
	if def.Conf.IsSubCommand && len(tokens) > 0 && !invokedDirectly(word, def.Help) {
		tokens = tokens[1:]
	}

	return r.ResolveOptions(ctx, message.GuildID, def.Conf.Options, tokens)
}

// ResolveOptions resolves options positionally against tokens. Selecting a
// sub-command recurses into its nested options with the remaining tokens.
func (r *ArgumentResolver) ResolveOptions(ctx context.Context, guildID string, options []domain.Option,
	tokens []string) (domain.Args, error) {
	args := domain.Args{}

	for i, option := range options {
		if i >= len(tokens) {
			if option.Required {
				return nil, &domain.ValidationError{Option: option.Name, Reason: "missing argument"}
			}
			break
		}

		token := tokens[i]

		switch option.Kind {
		case domain.OptionUser:
			member, err := r.member(ctx, guildID, token)
			if err != nil {
				return nil, err
			}
			args[option.Name] = member
		case domain.OptionRole:
			role, err := r.role(ctx, guildID, token)
			if err != nil {
				return nil, err
			}
			args[option.Name] = role
		case domain.OptionChannel:
			channel, err := r.channel(ctx, guildID, option, token)
			if err != nil {
				return nil, err
			}
			args[option.Name] = channel
		case domain.OptionString:
			args[option.Name] = slices.Clone(tokens[i:])
			return args, nil
		case domain.OptionNumber, domain.OptionInteger:
			value, err := number(option, token)
			if err != nil {
				return nil, err
			}
			args[option.Name] = value
		case domain.OptionBoolean:
			args[option.Name] = truthy(token)
		case domain.OptionSubcommand:
			return r.subCommand(ctx, guildID, options, token, tokens[i+1:])
		default:
			return nil, fmt.Errorf("option %s has unsupported kind %d", option.Name, option.Kind)
		}
	}

	return args, nil
}

func (r *ArgumentResolver) subCommand(ctx context.Context, guildID string, siblings []domain.Option, token string,
	rest []string) (domain.Args, error) {
	idx := slices.IndexFunc(siblings, func(o domain.Option) bool {
		return o.Kind == domain.OptionSubcommand && o.Name == strings.ToLower(token)
	})
	if idx < 0 {
		return nil, &domain.ValidationError{Token: token, Reason: "is not a valid sub command"}
	}

	selected := siblings[idx]

	args, err := r.ResolveOptions(ctx, guildID, selected.Options, rest)
	if err != nil {
		return nil, err
	}
	args[domain.SubCommandKey] = selected.Name

	return args, nil
}

func (r *ArgumentResolver) member(ctx context.Context, guildID, token string) (*domain.Member, error) {
	id := mentionID(token, "<@!", "<@")
	if guildID == "" {
		return nil, &domain.ValidationError{Token: token, Reason: "is not a valid user"}
	}

	member, err := r.platform.Member(ctx, guildID, id)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && member == nil) {
		return nil, &domain.ValidationError{Token: token, Reason: "is not a valid user"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member %s: %w", id, err)
	}

	return member, nil
}

func (r *ArgumentResolver) role(ctx context.Context, guildID, token string) (*domain.Role, error) {
	id := mentionID(token, "<@&")
	if guildID == "" {
		return nil, &domain.ValidationError{Token: token, Reason: "is not a valid role"}
	}

	role, err := r.platform.Role(ctx, guildID, id)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && role == nil) {
		return nil, &domain.ValidationError{Token: token, Reason: "is not a valid role"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch role %s: %w", id, err)
	}

	return role, nil
}

func (r *ArgumentResolver) channel(ctx context.Context, guildID string, option domain.Option,
	token string) (*domain.Channel, error) {
	id := mentionID(token, "<#")
	if guildID == "" {
		return nil, &domain.ValidationError{Token: token, Reason: "is not a valid channel"}
	}

	channel, err := r.platform.Channel(ctx, id)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && channel == nil) {
		return nil, &domain.ValidationError{Token: token, Reason: "is not a valid channel"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel %s: %w", id, err)
	}

	if len(option.ChannelKinds) > 0 && !slices.Contains(option.ChannelKinds, channel.Kind) {
		return nil, &domain.ValidationError{Token: token, Reason: "is not the correct channel type"}
	}

	return channel, nil
}

// invokedDirectly reports whether the command word names the sub-command
// itself rather than its parent. word still carries the prefix.
func invokedDirectly(word string, help domain.Help) bool {
	if strings.HasSuffix(word, strings.ToLower(help.Name)) {
		return true
	}

	return slices.ContainsFunc(help.Aliases, func(alias string) bool {
		return strings.HasSuffix(word, strings.ToLower(alias))
	})
}

func number(option domain.Option, token string) (any, error) {
	value, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, &domain.ValidationError{Token: token, Reason: "is not a number"}
	}

	if option.MinValue != nil && value < *option.MinValue {
		return nil, &domain.ValidationError{Token: token,
			Reason: "must be at least " + strconv.FormatFloat(*option.MinValue, 'f', -1, 64)}
	}
	if option.MaxValue != nil && value > *option.MaxValue {
		return nil, &domain.ValidationError{Token: token,
			Reason: "must be at most " + strconv.FormatFloat(*option.MaxValue, 'f', -1, 64)}
	}

	if option.Kind == domain.OptionInteger {
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
		if value < math.MinInt64 || value >= math.MaxInt64 {
			return nil, &domain.ValidationError{Token: token, Reason: "is out of range"}
		}
		return int64(value), nil
	}

	return value, nil
}

func truthy(token string) bool {
	switch strings.ToLower(token) {
	case "", "false", "0", "no", "off":
		return false
	default:
		return true
	}
}

// mentionID strips a mention wrapper like <@123> or a leading @ from token.
func mentionID(token string, prefixes ...string) string {
	for _, prefix := range prefixes {
		if strings.HasPrefix(token, prefix) && strings.HasSuffix(token, ">") {
			return token[len(prefix) : len(token)-1]
		}
	}

	return strings.TrimPrefix(token, "@")
}
