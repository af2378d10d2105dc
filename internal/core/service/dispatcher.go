package service

import (
	"context"
	"eggbot/internal/core/domain"
	"eggbot/internal/core/port"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Dispatcher gates inbound messages and interactions and invokes the
// commands they resolve to.
type Dispatcher struct {
	registry   port.CommandRegistry
	cooldowns  Cooldowns
	authorizer Authorizer
	settings   port.SettingsProvider
	messenger  port.Messenger
	translator port.Translator
}

type DispatcherParams struct {
	Registry   port.CommandRegistry
	Cooldowns  Cooldowns
	Authorizer Authorizer
	Settings   port.SettingsProvider
	Messenger  port.Messenger
	Translator port.Translator
}

func NewDispatcher(p DispatcherParams) *Dispatcher {
	return &Dispatcher{
		registry:   p.Registry,
		cooldowns:  p.Cooldowns,
		authorizer: p.Authorizer,
		settings:   p.Settings,
		messenger:  p.Messenger,
		translator: p.Translator,
	}
}

// Verify runs message through prefix, lookup, cooldown, scope and
// authorization gates and invokes the command when all pass. It returns true
// when a command ran or a denial notice was sent, false when the message was
// ignored. Platform failures during authorization are returned with false.
func (d *Dispatcher) Verify(ctx context.Context, message *domain.Message) (bool, error) {
	settings := d.settings.Settings(ctx, message.GuildID)

	if settings.Prefix == "" || !strings.HasPrefix(message.Content, settings.Prefix) {
		return false, nil
	}

	fields := strings.Fields(message.Content)
	if len(fields) == 0 {
		return false, nil
	}
	name := strings.ToLower(strings.TrimPrefix(fields[0], settings.Prefix))

	cmd, err := d.registry.Get(name)
	if err != nil {
		return false, nil
	}

	def := cmd.Definition()

	runner, ok := cmd.(port.MessageRunner)
	if !ok {
		log.Warn().Str("command", def.Help.Name).Err(domain.ErrNotImplemented).Msg("command has no text handler")
		return false, nil
	}

	if !d.cooldowns.Reserve(message.Author.ID) {
		log.Debug().Str("invoker", message.Author.ID).Msg("invoker on cooldown, ignoring")
		return false, nil
	}

	id, err := uuid.NewV4()
	if err != nil {
		d.cooldowns.Release(message.Author.ID)
		return false, fmt.Errorf("failed to create invocation id: %w", err)
	}

	l := log.With().
		Str("invocation", id.String()).
		Str("command", def.Help.Name).
		Str("invoker", message.Author.ID).
		Str("guildID", message.GuildID).
		Str("channelID", message.ChannelID).
		Logger()

	if def.Conf.GuildOnly && !message.InGuild() {
		d.cooldowns.Release(message.Author.ID)
		l.Debug().Msg("guild only command used outside a guild")
		return d.deny(ctx, message, settings, domain.Deny(domain.ReasonGuildOnly)), nil
	}

	_, args := domain.ParseCommand(message.Content)

	verdict, err := d.authorize(ctx, cmd, args, message)
	if err != nil {
		d.cooldowns.Release(message.Author.ID)
		return false, fmt.Errorf("failed to authorize %s: %w", def.Help.Name, err)
	}

	if !verdict.Allowed {
		d.cooldowns.Release(message.Author.ID)
		l.Info().Str("reason", string(verdict.Reason)).Msg("command denied")
		return d.deny(ctx, message, settings, verdict), nil
	}

	d.cooldowns.Arm(message.Author.ID, EffectiveCooldown(def.Conf.Cooldown, message.Author.Premium))

	l.Info().Msg("running command")

	inv := &domain.Invocation{
		ID:       id.String(),
		Message:  message,
		Settings: settings,
		Args:     args,
	}

	d.invoke(ctx, l, func(ctx context.Context) error {
		return runner.Run(ctx, inv)
	}, func(ctx context.Context, text string) {
		if !d.messenger.CanSend(ctx, message.ChannelID) {
			return
		}
		if err := d.messenger.Send(ctx, message.ChannelID, text); err != nil {
			l.Err(err).Msg("failed to send failure notice")
		}
	}, settings.Language)

	return true, nil
}

// Interact dispatches a structured interaction. Interactions are answered
// even when gated, since the platform expects a response.
func (d *Dispatcher) Interact(ctx context.Context, interaction *domain.Interaction) error {
	cmd, err := d.lookupInteraction(interaction)
	if err != nil {
		return err
	}

	def := cmd.Definition()
	settings := d.settings.Settings(ctx, interaction.GuildID)

	l := log.With().
		Str("interaction", interaction.ID).
		Str("kind", interaction.Kind.String()).
		Str("command", def.Help.Name).
		Str("invoker", interaction.Invoker.ID).
		Logger()

	if interaction.Kind == domain.InteractionAutocomplete {
		completer, ok := cmd.(port.Autocompleter)
		if !ok {
			return fmt.Errorf("%w: %s autocomplete", domain.ErrNotImplemented, def.Help.Name)
		}

		choices, err := completer.Autocomplete(ctx, interaction)
		if err != nil {
			return fmt.Errorf("failed to autocomplete %s: %w", def.Help.Name, err)
		}

		return d.messenger.Suggest(ctx, interaction, choices)
	}

	var run func(ctx context.Context) error

	switch interaction.Kind {
	case domain.InteractionCommand:
		if handler, ok := cmd.(port.InteractionHandler); ok {
			run = func(ctx context.Context) error { return handler.Callback(ctx, interaction) }
		}
	case domain.InteractionContextMenu:
		if replier, ok := cmd.(port.ContextMenuReplier); ok {
			run = func(ctx context.Context) error { return replier.ContextMenuReply(ctx, interaction) }
		}
	}

	if run == nil {
		d.respond(ctx, l, interaction, d.translator.Translate(settings.Language, "misc:ERROR_MESSAGE", nil))
		return fmt.Errorf("%w: %s %s", domain.ErrNotImplemented, def.Help.Name, interaction.Kind)
	}

	if !d.cooldowns.Reserve(interaction.Invoker.ID) {
		d.respond(ctx, l, interaction, d.translator.Translate(settings.Language, "events/message:COOLDOWN", nil))
		return nil
	}

	if def.Conf.GuildOnly && !interaction.InGuild() {
		d.cooldowns.Release(interaction.Invoker.ID)
		d.respond(ctx, l, interaction,
			d.translator.Translate(settings.Language, domain.ReasonGuildOnly.TranslationKey(), nil))
		return nil
	}

	verdict, err := d.authorizer.EvaluateInteraction(ctx, cmd, interaction)
	if err != nil {
		d.cooldowns.Release(interaction.Invoker.ID)
		d.respond(ctx, l, interaction, d.translator.Translate(settings.Language, "misc:ERROR_MESSAGE", nil))
		return fmt.Errorf("failed to authorize %s: %w", def.Help.Name, err)
	}

	if !verdict.Allowed {
		d.cooldowns.Release(interaction.Invoker.ID)
		l.Info().Str("reason", string(verdict.Reason)).Msg("interaction denied")
		d.respond(ctx, l, interaction, d.notice(settings.Language, verdict))
		return nil
	}

	d.cooldowns.Arm(interaction.Invoker.ID, EffectiveCooldown(def.Conf.Cooldown, interaction.Invoker.Premium))

	l.Info().Msg("running interaction")

	d.invoke(ctx, l, run, func(ctx context.Context, text string) {
		d.respond(ctx, l, interaction, text)
	}, settings.Language)

	return nil
}

// authorize evaluates cmd and, when the first argument selects one of its
// sub-commands, that sub-command as well, so a parent cannot be used to skip
// the requirements of what it forwards to.
func (d *Dispatcher) authorize(ctx context.Context, cmd port.Command, args []string,
	message *domain.Message) (domain.Verdict, error) {
	verdict, err := d.authorizer.Evaluate(ctx, cmd, message)
	if err != nil || !verdict.Allowed {
		return verdict, err
	}

	sub := d.selectedSubCommand(cmd.Definition(), args)
	if sub == nil {
		return verdict, nil
	}

	if sub.Definition().Conf.GuildOnly && !message.InGuild() {
		return domain.Deny(domain.ReasonGuildOnly), nil
	}

	return d.authorizer.Evaluate(ctx, sub, message)
}

func (d *Dispatcher) selectedSubCommand(def *domain.Definition, args []string) port.Command {
	if len(args) == 0 {
		return nil
	}

	selector := strings.ToLower(args[0])
	if !slices.ContainsFunc(def.Conf.Options, func(o domain.Option) bool {
		return o.Kind == domain.OptionSubcommand && o.Name == selector
	}) {
		return nil
	}

	sub, err := d.registry.Get(domain.SubCommandName(def.Help.Name, selector))
	if err != nil {
		log.Warn().Err(err).Str("command", def.Help.Name).Str("subCommand", selector).
			Msg("sub command option without registered command")
		return nil
	}

	return sub
}

func (d *Dispatcher) lookupInteraction(interaction *domain.Interaction) (port.Command, error) {
	if interaction.SubCommand != "" {
		cmd, err := d.registry.Get(domain.SubCommandName(interaction.Name, interaction.SubCommand))
		if err == nil {
			return cmd, nil
		}
	}

	return d.registry.Get(interaction.Name)
}

// invoke runs a command and turns errors and panics into a logged failure
// plus a user-facing notice.
func (d *Dispatcher) invoke(ctx context.Context, l zerolog.Logger, run func(ctx context.Context) error,
	notify func(ctx context.Context, text string), language string) {
	defer func() {
		if r := recover(); r != nil {
			l.Error().Interface("panic", r).Msg("command panicked")
			notify(ctx, d.translator.Translate(language, "misc:ERROR_MESSAGE", nil))
		}
	}()

	err := run(ctx)
	if err == nil {
		return
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		l.Debug().Err(err).Msg("invalid command arguments")
		notify(ctx, d.translator.Translate(language, "misc:INCORRECT_FORMAT",
			map[string]string{"ERROR": validationErr.Error()}))
		return
	}

	l.Err(err).Msg("failed to run command")
	notify(ctx, d.translator.Translate(language, "misc:ERROR_MESSAGE", nil))
}

// deny deletes the triggering message and sends the localized notice for
// verdict. It reports whether a notice was sent.
func (d *Dispatcher) deny(ctx context.Context, message *domain.Message, settings domain.Settings,
	verdict domain.Verdict) bool {
	if message.Deletable {
		if err := d.messenger.Delete(ctx, message.ChannelID, message.ID); err != nil {
			log.Warn().Err(err).Str("messageID", message.ID).Msg("failed to delete denied message")
		}
	}

	if !d.messenger.CanSend(ctx, message.ChannelID) {
		return false
	}

	err := d.messenger.Send(ctx, message.ChannelID, d.notice(settings.Language, verdict))
	if err != nil {
		log.Err(err).Str("channelID", message.ChannelID).Msg("failed to send denial notice")
		return false
	}

	return true
}

// notice renders the localized denial text, naming missing permissions.
func (d *Dispatcher) notice(language string, verdict domain.Verdict) string {
	var subs map[string]string
	if verdict.Missing != 0 {
		names := verdict.Missing.Names()
		for i, name := range names {
			names[i] = d.translator.Translate(language, "permissions:"+name, nil)
		}
		subs = map[string]string{"PERMISSIONS": strings.Join(names, ", ")}
	}

	return d.translator.Translate(language, verdict.Reason.TranslationKey(), subs)
}

func (d *Dispatcher) respond(ctx context.Context, l zerolog.Logger, interaction *domain.Interaction, text string) {
	if err := d.messenger.Respond(ctx, interaction, text, true); err != nil {
		l.Err(err).Msg("failed to respond to interaction")
	}
}
