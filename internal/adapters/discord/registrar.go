package discord

import (
	"context"
	"eggbot/internal/core/port"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Registrar publishes slash-enabled commands as native guild commands.
type Registrar struct {
	session  Session
	identity Identity
	registry port.CommandRegistry
}

func NewRegistrar(session Session, identity Identity, registry port.CommandRegistry) *Registrar {
	return &Registrar{session: session, identity: identity, registry: registry}
}

// Sync overwrites the native commands of guildID with the slash-enabled
// primary commands of the registry.
func (r *Registrar) Sync(ctx context.Context, guildID string) error {
	var cmds []*discordgo.ApplicationCommand
	for _, cmd := range r.registry.Commands() {
		def := cmd.Definition()
		if !def.Conf.Slash || def.Conf.IsSubCommand {
			continue
		}
		cmds = append(cmds, toApplicationCommand(def))
	}

	appID, _ := r.identity()

	created, err := r.session.ApplicationCommandBulkOverwrite(appID, guildID, cmds, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to register native commands for guild %s: %w", guildID, err)
	}

	log.Info().Str("guildID", guildID).Int("commands", len(created)).Msg("registered native commands")

	return nil
}
