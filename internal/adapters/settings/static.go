package settings

import (
	"context"
	"eggbot/internal/core/domain"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	DefaultPrefix   = "!"
	DefaultLanguage = "en-US"
)

type guildSettings struct {
	Prefix   string `mapstructure:"prefix"`
	Language string `mapstructure:"language"`
}

// StaticProvider serves guild settings loaded once from the configuration.
type StaticProvider struct {
	defaults domain.Settings
	guilds   map[string]domain.Settings
}

func NewStaticProvider() (*StaticProvider, error) {
	viper.SetDefault("bot.default_prefix", DefaultPrefix)
	viper.SetDefault("bot.default_language", DefaultLanguage)

	defaults := domain.Settings{
		Prefix:   viper.GetString("bot.default_prefix"),
		Language: viper.GetString("bot.default_language"),
	}

	var raw map[string]guildSettings
	if err := viper.UnmarshalKey("guilds", &raw); err != nil {
		return nil, fmt.Errorf("failed to load guild settings: %w", err)
	}

	p := &StaticProvider{
		defaults: defaults,
		guilds:   make(map[string]domain.Settings, len(raw)),
	}

	for id, gs := range raw {
		p.guilds[id] = p.merge(gs)
	}

	log.Info().Int("guilds", len(p.guilds)).Str("prefix", defaults.Prefix).Msg("loaded guild settings")

	return p, nil
}

func (p *StaticProvider) merge(gs guildSettings) domain.Settings {
	s := p.defaults
	if gs.Prefix != "" {
		s.Prefix = gs.Prefix
	}
	if gs.Language != "" {
		s.Language = gs.Language
	}

	return s
}

// Settings returns the settings of guildID, or the defaults outside a guild
// and for guilds without overrides.
func (p *StaticProvider) Settings(_ context.Context, guildID string) domain.Settings {
	if s, ok := p.guilds[guildID]; ok && guildID != "" {
		return s
	}

	return p.defaults
}
