package main

import (
	"context"
	"eggbot/internal/adapters/discord"
	"eggbot/internal/adapters/handler"
	"eggbot/internal/adapters/locale"
	"eggbot/internal/adapters/settings"
	"eggbot/internal/core/domain/command"
	"eggbot/internal/core/port"
	"eggbot/internal/core/service"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting eggbot...")

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("handler.timeout", "30s")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	session, err := discordgo.New("Bot " + viper.GetString("discord.token"))
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing discord session")
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	identity := discord.SessionIdentity(session)
	platform := discord.NewPlatform(session, identity)
	messenger := discord.NewMessenger(session, platform)

	settingsProvider, err := settings.NewStaticProvider()
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing guild settings")
	}

	catalog, err := locale.NewCatalog(viper.GetString("bot.default_language"))
	if err != nil {
		log.Panic().Err(err).Msg("failed loading locales")
	}

	authorizer, err := service.NewAuthorizer(platform)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing authorizer")
	}

	registry := command.NewRegistry()
	cooldowns := service.NewCooldownStore()
	resolver := service.NewArgumentResolver(platform)

	tags := command.NewTagStore()
	register(registry,
		command.NewTagList(messenger, tags),
		command.NewTagAdd(messenger, tags, resolver),
	)
	register(registry,
		command.NewTag(messenger, registry, resolver, registry.SubCommandsOf("tag")),
		command.NewPing(messenger),
		command.NewHelp(messenger, registry, resolver),
		command.NewRoll(messenger, resolver),
		command.NewDebug(messenger, registry, cooldowns),
	)

	dispatcher := service.NewDispatcher(service.DispatcherParams{
		Registry:   registry,
		Cooldowns:  cooldowns,
		Authorizer: authorizer,
		Settings:   settingsProvider,
		Messenger:  messenger,
		Translator: catalog,
	})

	handlerTimeout, err := time.ParseDuration(viper.GetString("handler.timeout"))
	if err != nil {
		log.Panic().Err(err).Msg("invalid timeout for handler in config")
	}

	var premium []string
	if err := viper.UnmarshalKey("bot.premium_users", &premium); err != nil {
		log.Panic().Err(err).Msg("failed loading premium users")
	}

	commandHandler := handler.NewCommand(handler.CommandParams{
		Dispatcher:  dispatcher,
		Registrar:   discord.NewRegistrar(session, identity, registry),
		Permissions: platform,
		Premium:     premium,
		Timeout:     handlerTimeout,
	})

	session.AddHandler(commandHandler.HandleMessage)
	session.AddHandler(commandHandler.HandleInteraction)
	session.AddHandler(commandHandler.HandleGuildCreate)

	if err := session.Open(); err != nil {
		log.Panic().Err(err).Msg("failed opening discord gateway")
	}
	defer session.Close()

	log.Info().Int("commands", len(registry.Commands())).Msg("bot listening")
	<-ctx.Done()
	log.Info().Msg("shutting down")
}

func register(registry *command.Registry, cmds ...port.Command) {
	for _, cmd := range cmds {
		if err := registry.Add(cmd); err != nil {
			log.Fatal().Err(err).Msg("failed registering command")
		}
	}
}
