package domain

import "time"

// Help is the identity and help metadata of a command.
type Help struct {
	Name        string
	Category    string
	Aliases     []string
	Description string
	Usage       string
	Examples    []string
}

// Conf controls how and where a command may be invoked.
type Conf struct {
	GuildOnly       bool
	UserPermissions Permission
	BotPermissions  Permission
	OwnerOnly       bool
	NSFW            bool
	Cooldown        time.Duration
	Slash           bool
	IsSubCommand    bool
	Options         []Option
}

const DefaultCooldown = 3 * time.Second

// DefaultConf returns the configuration every command starts from.
func DefaultConf() Conf {
	return Conf{
		BotPermissions: PermissionSendMessages | PermissionEmbedLinks,
		Cooldown:       DefaultCooldown,
	}
}

type Definition struct {
	Help Help
	Conf Conf
}

type OptionKind int

const (
	OptionSubcommand OptionKind = iota + 1
	_
	OptionString
	OptionInteger
	OptionBoolean
	OptionUser
	OptionChannel
	OptionRole
	_
	OptionNumber
)

func (k OptionKind) String() string {
	switch k {
	case OptionSubcommand:
		return "subcommand"
	case OptionString:
		return "string"
	case OptionInteger:
		return "integer"
	case OptionBoolean:
		return "boolean"
	case OptionUser:
		return "user"
	case OptionChannel:
		return "channel"
	case OptionRole:
		return "role"
	case OptionNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Option describes one typed argument of a command. Options is only used by
// OptionSubcommand.
type Option struct {
	Name         string
	Description  string
	Kind         OptionKind
	Required     bool
	MinValue     *float64
	MaxValue     *float64
	ChannelKinds []ChannelKind
	Options      []Option
}

// Bound is a helper for MinValue and MaxValue literals.
func Bound(v float64) *float64 {
	return &v
}
