package domain

// Invoker is the account that triggered a command.
type Invoker struct {
	ID       string
	Username string
	Premium  bool
	Bot      bool
}

type Message struct {
	ID        string
	Content   string
	Author    Invoker
	ChannelID string
	// GuildID is empty for direct messages.
	GuildID   string
	Deletable bool
}

func (m *Message) InGuild() bool {
	return m.GuildID != ""
}

type InteractionKind int

const (
	InteractionCommand InteractionKind = iota
	InteractionAutocomplete
	InteractionContextMenu
)

func (k InteractionKind) String() string {
	switch k {
	case InteractionCommand:
		return "command"
	case InteractionAutocomplete:
		return "autocomplete"
	case InteractionContextMenu:
		return "context_menu"
	default:
		return "unknown"
	}
}

// Interaction is a structured invocation whose arguments were already typed
// by the platform.
type Interaction struct {
	ID         string
	AppID      string
	Token      string
	Kind       InteractionKind
	Name       string
	SubCommand string
	Args       Args
	Invoker    Invoker
	ChannelID  string
	GuildID    string
	// TargetID is the user or message a context menu was opened on.
	TargetID string
	// Focused is the option being typed for autocomplete.
	Focused string
	// Permissions are the invoker's effective permissions in the channel, as
	// sent along with the interaction.
	Permissions Permission
}

func (i *Interaction) InGuild() bool {
	return i.GuildID != ""
}

// Invocation is what a text command receives when it runs.
type Invocation struct {
	ID       string
	Message  *Message
	Settings Settings
	Args     []string
}

type Settings struct {
	Prefix   string
	Language string
}

type ChannelKind int

const (
	ChannelGuildText          ChannelKind = 0
	ChannelDM                 ChannelKind = 1
	ChannelGuildVoice         ChannelKind = 2
	ChannelGroupDM            ChannelKind = 3
	ChannelGuildCategory      ChannelKind = 4
	ChannelGuildNews          ChannelKind = 5
	ChannelGuildNewsThread    ChannelKind = 10
	ChannelGuildPublicThread  ChannelKind = 11
	ChannelGuildPrivateThread ChannelKind = 12
	ChannelGuildStageVoice    ChannelKind = 13
	ChannelGuildForum         ChannelKind = 15
)

type Member struct {
	ID       string
	Username string
	Nick     string
	Roles    []string
}

type Role struct {
	ID   string
	Name string
}

type Channel struct {
	ID   string
	Name string
	Kind ChannelKind
	NSFW bool
}

// NativeCommand is a platform-side registration of a command.
type NativeCommand struct {
	ID   string
	Name string
}
