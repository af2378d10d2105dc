package domain

type OverwriteKind int

const (
	OverwriteRole OverwriteKind = iota + 1
	OverwriteUser
	OverwriteChannel
)

func (k OverwriteKind) String() string {
	switch k {
	case OverwriteRole:
		return "role"
	case OverwriteUser:
		return "user"
	case OverwriteChannel:
		return "channel"
	default:
		return "unknown"
	}
}

// Overwrite is a platform allow/deny rule for one native command in one guild.
type Overwrite struct {
	Kind  OverwriteKind
	ID    string
	Allow bool
}

type DenyReason string

const (
	ReasonNone                  DenyReason = ""
	ReasonGuildOnly             DenyReason = "guild only"
	ReasonOwnerOnly             DenyReason = "owner only"
	ReasonNSFW                  DenyReason = "nsfw channel required"
	ReasonChannelBanned         DenyReason = "channel banned"
	ReasonUserBanned            DenyReason = "user banned"
	ReasonRoleUnsupported       DenyReason = "role overwrites unsupported"
	ReasonMissingPermissions    DenyReason = "insufficient permissions"
	ReasonBotMissingPermissions DenyReason = "bot missing permissions"
)

// Verdict is the outcome of an authorization check. Missing is only set for
// the two permission reasons.
type Verdict struct {
	Allowed bool
	Reason  DenyReason
	Missing Permission
}

func Allow() Verdict {
	return Verdict{Allowed: true}
}

func Deny(reason DenyReason) Verdict {
	return Verdict{Reason: reason}
}

// TranslationKey is the locale key of the notice sent for a denial.
func (r DenyReason) TranslationKey() string {
	switch r {
	case ReasonGuildOnly:
		return "events/message:GUILD_ONLY"
	case ReasonOwnerOnly:
		return "events/message:OWNER_ONLY"
	case ReasonNSFW:
		return "events/message:NSFW"
	case ReasonChannelBanned:
		return "events/message:CHANNEL_BANNED"
	case ReasonUserBanned:
		return "events/message:USER_BANNED"
	case ReasonRoleUnsupported:
		return "events/message:ROLE_UNSUPPORTED"
	case ReasonMissingPermissions:
		return "misc:USER_PERMISSION"
	case ReasonBotMissingPermissions:
		return "misc:BOT_PERMISSION"
	default:
		return "misc:ERROR_MESSAGE"
	}
}
