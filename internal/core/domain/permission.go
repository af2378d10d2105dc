package domain

import "strings"

// Permission is a capability bitset using the Discord bit layout.
type Permission int64

const (
	PermissionCreateInstantInvite Permission = 1 << iota
	PermissionKickMembers
	PermissionBanMembers
	PermissionAdministrator
	PermissionManageChannels
	PermissionManageGuild
	PermissionAddReactions
	PermissionViewAuditLog
	PermissionPrioritySpeaker
	PermissionStream
	PermissionViewChannel
	PermissionSendMessages
	PermissionSendTTSMessages
	PermissionManageMessages
	PermissionEmbedLinks
	PermissionAttachFiles
	PermissionReadMessageHistory
	PermissionMentionEveryone
	PermissionUseExternalEmojis
	PermissionViewGuildInsights
	PermissionConnect
	PermissionSpeak
	PermissionMuteMembers
	PermissionDeafenMembers
	PermissionMoveMembers
	PermissionUseVAD
	PermissionChangeNickname
	PermissionManageNicknames
	PermissionManageRoles
	PermissionManageWebhooks
	PermissionManageGuildExpressions
	PermissionUseApplicationCommands
	PermissionRequestToSpeak
	PermissionManageEvents
	PermissionManageThreads
	PermissionCreatePublicThreads
	PermissionCreatePrivateThreads
	PermissionUseExternalStickers
	PermissionSendMessagesInThreads
	PermissionUseEmbeddedActivities
	PermissionModerateMembers
)

var permissionNames = []string{
	"CreateInstantInvite",
	"KickMembers",
	"BanMembers",
	"Administrator",
	"ManageChannels",
	"ManageGuild",
	"AddReactions",
	"ViewAuditLog",
	"PrioritySpeaker",
	"Stream",
	"ViewChannel",
	"SendMessages",
	"SendTTSMessages",
	"ManageMessages",
	"EmbedLinks",
	"AttachFiles",
	"ReadMessageHistory",
	"MentionEveryone",
	"UseExternalEmojis",
	"ViewGuildInsights",
	"Connect",
	"Speak",
	"MuteMembers",
	"DeafenMembers",
	"MoveMembers",
	"UseVAD",
	"ChangeNickname",
	"ManageNicknames",
	"ManageRoles",
	"ManageWebhooks",
	"ManageGuildExpressions",
	"UseApplicationCommands",
	"RequestToSpeak",
	"ManageEvents",
	"ManageThreads",
	"CreatePublicThreads",
	"CreatePrivateThreads",
	"UseExternalStickers",
	"SendMessagesInThreads",
	"UseEmbeddedActivities",
	"ModerateMembers",
}

func (p Permission) Has(flags Permission) bool {
	return p&flags == flags
}

// Missing returns the flags of p that held does not contain.
func (p Permission) Missing(held Permission) Permission {
	return p &^ held
}

// Names lists the flag names set in p in bit order. Unknown bits are skipped.
func (p Permission) Names() []string {
	var names []string
	for i, name := range permissionNames {
		if p&(1<<i) != 0 {
			names = append(names, name)
		}
	}

	return names
}

func (p Permission) String() string {
	return strings.Join(p.Names(), ", ")
}

// ParsePermission maps a flag name back to its bit. The lookup is case-insensitive.
func ParsePermission(name string) (Permission, bool) {
	for i, n := range permissionNames {
		if strings.EqualFold(n, name) {
			return 1 << i, true
		}
	}

	return 0, false
}
