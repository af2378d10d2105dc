package domain

import "strings"

// ParseCommand splits content into the command word, lower-cased, and the
// remaining whitespace-separated tokens.
func ParseCommand(content string) (string, []string) {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return "", nil
	}

	return strings.ToLower(fields[0]), fields[1:]
}

// ParseCommandArgs returns everything after the command word.
func ParseCommandArgs(content string) string {
	_, args := ParseCommand(content)
	return strings.Join(args, " ")
}

// SubCommandName builds the compound registry key "<parent>-<sub>" of a
// sub-command.
func SubCommandName(parent, sub string) string {
	return strings.ToLower(parent) + "-" + strings.ToLower(sub)
}
