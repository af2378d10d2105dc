package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrNotImplemented     = errors.New("command does not implement this capability")
	ErrValidation         = errors.New("invalid argument")
	ErrNotFound           = errors.New("entity not found")
	ErrCommandNotFound    = errors.New("command not found")
	ErrNameCollision      = errors.New("command name already registered")
)

// SubCommandKey is the reserved Args key holding the selected sub-command name.
const SubCommandKey = "subCommand"

// PremiumCooldownFactor scales the cooldown of premium invokers.
const PremiumCooldownFactor = 0.75

// ValidationError is returned by the argument resolver when a token does not
// satisfy its option.
type ValidationError struct {
	Option string
	Token  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%s: %s", e.Option, e.Reason)
	}

	return fmt.Sprintf("%s %s", e.Token, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
