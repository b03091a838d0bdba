package mailer

import "errors"

var (
	ErrNoRecipient   = errors.New("mail has no recipient")
	ErrDial          = errors.New("failed to connect to smtp relay")
	ErrAuth          = errors.New("smtp authentication failed")
	ErrDelivery      = errors.New("smtp delivery failed")
	ErrInvalidHeader = errors.New("invalid mail header")
)
