// Package mailer sends the registry server's notification mails.
//
// [NewMailer] returns an SMTP mailer when a relay host is configured and a
// log-only mailer otherwise, so a development server never needs a relay.
package mailer

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/mailer_mock.go -package=mock

// Message is a plain-text UTF-8 mail.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers a [Message].
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
