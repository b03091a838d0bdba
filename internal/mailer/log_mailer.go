package mailer

import (
	"context"

	"github.com/MKhiriev/forkeys/internal/logger"
)

type logMailer struct {
	logger *logger.Logger
}

// NewLogMailer returns a Mailer that records recipient and subject and
// drops the body, which may carry a security answer.
func NewLogMailer(logger *logger.Logger) Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	m.logger.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Int("body_len", len(msg.Body)).
		Msg("mail not sent, smtp is not configured")
	return nil
}
