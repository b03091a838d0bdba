package mailer

import (
	"github.com/MKhiriev/forkeys/internal/config"
	"github.com/MKhiriev/forkeys/internal/logger"
)

// NewMailer picks the SMTP mailer when cfg.Host is set and the log mailer
// otherwise.
func NewMailer(cfg config.SMTP, logger *logger.Logger) Mailer {
	if cfg.Host == "" {
		logger.Warn().Msg("smtp host is not configured, mails will only be logged")
		return NewLogMailer(logger)
	}
	return NewSMTPMailer(cfg, logger)
}
