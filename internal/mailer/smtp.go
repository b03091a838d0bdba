// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/forkeys/internal/config"
	"github.com/MKhiriev/forkeys/internal/logger"
)

const dialTimeout = 10 * time.Second

type smtpMailer struct {
	host     string
	addr     string
	sender   string
	password string

	// dial is replaced in tests.
	dial func(ctx context.Context, addr string) (net.Conn, error)

	logger *logger.Logger
}

// NewSMTPMailer returns a Mailer that relays through cfg.Host over implicit
// TLS and authenticates with PLAIN as cfg.SenderEmail.
func NewSMTPMailer(cfg config.SMTP, logger *logger.Logger) Mailer {
	m := &smtpMailer{
		host:     cfg.Host,
		addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		sender:   cfg.SenderEmail,
		password: cfg.SenderPassword,
		logger:   logger,
	}
	m.dial = m.dialTLS
	return m
}

func (m *smtpMailer) dialTLS(ctx context.Context, addr string) (net.Conn, error) {
	d := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: dialTimeout},
		Config:    &tls.Config{ServerName: m.host, MinVersion: tls.VersionTLS12},
	}
	return d.DialContext(ctx, "tcp", addr)
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	raw, err := m.compose(msg)
	if err != nil {
		return err
	}

	conn, err := m.dial(ctx, m.addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDial, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: %w", ErrDial, err)
	}
	defer c.Close()

	if m.password != "" {
		if err = c.Auth(smtp.PlainAuth("", m.sender, m.password, m.host)); err != nil {
			return fmt.Errorf("%w: %w", ErrAuth, err)
		}
	}
	if err = c.Mail(m.sender); err != nil {
		return fmt.Errorf("%w: MAIL FROM: %w", ErrDelivery, err)
	}
	if err = c.Rcpt(msg.To); err != nil {
		return fmt.Errorf("%w: RCPT TO: %w", ErrDelivery, err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("%w: DATA: %w", ErrDelivery, err)
	}
	if _, err = w.Write(raw); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	m.logger.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail sent")
	return c.Quit()
}

// compose renders the headers and an 8bit UTF-8 body with CRLF line ends.
func (m *smtpMailer) compose(msg Message) ([]byte, error) {
	for _, h := range []string{m.sender, msg.To, msg.Subject} {
		if strings.ContainsAny(h, "\r\n") {
			return nil, ErrInvalidHeader
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", m.sender)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	buf.WriteString(strings.ReplaceAll(strings.ReplaceAll(msg.Body, "\r\n", "\n"), "\n", "\r\n"))
	buf.WriteString("\r\n")

	return buf.Bytes(), nil
}
