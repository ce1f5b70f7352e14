package notification

import (
	"context"
	"errors"

	"hireflow/internal/config"
	"hireflow/internal/pkg/validate"

	gomail "gopkg.in/gomail.v2"
)

var (
	ErrInvalidRecipient = errors.New("invalid recipient address")
	ErrNotConfigured    = errors.New("smtp not configured")
)

// Sink delivers a single message. Success means transport-level
// acknowledgment only; there is no delivery confirmation beyond that.
type Sink interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPSink struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSink(cfg config.SMTPConfig) *SMTPSink {
	if cfg.Host == "" || cfg.From == "" {
		return &SMTPSink{}
	}
	return &SMTPSink{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *SMTPSink) Send(ctx context.Context, msg Message) error {
	if s == nil || s.dialer == nil {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validate.Email(msg.To) {
		return ErrInvalidRecipient
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	if msg.AttachmentPath != "" {
		m.Attach(msg.AttachmentPath)
	}

	return s.dialer.DialAndSend(m)
}
