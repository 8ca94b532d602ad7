// Package mail delivers the rendered digest over SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"

	"jobdigest/pkg/logging"
)

// Sender delivers one HTML message to the configured recipients. A
// returned error means delivery must be presumed failed and the caller
// must not persist state for this run.
type Sender interface {
	Send(ctx context.Context, subject, htmlBody string) error
}

type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Recipients []string
}

type SMTPSender struct {
	cfg SMTPConfig
	log *logging.Logger
}

var _ Sender = (*SMTPSender)(nil)

func NewSMTPSender(cfg SMTPConfig, log *logging.Logger) (*SMTPSender, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("smtp username/password is required")
	}
	if len(cfg.Recipients) == 0 {
		return nil, errors.New("no recipients to send to")
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if log == nil {
		log = logging.Nop()
	}
	return &SMTPSender{cfg: cfg, log: log}, nil
}

func (s *SMTPSender) Send(ctx context.Context, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("mail from %q: %w", s.cfg.From, err)
	}
	if err := msg.To(s.cfg.Recipients...); err != nil {
		return fmt.Errorf("mail recipients: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
		gomail.WithTimeout(30 * time.Second),
	}
	// 465 is implicit TLS; anything else upgrades via STARTTLS.
	if s.cfg.Port == 465 {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPortPolicy(gomail.TLSMandatory))
	}

	client, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	s.log.Info("digest sent", "recipients", len(s.cfg.Recipients), "subject", subject)
	return nil
}
