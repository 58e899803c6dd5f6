// Package mail delivers outbound notifications over an SMTP relay.
package mail

import (
	"bytes"
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

// Config captures the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer implements ports.Notifier over STARTTLS SMTP. Delivery is
// synchronous and unqueued; failures surface to the caller.
type Mailer struct {
	client *gomail.Client
	from   string
}

var _ ports.Notifier = (*Mailer)(nil)

// NewMailer builds a Mailer for the configured relay.
func NewMailer(cfg Config) (*Mailer, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &Mailer{client: client, from: cfg.From}, nil
}

// Send builds and delivers a single message.
func (m *Mailer) Send(ctx context.Context, msg ports.Message) error {
	message, err := buildMessage(m.from, msg)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

// buildMessage assembles the MIME message, attaching the PDF when present.
func buildMessage(from string, msg ports.Message) (*gomail.Msg, error) {
	message := gomail.NewMsg()
	if err := message.From(from); err != nil {
		return nil, fmt.Errorf("mail from: %w", err)
	}
	if err := message.To(msg.To); err != nil {
		return nil, fmt.Errorf("mail to: %w", err)
	}
	message.Subject(msg.Subject)
	message.SetBodyString(gomail.TypeTextHTML, msg.HTMLBody)

	if len(msg.Attachment) > 0 {
		name := msg.AttachmentName
		if name == "" {
			name = "document.pdf"
		}
		if err := message.AttachReader(name, bytes.NewReader(msg.Attachment)); err != nil {
			return nil, fmt.Errorf("attach %s: %w", name, err)
		}
	}
	return message, nil
}
