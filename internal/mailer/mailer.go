package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Mailer submits the report over authenticated SMTP. One message per run;
// a submission failure is terminal for the run.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

// New creates a Mailer from SMTP settings.
func New(host string, port int, username, password, from string, to []string) *Mailer {
	return &Mailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		To:       to,
	}
}

// Send submits one message with an HTML body and a plain-text alternative.
func (m *Mailer) Send(ctx context.Context, subject, htmlBody, textBody string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat("MacroSentinel", m.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(m.To...); err != nil {
		return fmt.Errorf("set recipients: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, textBody)
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(m.Host,
		mail.WithPort(m.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.Username),
		mail.WithPassword(m.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send report: %w", err)
	}
	return nil
}
