// Package mail delivers account-confirmation email over SMTP.
package mail

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"

	gomail "github.com/wneessen/go-mail"

	"contacts_backend/internal/platform/config"
)

//go:embed templates/verify_email.html
var verifyEmailHTML string

var verifyEmailTmpl = template.Must(template.New("verify_email").Parse(verifyEmailHTML))

// SMTPSender sends templated confirmation messages. Send failures are the
// caller's to log; signup must never fail because mail delivery did.
type SMTPSender struct {
	cfg     config.Mail
	baseURL string
}

// NewSMTPSender creates a sender from the mail configuration. baseURL is the
// public address of this server, used to build the confirmation link.
func NewSMTPSender(cfg config.Mail, baseURL string) *SMTPSender {
	return &SMTPSender{cfg: cfg, baseURL: baseURL}
}

// SendConfirmation delivers the confirmation message carrying the email-kind
// token to the recipient.
func (s *SMTPSender) SendConfirmation(ctx context.Context, to, username, token string) error {
	var body bytes.Buffer
	err := verifyEmailTmpl.Execute(&body, map[string]string{
		"Host":     s.baseURL,
		"Username": username,
		"Token":    token,
	})
	if err != nil {
		return fmt.Errorf("failed to render confirmation mail: %w", err)
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject("Confirm your email")
	msg.SetBodyString(gomail.TypeTextHTML, body.String())

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return client.DialAndSendWithContext(ctx, msg)
}
