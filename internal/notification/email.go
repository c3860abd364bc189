// internal/notification/email.go

package notification

import (
	"context"
	"fmt"
	"log"
	"net/smtp"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/snapgram/snapgram-backend/internal/config"
)

// Email is an outbound email message
type Email struct {
	To      string
	Subject string
	Body    string
}

// EmailProvider defines the email provider interface
type EmailProvider interface {
	SendEmail(ctx context.Context, email *Email) error
}

// NewProviderFromConfig picks the email provider named in configuration.
// Unknown providers fall back to the mock, which only logs.
func NewProviderFromConfig(cfg *config.Config) EmailProvider {
	switch cfg.EmailProvider {
	case "sendgrid":
		return NewSendGridEmailProvider(cfg.SendGridAPIKey, cfg.EmailFrom)
	case "smtp":
		return NewSMTPEmailProvider(cfg.SMTPHost, fmt.Sprintf("%d", cfg.SMTPPort), cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)
	default:
		return NewMockEmailProvider()
	}
}

// SendGridEmailProvider implements EmailProvider using SendGrid
type SendGridEmailProvider struct {
	apiKey string
	from   string
}

// NewSendGridEmailProvider creates a new SendGrid email provider
func NewSendGridEmailProvider(apiKey, from string) EmailProvider {
	return &SendGridEmailProvider{
		apiKey: apiKey,
		from:   from,
	}
}

// SendEmail sends an email using SendGrid
func (p *SendGridEmailProvider) SendEmail(ctx context.Context, email *Email) error {
	from := mail.NewEmail("Snapgram", p.from)
	to := mail.NewEmail("", email.To)

	message := mail.NewSingleEmail(from, email.Subject, to, email.Body, "")
	client := sendgrid.NewSendClient(p.apiKey)

	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("SendGrid returned error status: %d", response.StatusCode)
	}

	return nil
}

// SMTPEmailProvider implements EmailProvider using SMTP
type SMTPEmailProvider struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPEmailProvider creates a new SMTP email provider
func NewSMTPEmailProvider(host, port, username, password, from string) EmailProvider {
	return &SMTPEmailProvider{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendEmail sends a plain text email using SMTP
func (p *SMTPEmailProvider) SendEmail(ctx context.Context, email *Email) error {
	message := fmt.Sprintf("From: %s\r\n", p.from)
	message += fmt.Sprintf("To: %s\r\n", email.To)
	message += fmt.Sprintf("Subject: %s\r\n", email.Subject)
	message += "\r\n"
	message += email.Body

	auth := smtp.PlainAuth("", p.username, p.password, p.host)
	addr := fmt.Sprintf("%s:%s", p.host, p.port)

	if err := smtp.SendMail(addr, auth, p.from, []string{email.To}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// MockEmailProvider implements EmailProvider for development and tests
type MockEmailProvider struct {
	SentEmails []Email
}

// NewMockEmailProvider creates a new mock email provider
func NewMockEmailProvider() *MockEmailProvider {
	return &MockEmailProvider{
		SentEmails: make([]Email, 0),
	}
}

// SendEmail records the email and logs it instead of sending
func (p *MockEmailProvider) SendEmail(ctx context.Context, email *Email) error {
	p.SentEmails = append(p.SentEmails, *email)
	log.Printf("📧 [mock email] to=%s subject=%q", email.To, email.Subject)
	return nil
}
