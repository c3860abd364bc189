// internal/notification/welcome.go

package notification

import (
	"context"
	"fmt"
)

// Mailer sends account lifecycle emails
type Mailer struct {
	provider EmailProvider
}

// NewMailer creates a mailer on top of the configured provider
func NewMailer(provider EmailProvider) *Mailer {
	return &Mailer{provider: provider}
}

// SendWelcome greets a freshly registered user
func (m *Mailer) SendWelcome(ctx context.Context, email, username string) error {
	return m.provider.SendEmail(ctx, &Email{
		To:      email,
		Subject: "Welcome to Snapgram",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour account is ready. Share your first photo and find people to follow.\n\nThe Snapgram Team",
			username,
		),
	})
}
