package mailer

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	Domain string
	APIKey string
	Sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender}
}

// Send sends a plain-text email via Mailgun.
func (m *Mailgun) Send(ctx context.Context, to, subject, text string) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.Sender, subject, text, to)
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}

// Render produces the subject and body for a notification job.
func Render(job NotificationJob) (subject, text string, err error) {
	switch job.Kind {
	case KindEmailChanged:
		subject = "Your account email address was changed"
		text = fmt.Sprintf(
			"The email address on your account was changed to %s.\n\n"+
				"If you made this change, no action is needed. If you did not, contact support immediately.\n",
			job.NewEmail)
		return subject, text, nil
	default:
		return "", "", fmt.Errorf("unknown notice kind %q", job.Kind)
	}
}
