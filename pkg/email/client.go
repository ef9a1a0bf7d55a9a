// Package email delivers notifications over SMTP. The client implements the
// consumer's Transport interface: one plain-text message per notification,
// with the subject line supplied by the caller.
package email

import (
	"context"
	"time"

	"gopkg.in/mail.v2"
)

// Client sends notification e-mails through a single SMTP account.
type Client struct {
	dialer *mail.Dialer
	from   string
}

// NewClient creates an e-mail client for the given SMTP endpoint and sender
// address.
func NewClient(smtpHost string, smtpPort int, username, password, from string) *Client {
	dialer := mail.NewDialer(smtpHost, smtpPort, username, password)
	dialer.Timeout = 10 * time.Second

	return &Client{
		dialer: dialer,
		from:   from,
	}
}

// Send delivers one plain-text message. The SMTP dial honours the dialer
// timeout; ctx cancellation short-circuits before the dial starts.
func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := mail.NewMessage()
	message.SetHeader("From", c.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	return c.dialer.DialAndSend(message)
}
