// Package telegram provides a simple client for sending notifications via Telegram.
//
// It allows creating a client with a bot token and sending messages to
// specified chat IDs, and is wired into the consumer as a delivery transport.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client represents a Telegram client used to send notifications.
type Client struct {
	token  string       // bot token for authentication
	client *http.Client // HTTP client used to make requests
}

// NewClient creates a new Telegram Client instance with the given bot token.
func NewClient(token string) *Client {
	return &Client{
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// sendMessageRequest represents the payload for the Telegram sendMessage API.
type sendMessageRequest struct {
	ChatID string `json:"chat_id"` // chat id to send message to
	Text   string `json:"text"`    // message text
}

// Send sends a notification message to the specified Telegram chat ID. The
// subject is folded into the message text since chats have no subject line.
//
// It sends an HTTP POST to the Telegram Bot API and returns an error if the
// request fails or the API responds with a non-200 status.
func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", c.token)

	text := body
	if subject != "" {
		text = subject + "\n\n" + body
	}

	payload, err := json.Marshal(sendMessageRequest{ChatID: to, Text: text})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error: %s", resp.Status)
	}

	return nil
}
