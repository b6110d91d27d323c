// Package chat proxies visitor messages to the storefront's chat backend.
// It is a collaborator of the catalog page, not part of the filtering core.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/jaumet/avook-catalog/pkg/errors"
)

// maxReplyBytes caps the backend response size.
const maxReplyBytes = 1 << 20

// Poster is the slice of the HTTP client the chat client needs.
type Poster interface {
	Post(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error)
}

// Client posts one message and returns one reply. No history is kept here;
// the backend owns the conversation.
type Client struct {
	http Poster
	url  string
}

// NewClient builds a chat client for the backend endpoint.
func NewClient(http Poster, url string) *Client {
	return &Client{http: http, url: url}
}

type messageBody struct {
	Message string `json:"message"`
}

type replyBody struct {
	Reply string `json:"reply"`
}

// Send posts message and returns the backend's reply. Failures map to an
// unavailable error so the handler renders an inline message, never a
// blocking dialog.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	payload, err := json.Marshal(messageBody{Message: message})
	if err != nil {
		return "", fmt.Errorf("marshal chat message: %w", err)
	}

	resp, err := c.http.Post(ctx, c.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", apperrors.Unavailable("chat backend", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.Unavailable("chat backend", fmt.Errorf("unexpected status %s", resp.Status))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return "", fmt.Errorf("read chat reply: %w", err)
	}

	var reply replyBody
	if err := json.Unmarshal(raw, &reply); err != nil {
		return "", fmt.Errorf("parse chat reply: %w", err)
	}
	return reply.Reply, nil
}
