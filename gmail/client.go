// Package gmail is a minimal client for the Gmail users.messages.send
// API. Credentials are applied per call; the client itself holds no
// mutable authentication state.
package gmail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	errs "github.com/jrsteele09/go-gmail-sender/internal/errors"
)

// DefaultBaseURL is the production Gmail API host.
const DefaultBaseURL = "https://gmail.googleapis.com"

// sendPath is the users.messages.send endpoint for the authenticated user.
const sendPath = "/gmail/v1/users/me/messages/send"

type Client struct {
	baseURL string
}

func NewClient() *Client {
	return &Client{baseURL: DefaultBaseURL}
}

// NewClientWithBaseURL builds a client against an explicit API host.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Send delivers msg through the Gmail API using credential. The
// authenticated HTTP client is request-scoped: the credential rides this
// call only and is never attached to shared state, so concurrent sends
// with different credentials cannot race. One attempt, no retries.
func (c *Client) Send(ctx context.Context, credential *oauth2.Token, msg Message) error {
	if credential == nil {
		return errs.ErrNoCredential
	}

	payload, err := json.Marshal(map[string]string{"raw": msg.EncodeRaw()})
	if err != nil {
		return fmt.Errorf("encode send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(credential))
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s: %s", errs.ErrSendRejected, resp.Status, strings.TrimSpace(string(detail)))
	}
	return nil
}
