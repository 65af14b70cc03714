package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultEndpoint is the Expo push gateway URL.
const DefaultEndpoint = "https://exp.host/--/api/v2/push/send"

// Message is a single push notification payload for the Expo gateway.
type Message struct {
	To    string         `json:"to"`
	Sound string         `json:"sound,omitempty"`
	Title string         `json:"title,omitempty"`
	Body  string         `json:"body,omitempty"`
	Data  map[string]any `json:"data,omitempty"`
}

// ticketResponse is the gateway's per-message delivery receipt.
type ticketResponse struct {
	Data []struct {
		Status  string `json:"status"`
		ID      string `json:"id"`
		Message string `json:"message"`
	} `json:"data"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// Client sends push notifications through the Expo push gateway.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a push client. An empty endpoint uses the Expo default.
func NewClient(endpoint string, logger zerolog.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// IsValidToken reports whether a token looks like an Expo push token.
func IsValidToken(token string) bool {
	return strings.HasPrefix(token, "ExponentPushToken[") && strings.HasSuffix(token, "]")
}

// Send delivers a single push message. Invalid tokens are skipped without error
// so callers can fire and forget.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if !IsValidToken(msg.To) {
		c.logger.Debug().Str("token", msg.To).Msg("Skipping push for non-Expo token")
		return nil
	}

	payload, err := json.Marshal([]Message{msg})
	if err != nil {
		return fmt.Errorf("failed to marshal push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}

	var ticket ticketResponse
	if err := json.NewDecoder(resp.Body).Decode(&ticket); err != nil {
		return fmt.Errorf("failed to decode push response: %w", err)
	}

	for _, e := range ticket.Errors {
		return fmt.Errorf("push gateway error %s: %s", e.Code, e.Message)
	}
	for _, d := range ticket.Data {
		if d.Status == "error" {
			return fmt.Errorf("push delivery failed: %s", d.Message)
		}
	}

	return nil
}
