// Package twilio sends dispatched alerts as SMS messages via the Twilio
// Messages API. Credentials come from configuration and are sent via HTTP
// basic auth, never embedded in the URL.
package twilio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/linnemanlabs/skywarn/internal/evidence"
)

const (
	defaultBaseURL = "https://api.twilio.com"
	httpTimeout    = 10 * time.Second
)

// Notifier delivers alert bodies as SMS through a Twilio account.
type Notifier struct {
	baseURL    string
	accountSID string
	authToken  string
	from       string
	to         string
	client     *http.Client
}

// New creates a Twilio notifier. An empty baseURL means the public API.
func New(baseURL, accountSID, authToken, from, to string) *Notifier {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Notifier{
		baseURL:    baseURL,
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		to:         to,
		client:     &http.Client{Timeout: httpTimeout},
	}
}

// Send posts the alert body to the Messages endpoint for the configured
// account. Any status outside 2xx is an error.
func (n *Notifier) Send(ctx context.Context, alert evidence.Alert) error {
	form := url.Values{}
	form.Set("To", n.to)
	form.Set("From", n.from)
	form.Set("Body", alert.Body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", n.baseURL, n.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("twilio: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(n.accountSID, n.authToken)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio: post message: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio: api returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
