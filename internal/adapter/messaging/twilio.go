// Package messaging delivers outbound WhatsApp messages through the Twilio
// REST API.
package messaging

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioMessenger sends WhatsApp messages via Twilio. Credentials are
// checked at send time, mirroring the best-effort delivery contract: an
// unconfigured messenger fails the send, and the pipeline logs and moves on.
type TwilioMessenger struct {
	accountSID string
	authToken  string
	from       string // e.g. "whatsapp:+14155238886"
	apiBase    string
	httpClient *http.Client
}

func NewTwilioMessenger(accountSID, authToken, from string) *TwilioMessenger {
	return &TwilioMessenger{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		apiBase:    twilioAPIBase,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *TwilioMessenger) Send(ctx context.Context, to, body string) error {
	if t.accountSID == "" || t.authToken == "" {
		return fmt.Errorf("twilio credentials not configured")
	}
	if t.from == "" {
		return fmt.Errorf("twilio whatsapp sender not configured")
	}

	if !strings.HasPrefix(to, "whatsapp:") {
		to = "whatsapp:" + to
	}

	form := url.Values{}
	form.Set("From", t.from)
	form.Set("To", to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.apiBase, t.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build twilio request: %w", err)
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio responded %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
