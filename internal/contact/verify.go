package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultVerifyEndpoint is Google's reCAPTCHA siteverify endpoint
const DefaultVerifyEndpoint = "https://www.google.com/recaptcha/api/siteverify"

// Verifier checks a human-verification token server side
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// Widget is the client-side verification control. It owns token issuance;
// the form only asks it to start over.
type Widget interface {
	Reset()
}

// WidgetFunc adapts a func to Widget
type WidgetFunc func()

// Reset implements Widget
func (f WidgetFunc) Reset() { f() }

// Recaptcha verifies tokens against the siteverify API
type Recaptcha struct {
	secret   string
	endpoint string
	client   *http.Client
}

// NewRecaptcha creates a verifier. It returns nil when secret is empty so
// that callers can skip server-side verification.
func NewRecaptcha(secret, endpoint string, client *http.Client) *Recaptcha {
	if secret == "" {
		return nil
	}
	if endpoint == "" {
		endpoint = DefaultVerifyEndpoint
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Recaptcha{secret: secret, endpoint: endpoint, client: client}
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify implements Verifier
func (r *Recaptcha) Verify(ctx context.Context, token, remoteIP string) error {
	form := url.Values{"secret": {r.secret}, "response": {token}}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("verification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("verification request failed: status %d", resp.StatusCode)
	}

	var out siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("failed to decode verification response: %w", err)
	}
	if !out.Success {
		return fmt.Errorf("%w: %s", ErrTokenRejected, strings.Join(out.ErrorCodes, ","))
	}
	return nil
}
