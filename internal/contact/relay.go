package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultRelayEndpoint is the EmailJS REST send endpoint
const DefaultRelayEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Credentials identify the relay account and template
type Credentials struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
}

// Complete reports whether every credential is set
func (c Credentials) Complete() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != ""
}

// Payload is the template data sent to the relay
type Payload struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Message   string `json:"message"`
	ToName    string `json:"to_name"`
}

// Relay delivers a message through a transactional email service.
// Only success or failure is observable.
type Relay interface {
	Send(ctx context.Context, creds Credentials, p Payload) error
}

// EmailJS sends messages through the EmailJS REST API
type EmailJS struct {
	endpoint string
	client   *http.Client
}

// NewEmailJS creates a relay client. An empty endpoint uses the public API;
// a nil client uses http.DefaultClient. No timeout is applied beyond ctx.
func NewEmailJS(endpoint string, client *http.Client) *EmailJS {
	if endpoint == "" {
		endpoint = DefaultRelayEndpoint
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &EmailJS{endpoint: endpoint, client: client}
}

type emailJSRequest struct {
	ServiceID      string  `json:"service_id"`
	TemplateID     string  `json:"template_id"`
	UserID         string  `json:"user_id"`
	TemplateParams Payload `json:"template_params"`
}

// Send implements Relay
func (e *EmailJS) Send(ctx context.Context, creds Credentials, p Payload) error {
	body, err := json.Marshal(emailJSRequest{
		ServiceID:      creds.ServiceID,
		TemplateID:     creds.TemplateID,
		UserID:         creds.PublicKey,
		TemplateParams: p,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &RelayError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	return nil
}
