package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultEmailJSEndpoint is the EmailJS REST send endpoint.
const DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// maxReasonBytes caps how much of an error body is kept as the reason.
const maxReasonBytes = 512

// EmailJSConfig holds the pre-shared identifiers for an EmailJS template.
// PrivateKey is only needed when the account enforces strict mode, which
// is the usual setup for server-side sends.
type EmailJSConfig struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	Endpoint   string
	Timeout    time.Duration // zero means no client-side timeout
}

// EmailJS sends messages through the EmailJS REST API.
type EmailJS struct {
	cfg    EmailJSConfig
	client *http.Client
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
	AccessToken    string            `json:"accessToken,omitempty"`
}

// NewEmailJS validates cfg and returns a sender. client may be nil.
func NewEmailJS(cfg EmailJSConfig, client *http.Client) (*EmailJS, error) {
	var missing []string
	if cfg.ServiceID == "" {
		missing = append(missing, "service id")
	}
	if cfg.TemplateID == "" {
		missing = append(missing, "template id")
	}
	if cfg.PublicKey == "" {
		missing = append(missing, "public key")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: emailjs %s missing", ErrNotConfigured, strings.Join(missing, ", "))
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEmailJSEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &EmailJS{cfg: cfg, client: client}, nil
}

func (e *EmailJS) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(emailJSRequest{
		ServiceID:  e.cfg.ServiceID,
		TemplateID: e.cfg.TemplateID,
		UserID:     e.cfg.PublicKey,
		TemplateParams: map[string]string{
			"name":    msg.Name,
			"email":   msg.Email,
			"message": msg.Message,
		},
		AccessToken: e.cfg.PrivateKey,
	})
	if err != nil {
		return failed(fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return failed(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return failed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		reason, _ := io.ReadAll(io.LimitReader(resp.Body, maxReasonBytes))
		return failed(fmt.Errorf("emailjs status %d: %s", resp.StatusCode, strings.TrimSpace(string(reason))))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
