package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/togetherfinance/lead-intake/pkg/logging"
)

const sendGridMailSendURL = "https://api.sendgrid.com/v3/mail/send"

// RESTSender sends emails by calling the SendGrid v3 mail/send API directly
// with a bearer token, without pulling in the SDK. It is wire-compatible with
// SendGridSender and exists so either client shape can sit behind EmailSender.
type RESTSender struct {
	apiKey     string
	fromEmail  string
	fromName   string
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// RESTSenderOption customizes a RESTSender.
type RESTSenderOption func(*RESTSender)

// WithBaseURL overrides the mail/send endpoint, primarily for tests.
func WithBaseURL(url string) RESTSenderOption {
	return func(s *RESTSender) { s.baseURL = url }
}

// WithHTTPClient overrides the HTTP client used for delivery calls.
func WithHTTPClient(c *http.Client) RESTSenderOption {
	return func(s *RESTSender) { s.httpClient = c }
}

// NewRESTSender creates a sender backed by the raw SendGrid REST API.
// Returns nil when the API key is missing.
func NewRESTSender(cfg SendGridConfig, logger *logging.Logger, opts ...RESTSenderOption) *RESTSender {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FromName == "" {
		cfg.FromName = "Together Finance"
	}
	s := &RESTSender{
		apiKey:     cfg.APIKey,
		fromEmail:  cfg.FromEmail,
		fromName:   cfg.FromName,
		baseURL:    sendGridMailSendURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sgPersonalization struct {
	To      []sgAddress `json:"to"`
	Subject string      `json:"subject"`
}

type sgPayload struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	ReplyTo          *sgAddress          `json:"reply_to,omitempty"`
	Content          []sgContent         `json:"content"`
}

// Send delivers the message through the SendGrid REST API.
func (s *RESTSender) Send(ctx context.Context, msg EmailMessage) error {
	if s == nil || s.apiKey == "" {
		return fmt.Errorf("notify: sendgrid rest sender not configured")
	}

	payload := sgPayload{
		Personalizations: []sgPersonalization{{
			To:      []sgAddress{{Email: msg.To, Name: msg.ToName}},
			Subject: msg.Subject,
		}},
		From: sgAddress{Email: s.fromEmail, Name: s.fromName},
	}
	if msg.ReplyTo != "" {
		payload.ReplyTo = &sgAddress{Email: msg.ReplyTo, Name: msg.ReplyToName}
	}
	// SendGrid requires text/plain before text/html.
	if msg.Body != "" {
		payload.Content = append(payload.Content, sgContent{Type: "text/plain", Value: msg.Body})
	}
	if msg.HTML != "" {
		payload.Content = append(payload.Content, sgContent{Type: "text/html", Value: msg.HTML})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notify: sendgrid payload marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: sendgrid request build: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("sendgrid rest send failed", "error", err, "to", msg.To)
		return fmt.Errorf("notify: sendgrid rest send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.Error("sendgrid rest returned error status", "status", resp.StatusCode, "body", string(detail), "to", msg.To)
		return fmt.Errorf("notify: sendgrid rest returned status %d", resp.StatusCode)
	}

	s.logger.Info("email sent via sendgrid rest", "to", msg.To, "subject", msg.Subject, "status", resp.StatusCode)
	return nil
}

var _ EmailSender = (*RESTSender)(nil)
