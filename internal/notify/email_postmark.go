package notify

import (
	"context"
	"fmt"

	"github.com/mrz1836/postmark"

	"github.com/togetherfinance/lead-intake/pkg/logging"
)

// PostmarkSender sends emails via Postmark's transactional API.
type PostmarkSender struct {
	client    *postmark.Client
	fromEmail string
	fromName  string
	logger    *logging.Logger
}

// PostmarkConfig holds configuration for Postmark.
type PostmarkConfig struct {
	ServerToken  string
	AccountToken string
	FromEmail    string
	FromName     string
}

// NewPostmarkSender creates a new Postmark email sender. Returns nil when the
// server token is missing.
func NewPostmarkSender(cfg PostmarkConfig, logger *logging.Logger) *PostmarkSender {
	if cfg.ServerToken == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FromName == "" {
		cfg.FromName = "Together Finance"
	}
	return &PostmarkSender{
		client:    postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

// Send sends an email via Postmark.
func (s *PostmarkSender) Send(ctx context.Context, msg EmailMessage) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("notify: postmark client not configured")
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail),
		To:       msg.To,
		ReplyTo:  msg.ReplyTo,
		Subject:  msg.Subject,
		TextBody: msg.Body,
		HTMLBody: msg.HTML,
	})
	if err != nil {
		s.logger.Error("postmark send failed", "error", err, "to", msg.To)
		return fmt.Errorf("notify: postmark send failed: %w", err)
	}
	if resp.ErrorCode > 0 {
		s.logger.Error("postmark returned error code", "code", resp.ErrorCode, "message", resp.Message, "to", msg.To)
		return fmt.Errorf("notify: postmark error %d", resp.ErrorCode)
	}

	s.logger.Info("email sent via postmark", "to", msg.To, "subject", msg.Subject, "message_id", resp.MessageID)
	return nil
}

var _ EmailSender = (*PostmarkSender)(nil)
