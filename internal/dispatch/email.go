package dispatch

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// ResendSender delivers campaign messages over email through Resend.
type ResendSender struct {
	client *resend.Client
	from   string
	logger *zap.Logger
}

func NewResendSender(apiKey, from string, logger *zap.Logger) *ResendSender {
	s := &ResendSender{from: from, logger: logger}
	if apiKey == "" {
		return s
	}
	s.client = resend.NewClient(apiKey)
	return s
}

func (s *ResendSender) SendEmail(ctx context.Context, to, subject, body string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email sender not configured")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend email send failed: %w", err)
	}

	s.logger.Info("email sent",
		zap.String("to", to),
		zap.String("id", sent.Id))
	return nil
}

func (s *ResendSender) Name() string {
	return "email"
}

func (s *ResendSender) IsConfigured() bool {
	return s.client != nil && s.from != ""
}
