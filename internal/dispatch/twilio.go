package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// TwilioSender sends campaign messages through the Twilio messaging API,
// covering both the SMS and WhatsApp channels.
type TwilioSender struct {
	client   *twilio.RestClient
	from     string
	channel  string
	whatsapp bool
	logger   *zap.Logger
}

// NewSMSSender creates the SMS channel sender. Returns an unconfigured
// sender when credentials are missing.
func NewSMSSender(accountSID, authToken, from string, logger *zap.Logger) *TwilioSender {
	return newTwilioSender(accountSID, authToken, from, "sms", false, logger)
}

// NewWhatsAppSender creates the WhatsApp channel sender. Recipient and
// sender numbers are prefixed with "whatsapp:" as Twilio expects.
func NewWhatsAppSender(accountSID, authToken, from string, logger *zap.Logger) *TwilioSender {
	return newTwilioSender(accountSID, authToken, from, "whatsapp", true, logger)
}

func newTwilioSender(accountSID, authToken, from, channel string, whatsapp bool, logger *zap.Logger) *TwilioSender {
	s := &TwilioSender{from: from, channel: channel, whatsapp: whatsapp, logger: logger}
	if accountSID == "" || authToken == "" {
		return s
	}
	s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return s
}

func (s *TwilioSender) Send(ctx context.Context, to, body string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("%s sender not configured", s.channel)
	}
	if s.whatsapp {
		to = ensureWhatsAppPrefix(to)
	}

	params := &openapi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(to)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio %s send failed: %w", s.channel, err)
	}

	s.logger.Info("message sent",
		zap.String("channel", s.channel),
		zap.String("to", to))
	return nil
}

func (s *TwilioSender) Name() string {
	return s.channel
}

func (s *TwilioSender) IsConfigured() bool {
	return s.client != nil && s.from != ""
}

func ensureWhatsAppPrefix(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
