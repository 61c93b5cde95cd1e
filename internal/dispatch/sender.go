package dispatch

import "context"

// Sender delivers one campaign message to one recipient over a channel.
type Sender interface {
	Send(ctx context.Context, to, body string) error
	// Name returns the channel name (for logging)
	Name() string
	// IsConfigured returns true if the sender has credentials
	IsConfigured() bool
}

// EmailSender is the email channel; unlike SMS/WhatsApp it carries a subject.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
	Name() string
	IsConfigured() bool
}
