package interfaces

import "context"

// IEmailSender delivers HTML email to clients.
type IEmailSender interface {
	SendHTML(ctx context.Context, to, subject, htmlBody string) error
}

// IWhatsAppSender delivers WhatsApp text messages to clients.
type IWhatsAppSender interface {
	Send(ctx context.Context, to, body string) (string, error)
}
