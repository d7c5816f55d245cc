package workflows

import "context"

// Mailer port (interface untuk notification/email service)
type Mailer interface {
	Send(ctx context.Context, to, subject, bodyHTML string, attachments []string) error
}
