// Package mail abstracts outbound email delivery. The service only ever
// sends plain-text messages (confirmation links), so the interface stays
// deliberately small.
package mail

import "context"

// Message is a plain-text outbound email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Mailer delivers a message. Implementations are fire-and-forget from the
// caller's point of view: an error means the transport rejected the send,
// nothing is retried here.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
