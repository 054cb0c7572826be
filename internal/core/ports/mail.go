package ports

// OutboundEmail is a single message handed to the mail queue.
type OutboundEmail struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers a single message synchronously.
type Mailer interface {
	Send(msg OutboundEmail) error
}

// MailQueue accepts messages for asynchronous delivery. Enqueue never fails;
// delivery errors are logged by the queue, not surfaced to callers.
type MailQueue interface {
	Enqueue(msg OutboundEmail)
}
