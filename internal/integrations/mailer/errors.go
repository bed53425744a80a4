package mailer

import "errors"

var (
	// ErrSendFailed is returned when the SMTP relay refuses the message.
	// Callers treat notification as best-effort and never fail the
	// underlying operation on it.
	ErrSendFailed = errors.New("mailer: failed to send email")
)
