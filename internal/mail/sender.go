// Package mail delivers the transactional emails the identity flows depend
// on. Senders are fire-and-forget from the caller's perspective; failures are
// for logging, never for rolling back the triggering operation.
package mail

// Sender delivers account emails.
type Sender interface {
	SendVerificationEmail(to, code string) error
	SendPasswordResetEmail(to, code string) error
	SendWelcomeEmail(to, name string) error
}
