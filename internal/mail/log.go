package mail

import "log/slog"

// LogSender records that an email would have been sent. Used in development
// when no SMTP server is configured. Codes are deliberately not logged.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (LogSender) SendVerificationEmail(to, code string) error {
	slog.Info("verification email suppressed (no SMTP configured)", "to", to)
	return nil
}

func (LogSender) SendPasswordResetEmail(to, code string) error {
	slog.Info("password reset email suppressed (no SMTP configured)", "to", to)
	return nil
}

func (LogSender) SendWelcomeEmail(to, name string) error {
	slog.Info("welcome email suppressed (no SMTP configured)", "to", to)
	return nil
}
