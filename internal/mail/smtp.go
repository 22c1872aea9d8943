package mail

import (
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// SMTPConfig holds the connection settings for the outbound mail server.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AppName  string
}

// SMTPSender sends account emails over SMTP.
type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) SendVerificationEmail(to, code string) error {
	subject := fmt.Sprintf("Verify your %s account", s.cfg.AppName)
	body := fmt.Sprintf(
		"Your %s verification code is: %s\n\nThis code will expire in 15 minutes.",
		s.cfg.AppName, code,
	)
	return s.send(to, subject, body)
}

func (s *SMTPSender) SendPasswordResetEmail(to, code string) error {
	body := fmt.Sprintf(
		"You have requested to reset your password. Use the following code to proceed: %s\n\n"+
			"This code will expire in 15 minutes.\n\n"+
			"If you did not request this password reset, please ignore this email.",
		code,
	)
	return s.send(to, "Reset Your Password", body)
}

func (s *SMTPSender) SendWelcomeEmail(to, name string) error {
	subject := fmt.Sprintf("Welcome to %s!", s.cfg.AppName)
	body := fmt.Sprintf("Hi %s,\n\nYour email has been verified. Welcome aboard!", name)
	return s.send(to, subject, body)
}

func (s *SMTPSender) send(to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("failed to build smtp client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
