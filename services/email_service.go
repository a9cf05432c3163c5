package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"mixtrip-api/config"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
	}
}

// SendPasswordResetEmail delivers the reset link to the user. The link embeds
// the raw token; only its hash is stored server side.
func (es *EmailService) SendPasswordResetEmail(email, name, resetURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(es.config.FromEmail, es.config.FromName))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Reset your MixTrip password")
	m.SetBody("text/html", fmt.Sprintf(`
		<h2>Password Reset</h2>
		<p>Hi %s,</p>
		<p>We received a request to reset your password. Click the link below to choose a new one:</p>
		<p><a href="%s">%s</a></p>
		<p>The link expires in one hour. If you didn't request this, you can ignore this email.</p>
	`, name, resetURL, resetURL))

	return es.dialer.DialAndSend(m)
}
