package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends HTML mail over SMTP.
type Mailer struct {
	From   string
	dialer *gomail.Dialer
}

func NewMailer(host string, port int, from, password string) *Mailer {
	return &Mailer{
		From:   from,
		dialer: gomail.NewDialer(host, port, from, password),
	}
}

// NewMessage builds the message SendEmail would deliver.
func (m *Mailer) NewMessage(to, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return msg
}

func (m *Mailer) SendEmail(to, subject, body string) error {
	msg := m.NewMessage(to, subject, body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		Logger.Errorf("failed to send email to %s", to)
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
