package main

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/Zachkp/portfolio-admin/internal/config"
	"github.com/Zachkp/portfolio-admin/internal/inbox"
)

// mailer forwards new contact messages to the site owner.
type mailer struct {
	cfg  config.SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func newMailer(cfg config.SMTPConfig) *mailer {
	return &mailer{cfg: cfg, send: smtp.SendMail}
}

func (m *mailer) enabled() bool {
	return m != nil && m.cfg.Enabled()
}

func (m *mailer) recipient() string {
	if m.cfg.ToEmail != "" {
		return m.cfg.ToEmail
	}
	return m.cfg.User
}

func (m *mailer) notify(msg inbox.Message) error {
	if !m.enabled() {
		return fmt.Errorf("SMTP credentials not configured")
	}
	to := m.recipient()
	subject := fmt.Sprintf("Portfolio Contact: %s", msg.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Phone: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Phone, msg.Message)

	raw := []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + msg.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{to}, raw); err != nil {
		return fmt.Errorf("send contact email: %w", err)
	}
	log.Printf("Contact email sent for message %s", msg.ID)
	return nil
}
