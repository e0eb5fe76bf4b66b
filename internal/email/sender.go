// Package email delivers transactional mail over SMTP. Delivery is
// decoupled from the request path by a Dispatcher so that registration never
// waits on, or fails because of, the mail server.
package email

import (
	"log/slog"

	"gopkg.in/gomail.v2"
)

// Message is one outbound email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Sender delivers a single message.
type Sender interface {
	Send(msg *Message) error
}

// SMTPSender delivers mail through an SMTP server.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(msg *Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)
	return s.dialer.DialAndSend(m)
}

// LogSender logs messages instead of delivering them. Used when no SMTP
// host is configured, typically in development.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(msg *Message) error {
	s.logger.Info("SMTP not configured, logging email instead",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject))
	return nil
}
