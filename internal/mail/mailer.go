package mail

import (
	"fmt"
	"net/smtp"

	"edusite/internal/config"
	"edusite/internal/logger"
)

// Notifier sends operational notifications. Sends are fire-and-forget:
// a failing upstream mail server must never fail the request that
// triggered the notification.
type Notifier interface {
	Notify(subject, body string)
}

// SMTPNotifier delivers notifications over plain SMTP.
type SMTPNotifier struct {
	cfg config.SMTPConfig
	log logger.Logger
}

// NewSMTPNotifier creates a new SMTPNotifier.
func NewSMTPNotifier(cfg config.SMTPConfig, log logger.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, log: log}
}

// Notify sends the message in a background goroutine. Errors are
// logged and dropped; there is no retry.
func (n *SMTPNotifier) Notify(subject, body string) {
	if n.cfg.Host == "" || n.cfg.To == "" {
		n.log.Debug("SMTP not configured, dropping notification")
		return
	}
	go func() {
		if err := n.send(subject, body); err != nil {
			n.log.Error(err, "Failed to send notification email")
		}
	}()
}

func (n *SMTPNotifier) send(subject, body string) error {
	message := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n"+
		"%s", n.cfg.From, n.cfg.To, subject, body)

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%s", n.cfg.Host, n.cfg.Port)

	return smtp.SendMail(addr, auth, n.cfg.From, []string{n.cfg.To}, []byte(message))
}
