// internal/app/system/mailer/mailer.go

// Package mailer delivers transactional email (registration links,
// password resets) over SMTP. Outbound delivery runs behind a circuit
// breaker so a dead relay degrades to fast failures instead of stalled
// handlers.
package mailer

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Email is a single outbound message.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Config carries SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Mailer struct {
	cfg     Config
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Mailer {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return &Mailer{cfg: cfg, breaker: breaker, log: log}
}

// Send delivers the email through the relay. Returns
// gobreaker.ErrOpenState immediately while the breaker is open.
func (m *Mailer) Send(e Email) error {
	_, err := m.breaker.Execute(func() (any, error) {
		return nil, m.send(e)
	})
	if err != nil {
		m.log.Error("email delivery failed",
			zap.String("to", e.To),
			zap.String("subject", e.Subject),
			zap.Error(err))
		return err
	}
	m.log.Info("email sent",
		zap.String("to", e.To),
		zap.String("subject", e.Subject))
	return nil
}

func (m *Mailer) send(e Email) error {
	body := e.HTMLBody
	contentType := "text/html"
	if body == "" {
		body = e.TextBody
		contentType = "text/plain"
	}
	msg := []byte("Subject: " + e.Subject + "\r\n" +
		"From: " + m.cfg.From + "\r\n" +
		"To: " + e.To + "\r\n" +
		"Content-Type: " + contentType + "; charset=\"UTF-8\"\r\n\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{e.To}, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
