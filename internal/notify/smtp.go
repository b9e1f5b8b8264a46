package notify

import (
	"context"
	"fmt"

	"github.com/shenikar/golden_hour_dispatch/internal/config"
	"gopkg.in/gomail.v2"
)

// SMTPTransport доставляет оповещения по электронной почте
type SMTPTransport struct {
	cfg    *config.Config
	dialer *gomail.Dialer
}

func NewSMTPTransport(cfg *config.Config) *SMTPTransport {
	return &SMTPTransport{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

// Deliver отправляет одно письмо. Отправка ограничена дедлайном контекста,
// чтобы зависший SMTP-сервер не блокировал конвейер.
func (t *SMTPTransport) Deliver(ctx context.Context, recipient, subject, body string) error {
	if t.cfg.SMTPHost == "" {
		return fmt.Errorf("smtp is not configured")
	}
	if recipient == "" {
		return fmt.Errorf("recipient address is empty")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", t.cfg.SMTPUsername)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	done := make(chan error, 1)
	go func() {
		done <- t.dialer.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("smtp delivery aborted: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}
}
