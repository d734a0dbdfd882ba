// mailer доставляет одноразовые коды подтверждения.
//
// LogSender - для local/dev: пишет в лог факт отправки (код редактируется)
// и запоминает последний код на адрес, чтобы его можно было достать в тестах.
// SMTPSender - реальная отправка письма.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"sync"

	"github.com/pribylovaa/go-group-fitness/internal/models"
	"github.com/pribylovaa/go-group-fitness/pkg/log"
	"github.com/pribylovaa/go-group-fitness/pkg/redact"
)

//go:generate mockgen -destination=../../mocks/sender.go -package=mocks github.com/pribylovaa/go-group-fitness/internal/mailer Sender

// Sender - контракт доставки кода.
type Sender interface {
	SendCode(ctx context.Context, to string, purpose models.CodePurpose, code string) error
}

// LogSender не отправляет писем.
type LogSender struct {
	mu   sync.Mutex
	last map[string]string
}

func NewLogSender() *LogSender {
	return &LogSender{last: make(map[string]string)}
}

func (s *LogSender) SendCode(ctx context.Context, to string, purpose models.CodePurpose, code string) error {
	s.mu.Lock()
	s.last[strings.ToLower(to)+"|"+string(purpose)] = code
	s.mu.Unlock()

	log.From(ctx).Info("confirmation_code_sent",
		slog.String("to", redact.Email(to)),
		slog.String("purpose", string(purpose)),
		slog.String("code", redact.Code()),
	)

	return nil
}

// LastCode возвращает последний код, отправленный на адрес для purpose.
func (s *LogSender) LastCode(to string, purpose models.CodePurpose) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.last[strings.ToLower(to)+"|"+string(purpose)]
	return code, ok
}

// SMTPConfig - параметры SMTP-сервера.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPSender отправляет письма через SMTP (PLAIN auth, если задан Username).
type SMTPSender struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	const op = "mailer.NewSMTPSender"

	if cfg.Host == "" || cfg.From == "" {
		return nil, fmt.Errorf("%s: smtp host and from are required", op)
	}

	return &SMTPSender{cfg: cfg, send: smtp.SendMail}, nil
}

func (s *SMTPSender) SendCode(ctx context.Context, to string, purpose models.CodePurpose, code string) error {
	const op = "mailer.SMTPSender.SendCode"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	msg := buildMessage(s.cfg.From, to, purpose, code)
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)

	if err := s.send(addr, auth, s.cfg.From, []string{to}, msg); err != nil {
		log.From(ctx).Error("smtp_send_failed",
			slog.String("op", op),
			slog.String("to", redact.Email(to)),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func buildMessage(from, to string, purpose models.CodePurpose, code string) []byte {
	subject := "Confirm your email"
	body := "Your confirmation code: " + code
	if purpose == models.PurposePasswordReset {
		subject = "Reset your password"
		body = "Your password reset code: " + code
	}

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body + "\r\n")

	return []byte(b.String())
}
