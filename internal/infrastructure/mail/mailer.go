// Package mail envía los correos transaccionales por SMTP.
package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/MenuQR-api/internal/application/ports"
	"github.com/jhoicas/MenuQR-api/pkg/config"
)

var (
	_ ports.Mailer = (*SMTPMailer)(nil)
	_ ports.Mailer = (*LogMailer)(nil)
)

// SMTPMailer abre una conexión por mensaje; el volumen es bajo.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg ports.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.dialer.DialAndSend(buildMessage(m.from, msg))
}

func buildMessage(from string, msg ports.Email) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		gm.AddAlternative("text/html", msg.HTMLBody)
	}
	return gm
}

// LogMailer registra el correo en lugar de enviarlo (SMTP sin configurar).
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg ports.Email) error {
	m.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("email skipped: SMTP not configured")
	return nil
}

// New devuelve SMTPMailer si hay host configurado, LogMailer en otro caso.
func New(cfg config.SMTPConfig, log zerolog.Logger) ports.Mailer {
	if cfg.Host == "" {
		return NewLogMailer(log)
	}
	return NewSMTPMailer(cfg)
}

// Describe resume el destino para los logs de arranque.
func Describe(cfg config.SMTPConfig) string {
	if cfg.Host == "" {
		return "disabled"
	}
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}
