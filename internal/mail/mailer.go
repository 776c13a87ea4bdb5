package mail

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog/log"

	"github.com/rotaforte/frota/internal/config"
)

// Mailer envia mensagens transacionais (confirmação, reset de senha).
type Mailer interface {
	SendConfirmation(to, confirmURL string) error
	SendPasswordReset(to, resetURL string) error
}

// SMTPMailer envia e-mail via servidor SMTP configurado.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// New devolve o mailer adequado à configuração: SMTP quando completo,
// caso contrário um no-op que apenas loga.
func New(cfg config.SMTPConfig) Mailer {
	m := &SMTPMailer{cfg: cfg}
	if !m.configured() {
		log.Warn().Msg("SMTP não configurado; e-mails serão apenas logados")
		return NoopMailer{}
	}
	return m
}

func (m *SMTPMailer) configured() bool {
	return m.cfg.Host != "" && m.cfg.Username != "" && m.cfg.Password != "" && m.cfg.From != ""
}

func (m *SMTPMailer) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.cfg.From, to, subject, body)

	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg))
}

// SendConfirmation envia o link de confirmação de cadastro.
func (m *SMTPMailer) SendConfirmation(to, confirmURL string) error {
	body := fmt.Sprintf(`
        <html>
        <body>
            <h2>Confirme seu cadastro</h2>
            <p>Seu acesso ao painel da transportadora foi criado.</p>
            <p><a href="%s">Clique aqui para confirmar seu e-mail</a></p>
            <p>Se você não fez este cadastro, ignore esta mensagem.</p>
        </body>
        </html>
    `, confirmURL)

	return m.send(to, "Confirme seu e-mail", body)
}

// SendPasswordReset envia o link de redefinição de senha.
func (m *SMTPMailer) SendPasswordReset(to, resetURL string) error {
	body := fmt.Sprintf(`
        <html>
        <body>
            <h2>Redefinição de senha</h2>
            <p>Recebemos um pedido para redefinir sua senha.</p>
            <p><a href="%s">Clique aqui para escolher uma nova senha</a></p>
            <p>Se você não pediu a redefinição, ignore esta mensagem.</p>
        </body>
        </html>
    `, resetURL)

	return m.send(to, "Redefinição de senha", body)
}

// NoopMailer descarta mensagens; útil em desenvolvimento e testes.
type NoopMailer struct{}

func (NoopMailer) SendConfirmation(to, confirmURL string) error {
	log.Info().Str("to", to).Str("url", confirmURL).Msg("confirmação de e-mail (noop)")
	return nil
}

func (NoopMailer) SendPasswordReset(to, resetURL string) error {
	log.Info().Str("to", to).Str("url", resetURL).Msg("reset de senha (noop)")
	return nil
}
