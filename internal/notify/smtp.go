package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/qorax-ai/sales-agent-platform/internal/model"
)

// SMTPConfig holds the mail relay settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	SalesTeam []string
}

// SMTPNotifier sends notifications through a plain SMTP relay.
type SMTPNotifier struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTP creates a notifier for the given relay.
func NewSMTP(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, send: smtp.SendMail}
}

func (n *SMTPNotifier) addr() string {
	return fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
}

func (n *SMTPNotifier) auth() smtp.Auth {
	if n.cfg.Username == "" {
		return nil
	}
	return smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
}

// SendWelcome emails the lead.
func (n *SMTPNotifier) SendWelcome(ctx context.Context, lead *model.Lead) error {
	if lead.Email == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	name := lead.Name
	if name == "" {
		name = "Hola"
	}
	body := fmt.Sprintf(
		"Hola %s,\r\n\r\nGracias por tu interés en nuestros agentes de IA. Un asesor te contactará muy pronto para agendar tu demo.\r\n\r\nSaludos,\r\nEl equipo de Qorax AI\r\n",
		name,
	)
	msg := buildMessage(n.cfg.From, []string{lead.Email}, "¡Gracias por tu interés! 🤖", body)
	return n.send(n.addr(), n.auth(), n.cfg.From, []string{lead.Email}, msg)
}

// NotifySalesTeam alerts the internal team.
func (n *SMTPNotifier) NotifySalesTeam(ctx context.Context, lead *model.Lead) error {
	if len(n.cfg.SalesTeam) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Nuevo lead capturado\r\n\r\nNombre: %s\r\nCorreo: %s\r\nTeléfono: %s\r\nGiro: %s\r\nUrgencia: %s\r\nCalificación: %.0f\r\nSesión: %s\r\n",
		lead.Name, lead.Email, lead.Phone, lead.Industry, lead.Urgency, lead.QualificationScore, lead.SessionID,
	)
	subject := fmt.Sprintf("Nuevo lead: %s (%.0f pts)", orUnknown(lead.Name), lead.QualificationScore)
	msg := buildMessage(n.cfg.From, n.cfg.SalesTeam, subject, body)
	return n.send(n.addr(), n.auth(), n.cfg.From, n.cfg.SalesTeam, msg)
}

func buildMessage(from string, to []string, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func orUnknown(s string) string {
	if s == "" {
		return "sin nombre"
	}
	return s
}
