package infra

import (
	"fmt"
	"net/smtp"

	"github.com/Fineboy94449/smoke/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends statement emails through a plain-auth SMTP relay.
type Mailer struct {
	addr string
	from string
	auth smtp.Auth
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		from: cfg.SMTPUser,
		auth: smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost),
	}
}

// Send delivers a plain-text email, optionally attaching the statement
// PDF at pdfPath.
func (m *Mailer) Send(to, subject, body, pdfPath string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if pdfPath != "" {
		if _, err := e.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: attach statement: %w", err)
		}
	}
	return e.Send(m.addr, m.auth)
}
