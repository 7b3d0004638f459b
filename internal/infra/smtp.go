package infra

import (
	"fmt"
	"net/smtp"

	"github.com/ZekuMG/rebu-cotillon-system/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends the closure reports over plain-auth SMTP using
// jordan-wright/email for MIME assembly and attachments.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendReporte mails a plain-text report, attaching the PDF when a path
// is given.
func (m *Mailer) SendReporte(to, subject, body, pdfPath string) error {
	msg := email.NewEmail()
	msg.From = m.user
	msg.To = []string{to}
	msg.Subject = subject
	msg.Text = []byte(body)

	if pdfPath != "" {
		if _, err := msg.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: attach %s: %w", pdfPath, err)
		}
	}

	return msg.Send(m.addr, smtp.PlainAuth("", m.user, m.password, m.host))
}
