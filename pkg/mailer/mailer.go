package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sfdsa-platform/backend/config"
)

type Mail struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

type smtpMailer struct {
	cfg config.EmailConfigs
}

func NewSMTPMailer(cfg config.EmailConfigs) *smtpMailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(ctx context.Context, mail Mail) error {
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", m.cfg.From),
		fmt.Sprintf("To: %s", mail.To),
		fmt.Sprintf("Subject: %s", mail.Subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		mail.Body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)
	return smtp.SendMail(addr, auth, m.cfg.From, []string{mail.To}, []byte(msg))
}
