package mailer

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"github.com/mailconf/internal/model"
)

// Mailer delivers test messages using per-organization SMTP settings.
// Unlike a conventional mailer it carries no configuration of its own;
// every send is parameterized by a stored EmailConfig.
type Mailer struct {
	// sendFn performs the actual delivery, swappable in tests.
	sendFn func(cfg *model.EmailConfig, msg []byte) error
}

func New() *Mailer {
	m := &Mailer{}
	m.sendFn = m.send
	return m
}

// Check sends a short test message to the config's own from address,
// proving the stored credentials can deliver mail.
func (m *Mailer) Check(cfg *model.EmailConfig) error {
	return m.sendFn(cfg, formatMessage(cfg))
}

func formatMessage(cfg *model.EmailConfig) []byte {
	from := fmt.Sprintf("%s <%s>", cfg.OrganizationName, cfg.FromEmail)
	body := fmt.Sprintf(
		"This is a test message confirming the email configuration for %s (%s).",
		cfg.OrganizationName, cfg.OrganizationCode,
	)
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		from, cfg.FromEmail, "Email configuration test", body,
	)
	return []byte(msg)
}

func (m *Mailer) send(cfg *model.EmailConfig, msg []byte) error {
	addr := net.JoinHostPort(cfg.SMTPServer, strconv.Itoa(cfg.SMTPPort))
	auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPServer)

	if cfg.UseSSL {
		return sendImplicitTLS(cfg, addr, auth, msg)
	}
	// smtp.SendMail negotiates STARTTLS whenever the server offers it,
	// which covers the use_tls case.
	return smtp.SendMail(addr, auth, cfg.FromEmail, []string{cfg.FromEmail}, msg)
}

// sendImplicitTLS dials a TLS socket first (SMTPS) instead of the
// STARTTLS upgrade smtp.SendMail performs.
func sendImplicitTLS(cfg *model.EmailConfig, addr string, auth smtp.Auth, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: cfg.SMTPServer})
	if err != nil {
		return err
	}

	c, err := smtp.NewClient(conn, cfg.SMTPServer)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if err := c.Auth(auth); err != nil {
		return err
	}
	if err := c.Mail(cfg.FromEmail); err != nil {
		return err
	}
	if err := c.Rcpt(cfg.FromEmail); err != nil {
		return err
	}
	wc, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := wc.Write(msg); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return err
	}
	return c.Quit()
}
