package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/tunestream/backend/internal/config"
)

const passwordResetTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>Reset your password</h2>
  <p>Hi {{.Name}},</p>
  <p>We received a request to reset the password of your TuneStream account.
     Click the link below to choose a new one. The link expires in 15 minutes.</p>
  <p><a href="{{.Link}}">{{.Link}}</a></p>
  <p>If you did not request this, you can ignore this email.</p>
</body>
</html>`

type EmailService struct {
	cfg           *config.Config
	resetTemplate *template.Template
}

func NewEmailService(cfg *config.Config) (*EmailService, error) {
	tmpl, err := template.New("password_reset").Parse(passwordResetTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email template: %w", err)
	}
	return &EmailService{cfg: cfg, resetTemplate: tmpl}, nil
}

// SendPasswordResetLink mails the reset link to the account holder
func (s *EmailService) SendPasswordResetLink(to, name, link string) error {
	if name == "" {
		name = "there"
	}

	var body bytes.Buffer
	if err := s.resetTemplate.Execute(&body, map[string]string{"Name": name, "Link": link}); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	from := fmt.Sprintf("%s <%s>", s.cfg.SMTPFromName, s.cfg.SMTPFrom)
	message := fmt.Sprintf("From: %s\r\n", from)
	message += fmt.Sprintf("To: %s\r\n", to)
	message += "Subject: Reset your TuneStream password\r\n"
	message += "MIME-Version: 1.0\r\n"
	message += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	message += "\r\n"
	message += body.String()

	return s.sendSMTP(to, []byte(message))
}

// sendSMTP delivers a raw message, speaking implicit TLS on port 465 and
// STARTTLS otherwise.
func (s *EmailService) sendSMTP(to string, message []byte) error {
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	if s.cfg.SMTPPort == 465 {
		tlsConfig := &tls.Config{ServerName: s.cfg.SMTPHost}
		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
		if err != nil {
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Close()

		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
		if err := client.Mail(s.cfg.SMTPFrom); err != nil {
			return err
		}
		if err := client.Rcpt(to); err != nil {
			return err
		}
		w, err := client.Data()
		if err != nil {
			return err
		}
		if _, err := w.Write(message); err != nil {
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
		return client.Quit()
	}

	return smtp.SendMail(addr, auth, s.cfg.SMTPFrom, []string{to}, message)
}
