package services

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/taskify/taskify/internal/config"
	"github.com/taskify/taskify/pkg/logger"
)

// EmailService sends transactional mail over SMTP. Disabled config makes
// every send a silent no-op, which keeps local development quiet.
type EmailService struct {
	cfg *config.EmailConfig
}

func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendInvite renders and sends an invitation email.
func (s *EmailService) SendInvite(mail *InviteMail) error {
	subject := fmt.Sprintf("[Taskify] You've been invited to %s", mail.ProjectName)
	body := s.buildInviteBody(mail)
	return s.Send([]string{mail.To}, subject, body)
}

func (s *EmailService) buildInviteBody(mail *InviteMail) string {
	var sb strings.Builder

	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString("<h2>Project invitation</h2>")
	sb.WriteString(fmt.Sprintf("<p><strong>%s</strong> invited you to join <strong>%s</strong> as <strong>%s</strong>.</p>",
		mail.InviterName, mail.ProjectName, mail.Role))
	sb.WriteString(fmt.Sprintf("<p><a href=\"%s\" style=\"display: inline-block; padding: 10px 20px; background: #4f46e5; color: #fff; border-radius: 6px; text-decoration: none;\">Accept invitation</a></p>", mail.AcceptURL))
	sb.WriteString(fmt.Sprintf("<p style=\"color: #888; font-size: 12px;\">Or open this link: %s</p>", mail.AcceptURL))
	sb.WriteString("<p style=\"color: #888; font-size: 12px;\">This invitation expires in 7 days.</p>")
	sb.WriteString("<hr><p style=\"color: #888; font-size: 12px;\">Powered by Taskify</p>")
	sb.WriteString("</body></html>")

	return sb.String()
}

// Send delivers an HTML email to the recipients.
func (s *EmailService) Send(to []string, subject, body string) error {
	if !s.cfg.Enabled || s.cfg.Host == "" {
		return nil
	}
	if len(to) == 0 {
		return nil
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	headers := make(map[string]string)
	headers["From"] = from
	headers["To"] = strings.Join(to, ",")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var message strings.Builder
	for k, v := range headers {
		message.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	message.WriteString("\r\n")
	message.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" && s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	var err error
	if s.cfg.UseTLS {
		err = s.sendTLS(addr, auth, from, to, message.String())
	} else {
		err = smtp.SendMail(addr, auth, from, to, []byte(message.String()))
	}

	if err != nil {
		logger.Warnf("[Email] Failed to send email: %v", err)
		return err
	}

	logger.Infof("[Email] Sent mail to %v", to)
	return nil
}

func (s *EmailService) sendTLS(addr string, auth smtp.Auth, from string, to []string, message string) error {
	tlsConfig := &tls.Config{
		ServerName: s.cfg.Host,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}

	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte(message)); err != nil {
		return err
	}

	return w.Close()
}
