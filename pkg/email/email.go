package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// FollowUp is the content of the J+4 follow-up email sent to a client
type FollowUp struct {
	To          string
	ClientName  string
	QuoteNumber string
	AgencyName  string
	ReceivedOn  string
}

// Sender sends follow-up emails
type Sender interface {
	SendFollowUp(msg FollowUp) error
}

// EmailService handles email sending over SMTP
type EmailService struct {
	config EmailConfig
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config, send: smtp.SendMail}
}

// SendFollowUp sends the J+4 follow-up email
func (s *EmailService) SendFollowUp(msg FollowUp) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("follow-up for quote %s has no recipient", msg.QuoteNumber)
	}

	htmlContent, err := renderFollowUp(msg)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Votre devis %s", msg.QuoteNumber)
	return s.sendEmail(msg.To, s.buildHTMLEmail(msg.To, subject, htmlContent))
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	var auth smtp.Auth
	if s.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}

	if err := s.send(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

func renderFollowUp(msg FollowUp) (string, error) {
	tmpl, err := template.New("follow_up").Parse(followUpTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, msg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// NullSender accepts every message without sending it. It is used when no
// SMTP relay is configured, the follow-up is then only recorded.
type NullSender struct{}

func (NullSender) SendFollowUp(FollowUp) error { return nil }

const followUpTemplate = `
<!DOCTYPE html>
<html lang="fr">
<head>
    <meta charset="UTF-8">
    <title>Votre devis {{.QuoteNumber}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff;">
        <tr>
            <td style="padding: 40px 30px;">
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">Bonjour {{.ClientName}},</p>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    Nous revenons vers vous au sujet du devis <strong>{{.QuoteNumber}}</strong> reçu le {{.ReceivedOn}}.
                    Avez-vous pu en prendre connaissance ? Votre agence {{.AgencyName}} reste à votre disposition pour toute question.
                </p>
                <p style="color: #718096; font-size: 14px; line-height: 1.6;">L'équipe {{.AgencyName}}</p>
            </td>
        </tr>
    </table>
</body>
</html>
`
