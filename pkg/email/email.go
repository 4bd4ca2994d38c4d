package email

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"time"
)

// ErrNotConfigured is returned when no SMTP host is configured.
var ErrNotConfigured = errors.New("email delivery is not configured")

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// Attachment is a file sent along with a message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// QuotationMessage is the content of a quotation email.
type QuotationMessage struct {
	To           string
	Subject      string
	CustomerName string
	Reference    string
	CompanyName  string
	Note         string
	Attachment   Attachment
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
	send   sendFunc
	now    func() time.Time
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config, send: smtp.SendMail, now: time.Now}
}

// Enabled reports whether an SMTP host is configured.
func (s *EmailService) Enabled() bool {
	return s.config.SMTPHost != ""
}

// SendQuotation sends a quotation document to msg.To with the PDF attached.
func (s *EmailService) SendQuotation(msg QuotationMessage) error {
	if !s.Enabled() {
		return ErrNotConfigured
	}

	htmlContent, err := renderQuotationEmail(msg)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	message, err := s.buildMixedEmail(msg.To, msg.Subject, htmlContent, msg.Attachment)
	if err != nil {
		return fmt.Errorf("failed to build email: %w", err)
	}

	return s.sendEmail(msg.To, message)
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

// buildMixedEmail builds a multipart/mixed message with an HTML body and one
// attachment.
func (s *EmailService) buildMixedEmail(to, subject, htmlBody string, att Attachment) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s <%s>\r\n", mime.QEncoding.Encode("UTF-8", s.config.FromName), s.config.FromEmail)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", s.now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())

	body, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {`text/html; charset="UTF-8"`},
		"Content-Transfer-Encoding": {"base64"},
	})
	if err != nil {
		return nil, err
	}
	if err := writeBase64(body, []byte(htmlBody)); err != nil {
		return nil, err
	}

	if len(att.Data) > 0 {
		contentType := att.ContentType
		if contentType == "" {
			contentType = "application/pdf"
		}
		filename := mime.QEncoding.Encode("UTF-8", att.Filename)
		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {fmt.Sprintf("%s; name=%q", contentType, filename)},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", filename)},
			"Content-Transfer-Encoding": {"base64"},
		})
		if err != nil {
			return nil, err
		}
		if err := writeBase64(part, att.Data); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeBase64 writes data base64 encoded in 76 character lines.
func writeBase64(w interface{ Write([]byte) (int, error) }, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 76 {
		if _, err := w.Write([]byte(encoded[:76] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[76:]
	}
	_, err := w.Write([]byte(encoded + "\r\n"))
	return err
}

// renderQuotationEmail renders the quotation email template
func renderQuotationEmail(msg QuotationMessage) (string, error) {
	tmpl, err := template.New("quotation").Parse(quotationTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, msg); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// quotationTemplate is the HTML template for quotation emails
const quotationTemplate = `
<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Reference}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: Tahoma, Arial, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
                    <tr>
                        <td style="background-color: #1E3A8A; padding: 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 24px;">{{.CompanyName}}</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 30px; text-align: right;">
                            <p style="color: #1a1a2e; font-size: 16px; line-height: 1.8; margin: 0 0 16px 0;">
                                السيد/ة {{if .CustomerName}}{{.CustomerName}}{{else}}العميل{{end}} المحترم/ة،
                            </p>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.8; margin: 0 0 16px 0;">
                                يسعدنا أن نرفق لكم عرض السعر رقم <strong>{{.Reference}}</strong>.
                            </p>
                            {{if .Note}}
                            <p style="color: #4a5568; font-size: 15px; line-height: 1.8; margin: 0 0 16px 0;">{{.Note}}</p>
                            {{end}}
                            <p style="color: #718096; font-size: 14px; line-height: 1.8; margin: 0;">
                                مع خالص التحية والتقدير
                            </p>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 20px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 12px; margin: 0;">{{.CompanyName}}</p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
