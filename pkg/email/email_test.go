package email

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  []byte
}

func newTestService(cfg EmailConfig, captured *capturedMail) *EmailService {
	s := NewEmailService(cfg)
	s.now = func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }
	s.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		captured.addr, captured.from, captured.to, captured.msg = addr, from, to, msg
		return nil
	}
	return s
}

func TestSendQuotation(t *testing.T) {
	var got capturedMail
	s := newTestService(EmailConfig{
		SMTPHost: "smtp.example.com", SMTPPort: 587,
		FromName: "شركة السيارات", FromEmail: "sales@example.com",
	}, &got)

	pdf := bytes.Repeat([]byte("%PDF-1.4 data "), 20)
	err := s.SendQuotation(QuotationMessage{
		To:           "customer@example.com",
		Subject:      "عرض سعر QT-000001",
		CustomerName: "محمد",
		Reference:    "QT-000001",
		CompanyName:  "شركة السيارات",
		Attachment:   Attachment{Filename: "qt-000001.pdf", Data: pdf},
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", got.addr)
	assert.Equal(t, "sales@example.com", got.from)
	assert.Equal(t, []string{"customer@example.com"}, got.to)

	msg, err := mail.ReadMessage(bytes.NewReader(got.msg))
	require.NoError(t, err)

	subject, err := new(mime.WordDecoder).DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "عرض سعر QT-000001", subject)

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(msg.Body, params["boundary"])

	body, err := mr.NextPart()
	require.NoError(t, err)
	html := decodePart(t, body)
	assert.Contains(t, html, "QT-000001")
	assert.Contains(t, html, "محمد")

	att, err := mr.NextPart()
	require.NoError(t, err)
	assert.Contains(t, att.Header.Get("Content-Disposition"), "qt-000001.pdf")
	assert.Equal(t, string(pdf), decodePart(t, att))

	for _, line := range strings.Split(string(got.msg), "\r\n") {
		assert.LessOrEqual(t, len(line), 998)
	}
}

func TestSendQuotation_NotConfigured(t *testing.T) {
	s := NewEmailService(EmailConfig{})
	assert.False(t, s.Enabled())
	assert.ErrorIs(t, s.SendQuotation(QuotationMessage{To: "a@b.c"}), ErrNotConfigured)
}

func TestWriteBase64_WrapsLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBase64(&buf, bytes.Repeat([]byte{0xff}, 200)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\r\n"), "\r\n")
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 76)
	}
}

func decodePart(t *testing.T, p *multipart.Part) string {
	t.Helper()
	raw, err := io.ReadAll(p)
	require.NoError(t, err)
	decoded, err := base64.StdEncoding.DecodeString(strings.NewReplacer("\r", "", "\n", "").Replace(string(raw)))
	require.NoError(t, err)
	return string(decoded)
}
