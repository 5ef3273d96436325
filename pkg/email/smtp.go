package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

type SMTPProvider struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	fromName  string
}

func NewSMTPProvider(host string, port int, username, password, fromEmail, fromName string) *SMTPProvider {
	return &SMTPProvider{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *SMTPProvider) SendEmail(ctx context.Context, request *EmailRequest) error {
	msg := s.buildMessage(request)
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	// smtp.SendMail has no context hook; honor cancellation before the
	// dial at least.
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{request.To}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *SMTPProvider) buildMessage(request *EmailRequest) []byte {
	from := s.fromEmail
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", request.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", request.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(request.Body)

	return []byte(b.String())
}
