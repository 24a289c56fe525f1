// Package mail delivers invite emails. Delivery is fire-and-forget from
// the issuer's perspective: a failed send is logged and a support operator
// can resend, it never rolls back a committed invite.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

type Sender interface {
	// SendInvite delivers the credential-setup link for a freshly issued
	// invite token.
	SendInvite(ctx context.Context, toEmail, fullName, token string) error
}

type Config struct {
	Mode    string // "smtp" or "log"
	Host    string
	Port    int
	From    string
	BaseURL string // public UI origin the set-password link points at
}

// NewSender returns an SMTP sender when configured, and a log sink
// otherwise (dev and test environments).
func NewSender(cfg Config, logger *slog.Logger) Sender {
	switch cfg.Mode {
	case "smtp":
		return &SMTPSender{
			host:    cfg.Host,
			port:    cfg.Port,
			from:    cfg.From,
			baseURL: cfg.BaseURL,
		}
	default:
		return &LogSender{baseURL: cfg.BaseURL, logger: logger}
	}
}

// InviteLink builds the set-password URL embedding the token.
func InviteLink(baseURL, token string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		return token
	}
	return fmt.Sprintf("%s/set-password?token=%s", base, token)
}

// LogSender writes the invite link to the log instead of delivering it.
type LogSender struct {
	baseURL string
	logger  *slog.Logger
}

func (s *LogSender) SendInvite(ctx context.Context, toEmail, fullName, token string) error {
	_ = ctx
	s.logger.Info("invite link generated",
		"to", toEmail,
		"link", InviteLink(s.baseURL, token),
	)
	return nil
}

// SMTPSender delivers invite emails over plain SMTP.
type SMTPSender struct {
	host    string
	port    int
	from    string
	baseURL string
}

func (s *SMTPSender) SendInvite(ctx context.Context, toEmail, fullName, token string) error {
	_ = ctx
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	link := InviteLink(s.baseURL, token)

	var b strings.Builder
	b.WriteString("From: " + s.from + "\r\n")
	b.WriteString("To: " + toEmail + "\r\n")
	b.WriteString("Subject: You have been invited to Workforce\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "<p>Hello %s,</p>", fullName)
	fmt.Fprintf(&b, "<p>An account has been created for you. Set your password using the link below:</p>")
	fmt.Fprintf(&b, `<p><a href="%s">%s</a></p>`, link, link)
	b.WriteString("<p>The link is valid for a limited time and can be used once.</p>\r\n")

	return smtp.SendMail(addr, nil, s.from, []string{toEmail}, []byte(b.String()))
}
