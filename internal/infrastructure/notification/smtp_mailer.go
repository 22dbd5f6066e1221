// File: internal/infrastructure/notification/smtp_mailer.go
package notification

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lolmatina/coincash-back/internal/config"
	"github.com/lolmatina/coincash-back/internal/domain/interfaces"
)

// SMTPMailer delivers transactional email over SMTP with implicit TLS.
type SMTPMailer struct {
	config      config.SMTPConfig
	frontendURL string
	logger      *zap.Logger
}

func NewSMTPMailer(cfg config.SMTPConfig, frontendURL string, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		config:      cfg,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		logger:      logger,
	}
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	headers := make(map[string]string)
	headers["From"] = m.config.From
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"
	headers["Date"] = time.Now().Format(time.RFC1123Z)

	var message bytes.Buffer
	for k, v := range headers {
		message.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	message.WriteString("\r\n")
	message.WriteString(body)

	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	tlsConfig := &tls.Config{
		ServerName:         m.config.Host,
		InsecureSkipVerify: false,
	}

	conn, err := tls.Dial("tcp", fmt.Sprintf("%s:%d", m.config.Host, m.config.Port), tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}
	if err := client.Mail(m.config.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write(message.Bytes()); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		return fmt.Errorf("failed to quit SMTP session: %w", err)
	}

	m.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func (m *SMTPMailer) render(name, content string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return body.String(), nil
}

// SendVerificationEmail delivers the six-digit verification code.
func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, email, code string, ttlMinutes int) error {
	body, err := m.render("verification", verificationTemplate, struct {
		Code       string
		TTLMinutes int
		Year       int
	}{
		Code:       code,
		TTLMinutes: ttlMinutes,
		Year:       time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return m.send(ctx, email, "Verify your email address", body)
}

// SendPasswordResetEmail delivers the reset link built from the frontend URL.
func (m *SMTPMailer) SendPasswordResetEmail(ctx context.Context, email, token string) error {
	body, err := m.render("password_reset", passwordResetTemplate, struct {
		ResetLink string
		Year      int
	}{
		ResetLink: fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token),
		Year:      time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return m.send(ctx, email, "Reset your password", body)
}

// SendPasswordResetConfirmationEmail notifies the user their password changed.
func (m *SMTPMailer) SendPasswordResetConfirmationEmail(ctx context.Context, email string) error {
	body, err := m.render("password_reset_confirmation", passwordResetConfirmationTemplate, struct {
		Year int
	}{
		Year: time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return m.send(ctx, email, "Your password has been changed", body)
}

// SendDocumentApprovalEmail notifies the user their documents were approved.
func (m *SMTPMailer) SendDocumentApprovalEmail(ctx context.Context, email, name string) error {
	body, err := m.render("document_approval", documentApprovalTemplate, struct {
		Name string
		Year int
	}{
		Name: name,
		Year: time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return m.send(ctx, email, "Your documents have been approved", body)
}

// SendDocumentDenialEmail notifies the user their documents were rejected.
func (m *SMTPMailer) SendDocumentDenialEmail(ctx context.Context, email, name string) error {
	body, err := m.render("document_denial", documentDenialTemplate, struct {
		Name string
		Year int
	}{
		Name: name,
		Year: time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return m.send(ctx, email, "Your documents could not be verified", body)
}

var _ interfaces.Mailer = (*SMTPMailer)(nil)
