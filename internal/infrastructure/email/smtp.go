// Package email delivers vendor decision notifications over SMTP.
package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	vendorapp "streetside/internal/application/vendorstatus"
	"streetside/internal/shared/config"
)

// SMTPDecisionMailer implements vendorapp.DecisionNotifier. Notifications go
// to the configured operations mailbox; vendors have no email on record.
type SMTPDecisionMailer struct {
	cfg    config.EmailConfig
	dialer *gomail.Dialer
}

// NewSMTPDecisionMailer creates a new SMTP decision mailer, or nil when no
// notify address is configured.
func NewSMTPDecisionMailer(cfg config.EmailConfig) *SMTPDecisionMailer {
	if cfg.NotifyAddress == "" {
		return nil
	}

	return &SMTPDecisionMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
	}
}

// NotifyDecision sends a decision summary email.
func (m *SMTPDecisionMailer) NotifyDecision(ctx context.Context, cmd vendorapp.DecisionCommand) error {
	subject := fmt.Sprintf("Vendor %s: %s", cmd.Status, cmd.DisplayName)

	body := fmt.Sprintf(`Vendor decision recorded.

Vendor:     %s (%s)
Status:     %s
Decided by: %s
Decided at: %s
`, cmd.DisplayName, cmd.VendorSID, cmd.Status, cmd.DecidedBy, cmd.DecidedAt.Format("2006-01-02 15:04:05 UTC"))

	if cmd.Reason != nil {
		body += fmt.Sprintf("Reason:     %s\n", *cmd.Reason)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.FromAddress, m.cfg.FromName)
	msg.SetHeader("To", m.cfg.NotifyAddress)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send decision email: %w", err)
	}
	return nil
}
