package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"eventsync-backend/core/config"
	"eventsync-backend/core/logger"
)

// Sender delivers the three transactional emails the application sends.
type Sender interface {
	SendVerificationEmail(ctx context.Context, to, code string) error
	SendEventInviteEmail(ctx context.Context, to, eventTitle, inviteLink string) error
	SendEventFinalizedEmail(ctx context.Context, to, eventTitle, date, timeRange string) error
}

// NewSenderFromConfig returns the configured delivery backend. The log
// driver is the development default; smtp delivers for real.
func NewSenderFromConfig(cfg config.MailConfig) Sender {
	if cfg.Driver == "smtp" {
		return &smtpSender{cfg: cfg}
	}
	return &logSender{}
}

// logSender writes the message to the log instead of delivering it.
type logSender struct{}

func (s *logSender) SendVerificationEmail(_ context.Context, to, code string) error {
	logger.Info("Mailer:VerificationEmail", "to", to, "code", code, "expires_in", "15m")
	return nil
}

func (s *logSender) SendEventInviteEmail(_ context.Context, to, eventTitle, inviteLink string) error {
	logger.Info("Mailer:InviteEmail", "to", to, "event", eventTitle, "link", inviteLink)
	return nil
}

func (s *logSender) SendEventFinalizedEmail(_ context.Context, to, eventTitle, date, timeRange string) error {
	logger.Info("Mailer:FinalizedEmail", "to", to, "event", eventTitle, "date", date, "time", timeRange)
	return nil
}

type smtpSender struct {
	cfg config.MailConfig
}

func (s *smtpSender) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	var auth smtp.Auth
	if s.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		s.cfg.From, to, subject, body)

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg)); err != nil {
		logger.Error("Mailer:SMTP:Send:Error:", err)
		return err
	}
	return nil
}

func (s *smtpSender) SendVerificationEmail(_ context.Context, to, code string) error {
	body := fmt.Sprintf("Your EventSync verification code is: %s\n\nThis code expires in 15 minutes.", code)
	return s.send(to, "Your EventSync Verification Code", body)
}

func (s *smtpSender) SendEventInviteEmail(_ context.Context, to, eventTitle, inviteLink string) error {
	body := fmt.Sprintf("You have been invited to \"%s\".\n\nShare your availability here: %s", eventTitle, inviteLink)
	return s.send(to, fmt.Sprintf("Invitation: %s", eventTitle), body)
}

func (s *smtpSender) SendEventFinalizedEmail(_ context.Context, to, eventTitle, date, timeRange string) error {
	body := fmt.Sprintf("\"%s\" has been scheduled.\n\nDate: %s\nTime: %s\n\nPlease RSVP from your invite page.", eventTitle, date, timeRange)
	return s.send(to, fmt.Sprintf("Scheduled: %s", eventTitle), body)
}
