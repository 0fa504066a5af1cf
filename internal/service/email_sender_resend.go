package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/sirupsen/logrus"
)

type ResendEmailSender struct {
	client *resend.Client
	from   string
	ttl    time.Duration
}

// NewResendEmailSender builds a sender whose messages state ttl as the code
// lifetime. Pass the same value the verification service enforces.
func NewResendEmailSender(apiKey string, from string, ttl time.Duration) *ResendEmailSender {
	return &ResendEmailSender{
		client: resend.NewClient(apiKey),
		from:   from,
		ttl:    ttl,
	}
}

func (s *ResendEmailSender) SendVerificationCode(ctx context.Context, email string, code string) error {
	if s.client == nil || strings.TrimSpace(s.from) == "" {
		return errors.New("email sender not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.client.Emails.Send(s.verificationMessage(email, code)); err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

func (s *ResendEmailSender) verificationMessage(email string, code string) *resend.SendEmailRequest {
	expiry := ""
	if s.ttl > 0 {
		expiry = "It expires in " + describeDuration(s.ttl) + "."
	}
	return &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{email},
		Subject: "Your verification code",
		Html:    strings.TrimSpace(fmt.Sprintf("<p>Your verification code is:</p><h2>%s</h2><p>%s</p>", code, expiry)),
		Text:    strings.TrimSpace(fmt.Sprintf("Your verification code is %s. %s", code, expiry)),
	}
}

// describeDuration renders whole minutes as "N minutes" and anything else
// with the standard duration format.
func describeDuration(d time.Duration) string {
	if d%time.Minute != 0 {
		return d.String()
	}
	minutes := int(d / time.Minute)
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// LogEmailSender writes codes to the log instead of sending them. Used when
// no Resend API key is configured.
type LogEmailSender struct {
	Logger logrus.FieldLogger
}

func (s LogEmailSender) SendVerificationCode(_ context.Context, email string, code string) error {
	s.Logger.WithFields(logrus.Fields{"email": email, "code": code}).Warn("email delivery disabled, verification code logged")
	return nil
}
