package email

import (
	"context"
	"fmt"
	"net/smtp"

	"drivo-backend/pkg/logger"
)

// OTPEmailData carries everything needed to render the OTP mail.
type OTPEmailData struct {
	Email     string
	OTP       string
	ExpiresIn string
}

// EmailService sends transactional mail. A send failure must surface to
// the caller: signup and resend fail when the OTP mail cannot go out.
type EmailService interface {
	SendOTPEmail(ctx context.Context, data OTPEmailData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendOTPEmail(ctx context.Context, data OTPEmailData) error {
	subject := "Your Drivo verification code"
	body := fmt.Sprintf(`Hello,

Your verification code is:

    %s

The code is valid for %s. If you did not sign up for Drivo, ignore this email.`,
		data.OTP, data.ExpiresIn)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, data.Email, subject, body))

	err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{data.Email}, msg)
	if err != nil {
		logger.Info("Failed to send OTP email", map[string]interface{}{
			"error":     err.Error(),
			"to":        data.Email,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
