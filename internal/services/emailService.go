package services

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendOTP(to, code string, ttl time.Duration) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(host string, port int, username, password string) EmailService {
	return &emailService{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   username,
	}
}

func (e *emailService) SendOTP(to, code string, ttl time.Duration) error {
	m := gomail.NewMessage()

	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Verify your Email - OTP")
	m.SetBody("text/html", fmt.Sprintf(`
		<h2>Your OTP Code</h2>
		<p>Please use the following OTP to verify your email address:</p>
		<h3>%s</h3>
		<p>This OTP is valid for %d minutes.</p>
	`, code, int(ttl.Minutes())))

	if err := e.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("could not send OTP email: %w", err)
	}
	return nil
}
