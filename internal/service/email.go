package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"dueshub-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	currency  string
}

func NewEmailService(apiKey, fromEmail, fromName, currency string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		currency:  currency,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	return nil
}

func (s *emailService) SendDuesReminder(ctx context.Context, email, name, orgName string, month, year int, remaining int64) error {
	logger.Debug("Sending dues reminder", "email", email, "month", month, "year", year)

	subject := fmt.Sprintf("Dues Reminder - %s", orgName)
	body := fmt.Sprintf(`Dear %s,

This is a reminder that your dues of %s %d for %02d/%d in %s are still outstanding.

Please settle the remaining amount with your treasurer.

Thank you,
%s`, name, s.currency, remaining, month, year, orgName, orgName)

	return s.send(email, name, subject, body)
}

func (s *emailService) SendPaymentReceipt(ctx context.Context, email, name, orgName string, amount int64, method, reference string) error {
	subject := fmt.Sprintf("Payment Received - %s", orgName)
	body := fmt.Sprintf(`Dear %s,

We received your payment of %s %d (%s).

Receipt reference: %s

Thank you,
%s`, name, s.currency, amount, method, reference, orgName)

	return s.send(email, name, subject, body)
}
