package sendgrid

import (
	"context"
	"fmt"

	"github.com/saasify-labs/commerce-api/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService interface {
	SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (e *emailService) SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error {

	from := mail.NewEmail(e.fromName, e.fromEmail)
	subject := fmt.Sprintf("Order confirmation %s", order.PaymentRef)

	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), BuildOrderSummary(order), "")

	resp, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}

	return nil
}

func BuildOrderSummary(order *models.Order) string {

	body := fmt.Sprintf("Thank you for your purchase.\n\nOrder %s\n\n", order.ID.Hex())

	for _, item := range order.Items {
		body += fmt.Sprintf("%s x%d = %.2f\n", item.Title, item.Quantity, item.Subtotal)
	}

	body += fmt.Sprintf("\nTotal: %.2f %s\nPayment reference: %s\n", order.Amount, order.Currency, order.PaymentRef)

	return body
}
