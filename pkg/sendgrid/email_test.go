package sendgrid_test

import (
	"testing"

	"github.com/saasify-labs/commerce-api/internal/models"
	"github.com/saasify-labs/commerce-api/pkg/sendgrid"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildOrderSummary(t *testing.T) {
	order := &models.Order{
		ID:     primitive.NewObjectID(),
		Amount: 89.98,
		Items: []models.OrderItem{
			{Title: "Mug", Quantity: 5, Price: 10, Subtotal: 50},
			{Title: "Shirt", Quantity: 2, Price: 19.99, Subtotal: 39.98},
		},
		Currency:   "usd",
		Status:     models.OrderStatusPaid,
		PaymentRef: "PAY-0A1B2C3D",
	}

	body := sendgrid.BuildOrderSummary(order)

	assert.Contains(t, body, order.ID.Hex())
	assert.Contains(t, body, "Mug x5 = 50.00")
	assert.Contains(t, body, "Shirt x2 = 39.98")
	assert.Contains(t, body, "Total: 89.98 usd")
	assert.Contains(t, body, "Payment reference: PAY-0A1B2C3D")
}
