package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/saasify-labs/commerce-api/internal/api/handlers"
	"github.com/saasify-labs/commerce-api/internal/models"
	serviceMocks "github.com/saasify-labs/commerce-api/internal/services/mocks"
	"github.com/saasify-labs/commerce-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListOrdersHandler(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		orderService := new(serviceMocks.OrderService)
		handler := handlers.NewOrderHandler(orderService)

		orders := []models.Order{
			{
				ID:         primitive.NewObjectID(),
				UserID:     userID,
				Amount:     50,
				Currency:   "usd",
				Status:     models.OrderStatusPaid,
				PaymentRef: "PAY-0A1B2C3D",
				CreatedAt:  time.Now(),
			},
		}
		orderService.On("ListOrders", mock.Anything, userID).Return(orders, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/orders/"+userID.Hex(), nil,
			map[string]string{"user_id": userID.Hex()})
		rec := httptest.NewRecorder()

		// Act
		handler.ListOrders().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)

		var got []models.Order
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Len(t, got, 1)
		assert.Equal(t, models.OrderStatusPaid, got[0].Status)
	})

	t.Run("Failure - Malformed User ID", func(t *testing.T) {
		// Arrange
		orderService := new(serviceMocks.OrderService)
		handler := handlers.NewOrderHandler(orderService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/orders/nope", nil,
			map[string]string{"user_id": "nope"})
		rec := httptest.NewRecorder()

		// Act
		handler.ListOrders().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		orderService.AssertNotCalled(t, "ListOrders", mock.Anything, mock.Anything)
	})
}
