package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saasify-labs/commerce-api/internal/api/handlers"
	appErrors "github.com/saasify-labs/commerce-api/internal/errors"
	"github.com/saasify-labs/commerce-api/internal/models"
	serviceMocks "github.com/saasify-labs/commerce-api/internal/services/mocks"
	"github.com/saasify-labs/commerce-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddItemHandler(t *testing.T) {
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	newRequest := func(body any) *http.Request {
		raw, _ := json.Marshal(body)
		return testutils.CreateTestRequestWithoutContext(http.MethodPost, "/cart/add", bytes.NewReader(raw), nil)
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		cartService := new(serviceMocks.CartService)
		handler := handlers.NewCartHandler(cartService)
		cartService.On("AddItem", mock.Anything, userID, productID, int64(2)).Return(nil).Once()

		req := newRequest(models.AddToCartRequest{UserID: userID.Hex(), ProductID: productID.Hex(), Quantity: 2})
		rec := httptest.NewRecorder()

		// Act
		handler.AddItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]bool
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.True(t, body["ok"])
		cartService.AssertExpectations(t)
	})

	t.Run("Success - Quantity Defaults To One", func(t *testing.T) {
		// Arrange
		cartService := new(serviceMocks.CartService)
		handler := handlers.NewCartHandler(cartService)
		cartService.On("AddItem", mock.Anything, userID, productID, int64(1)).Return(nil).Once()

		req := newRequest(map[string]string{"user_id": userID.Hex(), "product_id": productID.Hex()})
		rec := httptest.NewRecorder()

		// Act
		handler.AddItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		cartService.AssertExpectations(t)
	})

	t.Run("Failure - Malformed User ID", func(t *testing.T) {
		// Arrange
		cartService := new(serviceMocks.CartService)
		handler := handlers.NewCartHandler(cartService)

		req := newRequest(models.AddToCartRequest{UserID: "not-hex", ProductID: productID.Hex(), Quantity: 1})
		rec := httptest.NewRecorder()

		// Act
		handler.AddItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, appErrors.ErrCodeBadRequest, env.Error.Code)
		cartService.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Zero Quantity Rejected Before Default", func(t *testing.T) {
		// Arrange
		cartService := new(serviceMocks.CartService)
		handler := handlers.NewCartHandler(cartService)

		req := newRequest(models.AddToCartRequest{UserID: userID.Hex(), ProductID: productID.Hex(), Quantity: -1})
		rec := httptest.NewRecorder()

		// Act
		handler.AddItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		cartService.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		// Arrange
		cartService := new(serviceMocks.CartService)
		handler := handlers.NewCartHandler(cartService)
		cartService.On("AddItem", mock.Anything, userID, productID, int64(1)).
			Return(appErrors.NotFoundError("Product not found")).Once()

		req := newRequest(models.AddToCartRequest{UserID: userID.Hex(), ProductID: productID.Hex(), Quantity: 1})
		rec := httptest.NewRecorder()

		// Act
		handler.AddItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, appErrors.ErrCodeNotFound, env.Error.Code)
	})
}

func TestGetCartHandler(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		cartService := new(serviceMocks.CartService)
		handler := handlers.NewCartHandler(cartService)

		view := &models.CartView{
			Items: []models.CartLine{
				{ProductID: primitive.NewObjectID().Hex(), Title: "Mug", Price: 4.5, Quantity: 2, Subtotal: 9},
			},
			Total: 9,
		}
		cartService.On("GetCart", mock.Anything, userID).Return(view, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/cart/"+userID.Hex(), nil,
			map[string]string{"user_id": userID.Hex()})
		rec := httptest.NewRecorder()

		// Act
		handler.GetCart().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)

		var got models.CartView
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Len(t, got.Items, 1)
		assert.Equal(t, 9.0, got.Total)
	})

	t.Run("Success - Empty View For New User", func(t *testing.T) {
		// Arrange
		cartService := new(serviceMocks.CartService)
		handler := handlers.NewCartHandler(cartService)
		cartService.On("GetCart", mock.Anything, userID).
			Return(&models.CartView{Items: []models.CartLine{}, Total: 0}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/cart/"+userID.Hex(), nil,
			map[string]string{"user_id": userID.Hex()})
		rec := httptest.NewRecorder()

		// Act
		handler.GetCart().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"items":[],"total":0}`, rec.Body.String())
	})

	t.Run("Failure - Malformed User ID", func(t *testing.T) {
		// Arrange
		cartService := new(serviceMocks.CartService)
		handler := handlers.NewCartHandler(cartService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/cart/nope", nil,
			map[string]string{"user_id": "nope"})
		rec := httptest.NewRecorder()

		// Act
		handler.GetCart().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		cartService.AssertNotCalled(t, "GetCart", mock.Anything, mock.Anything)
	})
}
