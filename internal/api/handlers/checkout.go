package handlers

import (
	"log/slog"
	"net/http"

	"github.com/saasify-labs/commerce-api/internal/api/middleware"
	"github.com/saasify-labs/commerce-api/internal/models"
	service "github.com/saasify-labs/commerce-api/internal/services"
	"github.com/saasify-labs/commerce-api/internal/utils"
	"github.com/saasify-labs/commerce-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

// Checkout converts the cart into an order; all-or-nothing, no partial
// commits.
func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		userID, err := utils.ParseObjectID(req.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.checkoutService.Checkout(r.Context(), userID)
		if err != nil {
			logger.Warn("Checkout failed", slog.String("userId", req.UserID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Checkout completed",
			slog.String("userId", req.UserID),
			slog.String("orderId", order.ID.Hex()),
			slog.Float64("amount", order.Amount),
		)

		response.WriteJson(w, http.StatusOK, models.CheckoutResponse{
			OrderID:    order.ID.Hex(),
			Amount:     order.Amount,
			Currency:   order.Currency,
			PaymentRef: order.PaymentRef,
		})
	}
}
