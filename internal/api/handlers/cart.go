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

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.AddToCartRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if req.Quantity == 0 {
			req.Quantity = 1
		}

		userID, err := utils.ParseObjectID(req.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		productID, err := utils.ParseObjectID(req.ProductID)
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.cartService.AddItem(r.Context(), userID, productID, req.Quantity); err != nil {
			logger.Warn("Add to cart failed", slog.String("userId", req.UserID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.String("userId", req.UserID), slog.String("productId", req.ProductID))
		response.WriteJson(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, err := utils.ParseObjectID(r.PathValue("user_id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		view, err := h.cartService.GetCart(r.Context(), userID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, view)
	}
}
