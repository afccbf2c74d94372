package handlers

import (
	"net/http"

	service "github.com/saasify-labs/commerce-api/internal/services"
	"github.com/saasify-labs/commerce-api/internal/utils"
	"github.com/saasify-labs/commerce-api/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, err := utils.ParseObjectID(r.PathValue("user_id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		orders, err := h.orderService.ListOrders(r.Context(), userID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, orders)
	}
}
