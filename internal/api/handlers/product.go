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

type ProductHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
}

func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService, validator: validator.New()}
}

func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.catalogService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Product creation failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product created", slog.String("productId", product.ID.Hex()))
		response.WriteJson(w, http.StatusCreated, map[string]string{"id": product.ID.Hex()})
	}
}

// Plain array body, each product id-stamped.
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		products, err := h.catalogService.ListProducts(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, products)
	}
}
