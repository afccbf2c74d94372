package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/saasify-labs/commerce-api/internal/cache"
	"github.com/saasify-labs/commerce-api/internal/errors"
	"github.com/saasify-labs/commerce-api/internal/models"
	repository "github.com/saasify-labs/commerce-api/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
)

// ListProducts page cap; no pagination cursor in scope.
const DefaultProductLimit = 100

type CatalogService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type catalogService struct {
	repo      repository.ProductRepository
	cache     cache.Cache
	sanitizer *bluemonday.Policy
}

func NewCatalogService(repo repository.ProductRepository, c cache.Cache) CatalogService {
	return &catalogService{
		repo:      repo,
		cache:     c,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *catalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	if req.Price < 0 {
		return nil, errors.ValidationError("Price must be non-negative")
	}

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	product := &models.Product{
		Title:       s.sanitizer.Sanitize(req.Title),
		Description: s.sanitizer.Sanitize(req.Description),
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		InStock:     inStock,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.ProductListKey); err != nil {
			slog.Warn("Failed to invalidate product list cache", slog.Any("error", err))
		}
	}

	return product, nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]models.Product, error) {

	if s.cache != nil {
		var cached []models.Product
		if hit, err := s.cache.Get(ctx, cache.ProductListKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	products, err := s.repo.ListProducts(ctx, DefaultProductLimit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.ProductListKey, products, 0); err != nil {
			slog.Warn("Failed to cache product list", slog.Any("error", err))
		}
	}

	return products, nil
}
