package service

import (
	"context"

	"github.com/saasify-labs/commerce-api/internal/errors"
	"github.com/saasify-labs/commerce-api/internal/models"
	repository "github.com/saasify-labs/commerce-api/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultOrderLimit = 50

type OrderService interface {
	ListOrders(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
}

type orderService struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderService{repo: repo}
}

func (s *orderService) ListOrders(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {

	orders, err := s.repo.ListOrdersByUser(ctx, userID, defaultOrderLimit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, nil
}
