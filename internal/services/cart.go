package service

import (
	"context"

	"github.com/saasify-labs/commerce-api/internal/errors"
	"github.com/saasify-labs/commerce-api/internal/models"
	repository "github.com/saasify-labs/commerce-api/internal/repositories"
	"github.com/saasify-labs/commerce-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CartService interface {
	AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int64) error
	GetCart(ctx context.Context, userID primitive.ObjectID) (*models.CartView, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userLocks   *utils.KeyedMutex
}

// userLocks is shared with the checkout service so cart mutations and
// checkout for one user never interleave.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, userLocks *utils.KeyedMutex) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userLocks:   userLocks,
	}
}

// AddItem merges quantity into the user's cart, creating the cart on first
// add. Quantity has no upper bound.
func (s *cartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int64) error {

	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		return errors.NotFoundError("Product not found").WithError(err)
	}

	s.userLocks.Lock(userID.Hex())
	defer s.userLocks.Unlock(userID.Hex())

	if err := s.cartRepo.AddItem(ctx, userID, productID, quantity); err != nil {
		return errors.DatabaseError("Failed to update cart").WithError(err)
	}

	return nil
}

// GetCart joins the cart against the current catalog: price and title
// reflect present product state, not a snapshot. A line whose product no
// longer exists is dropped from the view; a missing cart yields an empty
// view, not an error.
func (s *cartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*models.CartView, error) {

	view := &models.CartView{Items: []models.CartLine{}, Total: 0}

	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return view, nil
		}
		return nil, errors.DatabaseError("Failed to retrieve cart").WithError(err)
	}

	var total float64

	for _, item := range cart.Items {

		product, err := s.productRepo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				// deliberate display-layer leniency: the line drops from
				// the view and the total
				continue
			}
			return nil, errors.DatabaseError("Failed to resolve cart item").WithError(err)
		}

		subtotal := product.Price * float64(item.Quantity)
		total += subtotal

		view.Items = append(view.Items, models.CartLine{
			ProductID: item.ProductID.Hex(),
			Title:     product.Title,
			Price:     product.Price,
			Quantity:  item.Quantity,
			ImageURL:  product.ImageURL,
			Subtotal:  subtotal,
		})
	}

	view.Total = utils.Round2(total)

	return view, nil
}
