package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/saasify-labs/commerce-api/internal/errors"
	"github.com/saasify-labs/commerce-api/internal/models"
	repository "github.com/saasify-labs/commerce-api/internal/repositories"
	"github.com/saasify-labs/commerce-api/internal/utils"
	"github.com/saasify-labs/commerce-api/pkg/sendgrid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const orderCurrency = "usd"

type CheckoutService interface {
	Checkout(ctx context.Context, userID primitive.ObjectID) (*models.Order, error)
}

type checkoutService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	email       sendgrid.EmailService
	userLocks   *utils.KeyedMutex
}

func NewCheckoutService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	email sendgrid.EmailService,
	userLocks *utils.KeyedMutex,
) CheckoutService {
	return &checkoutService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		email:       email,
		userLocks:   userLocks,
	}
}

// Checkout converts the user's cart into an immutable order with frozen
// line-item prices and resets the cart. Validation is all-or-nothing: any
// unresolvable product aborts with no order written and no cart mutation.
func (s *checkoutService) Checkout(ctx context.Context, userID primitive.ObjectID) (*models.Order, error) {

	s.userLocks.Lock(userID.Hex())
	defer s.userLocks.Unlock(userID.Hex())

	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.InvalidStateError("Cart is empty")
		}
		return nil, errors.DatabaseError("Failed to retrieve cart").WithError(err)
	}

	if len(cart.Items) == 0 {
		return nil, errors.InvalidStateError("Cart is empty")
	}

	items := make([]models.OrderItem, 0, len(cart.Items))

	var amount float64

	for _, item := range cart.Items {

		product, err := s.productRepo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, errors.InvalidStateError("Invalid product in cart")
			}
			return nil, errors.DatabaseError("Failed to resolve cart item").WithError(err)
		}

		subtotal := product.Price * float64(item.Quantity)
		amount += subtotal

		items = append(items, models.OrderItem{
			ProductID: product.ID.Hex(),
			Title:     product.Title,
			Price:     product.Price,
			Quantity:  item.Quantity,
			Subtotal:  subtotal,
		})
	}

	paymentRef, err := newPaymentRef()
	if err != nil {
		return nil, errors.InternalError("Failed to generate payment reference").WithError(err)
	}

	// No gateway call: checkout always succeeds once validation passes.
	order := &models.Order{
		UserID:     userID,
		Items:      items,
		Amount:     utils.Round2(amount),
		Currency:   orderCurrency,
		Status:     models.OrderStatusPaid,
		PaymentRef: paymentRef,
		CreatedAt:  time.Now(),
	}

	if err := s.orderRepo.CreateOrderAndClearCart(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	s.sendConfirmation(order)

	return order, nil
}

// best-effort; a mail failure never fails the checkout
func (s *checkoutService) sendConfirmation(order *models.Order) {

	if s.email == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := s.userRepo.GetUserByID(ctx, order.UserID)
		if err != nil {
			slog.Warn("Skipping order confirmation email, user lookup failed",
				slog.String("orderId", order.ID.Hex()), slog.Any("error", err))
			return
		}

		if err := s.email.SendOrderConfirmation(ctx, user.Email, order); err != nil {
			slog.Warn("Failed to send order confirmation email",
				slog.String("orderId", order.ID.Hex()), slog.Any("error", err))
		}
	}()
}

// Unpredictable local reference in the form PAY-XXXXXXXX.
func newPaymentRef() (string, error) {

	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return "PAY-" + strings.ToUpper(hex.EncodeToString(buf)), nil
}
