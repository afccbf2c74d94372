package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/saasify-labs/commerce-api/internal/models"
	"github.com/saasify-labs/commerce-api/internal/store"
	"github.com/saasify-labs/commerce-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository interface {
	CreateOrderAndClearCart(ctx context.Context, order *models.Order) error
	ListOrdersByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Order, error)
}

type orderRepository struct {
	client    *mongo.Client
	orderColl *mongo.Collection
	cartColl  *mongo.Collection
}

func NewOrderRepo(client *mongo.Client, db *mongo.Database) OrderRepository {
	return &orderRepository{
		client:    client,
		orderColl: db.Collection(store.CollectionOrder),
		cartColl:  db.Collection(store.CollectionCart),
	}
}

// CreateOrderAndClearCart writes the order and resets the cart items as one
// logical transaction. A crash can never leave an order behind with a cart
// still holding its items, which would re-charge the user on the next
// checkout. Requires a replica-set deployment.
func (r *orderRepository) CreateOrderAndClearCart(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("starting mongo session: %w", err)
	}
	defer session.EndSession(dbCtx)

	_, err = session.WithTransaction(dbCtx, func(sc mongo.SessionContext) (any, error) {

		res, err := r.orderColl.InsertOne(sc, order)
		if err != nil {
			return nil, fmt.Errorf("inserting order: %w", err)
		}

		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = oid
		}

		_, err = r.cartColl.UpdateOne(sc,
			bson.M{"user_id": order.UserID},
			bson.M{"$set": bson.M{"items": []models.CartItem{}, "updated_at": time.Now()}},
		)
		if err != nil {
			return nil, fmt.Errorf("clearing cart: %w", err)
		}

		return nil, nil
	})

	return err
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.orderColl.Find(dbCtx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	defer cursor.Close(dbCtx)

	orders := []models.Order{}
	if err := cursor.All(dbCtx, &orders); err != nil {
		return nil, fmt.Errorf("decoding orders: %w", err)
	}

	return orders, nil
}
