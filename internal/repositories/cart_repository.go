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

type CartRepository interface {
	GetCartByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int64) error
}

type cartRepository struct {
	coll *mongo.Collection
}

func NewCartRepo(db *mongo.Database) CartRepository {
	return &cartRepository{coll: db.Collection(store.CollectionCart)}
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cart := &models.Cart{}

	err := r.coll.FindOne(dbCtx, bson.M{"user_id": userID}).Decode(cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("querying cart: %w", err)
	}

	return cart, nil
}

// AddItem merges into the cart with atomic update operators instead of a
// whole-document replace, so concurrent adds cannot lose each other's writes.
// A positional $inc bumps an existing line; otherwise the item is pushed,
// creating the cart document on first use via upsert. The unique user_id
// index keeps racing upserts from producing two carts.
func (r *cartRepository) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	now := time.Now()

	res, err := r.coll.UpdateOne(dbCtx,
		bson.M{"user_id": userID, "items.product_id": productID},
		bson.M{
			"$inc": bson.M{"items.$.quantity": quantity},
			"$set": bson.M{"updated_at": now},
		},
	)
	if err != nil {
		return fmt.Errorf("incrementing cart item: %w", err)
	}

	if res.ModifiedCount > 0 {
		return nil
	}

	_, err = r.coll.UpdateOne(dbCtx,
		bson.M{"user_id": userID},
		bson.M{
			"$push": bson.M{"items": models.CartItem{ProductID: productID, Quantity: quantity}},
			"$set":  bson.M{"updated_at": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("appending cart item: %w", err)
	}

	return nil
}
