package repository_test

import (
	"context"
	"testing"

	"github.com/saasify-labs/commerce-api/internal/models"
	repository "github.com/saasify-labs/commerce-api/internal/repositories"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCartRepositoryAddItem(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	mt.Run("Existing Line Gets Incremented In Place", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewCartRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		// Act
		err := repo.AddItem(context.Background(), userID, productID, 2)

		// Assert
		assert.NoError(mt, err)

		evt := mt.GetStartedEvent()
		assert.NotNil(mt, evt)
		assert.Equal(mt, "update", evt.CommandName)
		assert.Contains(mt, evt.Command.String(), "$inc")

		// no fallback write happened
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("New Line Falls Back To Upserted Push", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewCartRepo(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 0},
				bson.E{Key: "nModified", Value: 0},
			),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 1},
				bson.E{Key: "nModified", Value: 0},
			),
		)

		// Act
		err := repo.AddItem(context.Background(), userID, productID, 1)

		// Assert
		assert.NoError(mt, err)

		first := mt.GetStartedEvent()
		assert.NotNil(mt, first)
		assert.Contains(mt, first.Command.String(), "$inc")

		second := mt.GetStartedEvent()
		assert.NotNil(mt, second)
		assert.Contains(mt, second.Command.String(), "$push")
		assert.Contains(mt, second.Command.String(), "upsert")
	})
}

func TestCartRepositoryGetCartByUserID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	mt.Run("Success", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewCartRepo(mt.DB)

		doc := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "user_id", Value: userID},
			{Key: "items", Value: bson.A{
				bson.D{{Key: "product_id", Value: productID}, {Key: "quantity", Value: int64(3)}},
			}},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "commerce.cart", mtest.FirstBatch, doc))

		// Act
		cart, err := repo.GetCartByUserID(context.Background(), userID)

		// Assert
		assert.NoError(mt, err)
		assert.Equal(mt, userID, cart.UserID)
		assert.Len(mt, cart.Items, 1)
		assert.Equal(mt, models.CartItem{ProductID: productID, Quantity: 3}, cart.Items[0])
	})

	mt.Run("No Cart Document", func(mt *mtest.T) {
		// Arrange
		repo := repository.NewCartRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "commerce.cart", mtest.FirstBatch))

		// Act
		cart, err := repo.GetCartByUserID(context.Background(), userID)

		// Assert
		assert.Nil(mt, cart)
		assert.ErrorIs(mt, err, mongo.ErrNoDocuments)
	})
}
