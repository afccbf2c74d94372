package store

import (
	"context"
	"fmt"

	"github.com/saasify-labs/commerce-api/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

// One collection per entity.
const (
	CollectionUser    = "user"
	CollectionProduct = "product"
	CollectionCart    = "cart"
	CollectionOrder   = "order"
)

// Store owns the mongo client lifecycle: constructed at startup, pinged,
// injected into repositories and closed on shutdown.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func New(ctx context.Context, cfg *config.Config) (*Store, error) {

	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetConnectTimeout(cfg.Mongo.Timeout).
		SetMonitor(otelmongo.NewMonitor())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	// Make sure the store is reachable before handing it out
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	s := &Store{
		Client: client,
		DB:     client.Database(cfg.Mongo.Database),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return s, nil
}

func (s *Store) Collection(name string) *mongo.Collection {
	return s.DB.Collection(name)
}

// Ping is the first-class availability check backing the diagnostic endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, readpref.Primary())
}

func (s *Store) CollectionNames(ctx context.Context) ([]string, error) {

	names, err := s.DB.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	if len(names) > 10 {
		names = names[:10]
	}

	return names, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}

// email is unique per user, and a user owns at most one cart document
func (s *Store) ensureIndexes(ctx context.Context) error {

	_, err := s.Collection(CollectionUser).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create user email index: %w", err)
	}

	_, err = s.Collection(CollectionCart).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create cart user_id index: %w", err)
	}

	return nil
}
