package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/toshihome/homestay-bookings/pkg/config"
)

// MongoStore wraps a mongo database handle. The handle may be nil when
// no DATABASE_URL is configured or the initial connect failed; every
// operation then returns ErrUnavailable. There is no reconnect logic —
// the connection is established once at process start.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes the store connection. A connect or ping failure
// is returned alongside an unavailable (but usable) store so the
// process can still serve its diagnostic endpoints.
func Connect(ctx context.Context, cfg config.MongoConfig) (*MongoStore, error) {
	if cfg.URL == "" {
		return &MongoStore{}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return &MongoStore{}, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return &MongoStore{}, fmt.Errorf("mongo ping: %w", err)
	}

	return &MongoStore{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

func (s *MongoStore) Available() bool {
	return s.db != nil
}

func (s *MongoStore) Name() string {
	if s.db == nil {
		return ""
	}
	return s.db.Name()
}

func (s *MongoStore) Insert(ctx context.Context, collection string, doc any) (string, error) {
	if s.db == nil {
		return "", ErrUnavailable
	}

	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}

	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	case string:
		return id, nil
	default:
		return fmt.Sprintf("%v", id), nil
	}
}

func (s *MongoStore) Find(ctx context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}
	if filter == nil {
		filter = bson.M{}
	}

	// Sort by _id so result order is insertion order, not store-dependent.
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(limit)

	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", collection, err)
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode from %s: %w", collection, err)
	}
	return docs, nil
}

func (s *MongoStore) Collections(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}
	return s.db.ListCollectionNames(ctx, bson.M{})
}

func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
