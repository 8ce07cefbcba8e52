package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Collection names.
const (
	ProductsCollection = "products"
	ContactsCollection = "contacts"
	AdminsCollection   = "admins"
)

const connectTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when no document matches the identifier.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicatePartNo is returned when the unique partNo index rejects a write.
	ErrDuplicatePartNo = errors.New("duplicate part number")
)

// Options configures Connect.
type Options struct {
	URI              string
	Database         string
	PartNumberUnique bool
}

// Store owns the MongoDB client and the collections the API uses.
type Store struct {
	client   *mongo.Client
	products *mongo.Collection
	contacts *mongo.Collection
	admins   *mongo.Collection
	now      func() time.Time
}

// Connect dials MongoDB, verifies the connection and prepares indexes.
func Connect(ctx context.Context, opts Options) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("create mongodb client: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	zap.L().Info("connected to mongodb", zap.String("database", opts.Database))

	s := New(client.Database(opts.Database))
	if opts.PartNumberUnique {
		s.EnsureIndexes(ctx)
	}
	return s, nil
}

// New wraps an existing database handle. Used by Connect and in tests.
func New(db *mongo.Database) *Store {
	return &Store{
		client:   db.Client(),
		products: db.Collection(ProductsCollection),
		contacts: db.Collection(ContactsCollection),
		admins:   db.Collection(AdminsCollection),
		now:      time.Now,
	}
}

// EnsureIndexes creates the unique partNo index. Failure is logged only:
// existing duplicates must not keep the service from starting.
func (s *Store) EnsureIndexes(ctx context.Context) {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "partNo", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("partNo_unique"),
	}
	if _, err := s.products.Indexes().CreateOne(ctx, model); err != nil {
		zap.L().Warn("could not create unique index on partNo", zap.Error(err))
		return
	}
	zap.L().Info("unique index on partNo ensured")
}

// Ping reports whether the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Disconnect closes the client.
func (s *Store) Disconnect(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	zap.L().Info("mongodb connection closed")
	return nil
}
