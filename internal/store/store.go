package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var ErrInvalidID = errors.New("invalid id")

// Collection names. These match the documents written by the existing frontend.
const (
	ColUsers       = "user"
	ColSubscribers = "subscribers"
	ColTrainers    = "trainer"
	ColClasses     = "class"
	ColBookings    = "Booking"
	ColReviews     = "review"
	ColForums      = "forum"
	ColPayments    = "payments"
)

type Options struct {
	URI          string
	Database     string
	Transactions bool
}

// DB owns the mongo client for the lifetime of the process.
type DB struct {
	Client   *mongo.Client
	Database *mongo.Database

	transactions bool
}

func Connect(ctx context.Context, opts Options) (*DB, error) {
	if opts.URI == "" {
		return nil, errors.New("missing mongo uri")
	}
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).SetStrict(false).SetDeprecationErrors(true)
	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return New(client, opts.Database, opts.Transactions), nil
}

// New wraps an already connected client.
func New(client *mongo.Client, database string, transactions bool) *DB {
	return &DB{
		Client:       client,
		Database:     client.Database(database),
		transactions: transactions,
	}
}

func (d *DB) Collection(name string) *mongo.Collection {
	return d.Database.Collection(name)
}

func (d *DB) Ping(ctx context.Context) error {
	return d.Client.Ping(ctx, readpref.Primary())
}

func (d *DB) Close(ctx context.Context) error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Disconnect(ctx)
}

// WithTransaction runs fn inside a multi-document transaction. When
// transactions are disabled (standalone servers) fn runs directly and the
// reconciliation job is what repairs partial writes.
func (d *DB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !d.transactions {
		return fn(ctx)
	}

	sess, err := d.Client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// EnsureIndexes creates the indexes the handlers rely on.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	_, err := d.Collection(ColUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("user email index: %w", err)
	}

	_, err = d.Collection(ColTrainers).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("trainer indexes: %w", err)
	}

	_, err = d.Collection(ColBookings).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "memberEmail", Value: 1}}},
		{Keys: bson.D{{Key: "trainerId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("booking indexes: %w", err)
	}

	_, err = d.Collection(ColPayments).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "paymentIntentId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("payment index: %w", err)
	}
	return nil
}

func IsNotFound(err error) bool { return errors.Is(err, mongo.ErrNoDocuments) }
