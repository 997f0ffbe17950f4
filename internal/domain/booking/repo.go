package booking

import (
	"context"
	"fmt"

	"fitness-tracker/backend/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repo struct {
	col *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{col: db.Collection(store.ColBookings)}
}

func (r *Repo) Insert(ctx context.Context, doc bson.M) (interface{}, error) {
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return res.InsertedID, nil
}

func (r *Repo) ListByMember(ctx context.Context, email string) ([]bson.M, error) {
	cur, err := r.col.Aggregate(ctx, MemberBookingsPipeline(email))
	if err != nil {
		return nil, fmt.Errorf("member bookings: %w", err)
	}
	out := []bson.M{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) ListByTrainerKeys(ctx context.Context, keys []string) ([]bson.M, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, TrainerBookingsFilter(keys), opts)
	if err != nil {
		return nil, fmt.Errorf("trainer bookings: %w", err)
	}
	out := []bson.M{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
