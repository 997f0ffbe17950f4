package payment

import (
	"context"
	"fmt"
	"time"

	"fitness-tracker/backend/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repo is the payments ledger.
type Repo struct {
	col *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{col: db.Collection(store.ColPayments)}
}

func (r *Repo) Record(ctx context.Context, rec Record) error {
	if _, err := r.col.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("record payment: %w", err)
	}
	return nil
}

func (r *Repo) UpdateStatus(ctx context.Context, intentID, status string, at time.Time) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"paymentIntentId": intentID},
		bson.M{"$set": bson.M{"status": status, "updated_at": at}},
	)
	if err != nil {
		return false, fmt.Errorf("update payment status: %w", err)
	}
	return res.MatchedCount > 0, nil
}
