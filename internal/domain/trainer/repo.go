package trainer

import (
	"context"
	"fmt"

	"fitness-tracker/backend/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repo struct {
	col *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{col: db.Collection(store.ColTrainers)}
}

func (r *Repo) List(ctx context.Context, f Filter) ([]bson.M, error) {
	q := bson.M{}
	if len(f.Statuses) == 1 {
		q["status"] = f.Statuses[0]
	} else if len(f.Statuses) > 1 {
		q["status"] = bson.M{"$in": f.Statuses}
	}
	if f.Email != "" {
		q["email"] = f.Email
	}

	opts := options.Find()
	if f.NewestFirst {
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	}

	cur, err := r.col.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	out := []bson.M{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id primitive.ObjectID) (bson.M, error) {
	var doc bson.M
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if store.IsNotFound(err) {
		return nil, fmt.Errorf("%w: trainer not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *Repo) GetApplication(ctx context.Context, id primitive.ObjectID) (*Application, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *Repo) FindByEmailAndStatus(ctx context.Context, email, status string) (*Application, error) {
	return r.findOne(ctx, bson.M{"email": email, "status": status})
}

func (r *Repo) findOne(ctx context.Context, q bson.M) (*Application, error) {
	var a Application
	err := r.col.FindOne(ctx, q).Decode(&a)
	if store.IsNotFound(err) {
		return nil, fmt.Errorf("%w: trainer not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repo) Insert(ctx context.Context, doc bson.M) (store.WriteResult, error) {
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return store.WriteResult{}, fmt.Errorf("insert trainer: %w", err)
	}
	return store.FromInsert(res), nil
}

func (r *Repo) SetStatus(ctx context.Context, id primitive.ObjectID, status string, extra bson.M) (store.WriteResult, error) {
	set := bson.M{"status": status}
	for k, v := range extra {
		set[k] = v
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return store.WriteResult{}, fmt.Errorf("set trainer status: %w", err)
	}
	return store.FromUpdate(res), nil
}

func (r *Repo) UpdateAvailability(ctx context.Context, email string, in AvailabilityInput) (store.WriteResult, error) {
	set := bson.M{
		"availableDays": in.AvailableDays,
		"timeSlots":     nonNil(in.TimeSlots),
		"skills":        nonNil(in.Skills),
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"email": email, "status": StatusTrainer}, bson.M{"$set": set})
	if err != nil {
		return store.WriteResult{}, fmt.Errorf("update availability: %w", err)
	}
	return store.FromUpdate(res), nil
}

func (r *Repo) SetTimeSlots(ctx context.Context, id primitive.ObjectID, slots []string) (store.WriteResult, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"timeSlots": nonNil(slots)}})
	if err != nil {
		return store.WriteResult{}, fmt.Errorf("set time slots: %w", err)
	}
	return store.FromUpdate(res), nil
}

func (r *Repo) Delete(ctx context.Context, id primitive.ObjectID) (store.WriteResult, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return store.WriteResult{}, fmt.Errorf("delete trainer: %w", err)
	}
	return store.FromDelete(res), nil
}

func (r *Repo) EmailsWithStatus(ctx context.Context, status string) ([]string, error) {
	vals, err := r.col.Distinct(ctx, "email", bson.M{"status": status})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
