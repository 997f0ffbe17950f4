package class

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
	return &Repo{col: db.Collection(store.ColClasses)}
}

func (r *Repo) Search(ctx context.Context, search string) ([]bson.M, error) {
	cur, err := r.col.Aggregate(ctx, SearchPipeline(search))
	if err != nil {
		return nil, fmt.Errorf("search classes: %w", err)
	}
	out := []bson.M{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Insert(ctx context.Context, doc bson.M) (store.WriteResult, error) {
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return store.WriteResult{}, fmt.Errorf("insert class: %w", err)
	}
	return store.FromInsert(res), nil
}

func (r *Repo) NamesBySkills(ctx context.Context, skills []string) ([]bson.M, error) {
	opts := options.Find().SetProjection(bson.M{"className": 1, "_id": 0})
	cur, err := r.col.Find(ctx, TrainerClassesFilter(skills), opts)
	if err != nil {
		return nil, err
	}
	out := []bson.M{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
