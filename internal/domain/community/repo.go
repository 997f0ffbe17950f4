package community

import (
	"context"
	"fmt"

	"fitness-tracker/backend/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repo struct {
	subscribers *mongo.Collection
	reviews     *mongo.Collection
	forums      *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{
		subscribers: db.Collection(store.ColSubscribers),
		reviews:     db.Collection(store.ColReviews),
		forums:      db.Collection(store.ColForums),
	}
}

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

func (r *Repo) InsertSubscriber(ctx context.Context, doc bson.M) (store.WriteResult, error) {
	return insert(ctx, r.subscribers, doc)
}

func (r *Repo) ListSubscribers(ctx context.Context) ([]bson.M, error) {
	return findAll(ctx, r.subscribers, options.Find().SetSort(newestFirst))
}

func (r *Repo) InsertReview(ctx context.Context, doc bson.M) (store.WriteResult, error) {
	return insert(ctx, r.reviews, doc)
}

func (r *Repo) ListReviews(ctx context.Context) ([]bson.M, error) {
	return findAll(ctx, r.reviews, options.Find().SetSort(newestFirst))
}

func (r *Repo) InsertForumPost(ctx context.Context, doc bson.M) (store.WriteResult, error) {
	return insert(ctx, r.forums, doc)
}

func (r *Repo) ListForumPosts(ctx context.Context, p Page) ([]bson.M, int64, error) {
	total, err := r.forums.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count forum posts: %w", err)
	}
	opts := options.Find().SetSort(newestFirst).SetSkip(p.Skip()).SetLimit(int64(p.Limit))
	posts, err := findAll(ctx, r.forums, opts)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func insert(ctx context.Context, col *mongo.Collection, doc bson.M) (store.WriteResult, error) {
	res, err := col.InsertOne(ctx, doc)
	if err != nil {
		return store.WriteResult{}, fmt.Errorf("insert into %s: %w", col.Name(), err)
	}
	return store.FromInsert(res), nil
}

func findAll(ctx context.Context, col *mongo.Collection, opts *options.FindOptions) ([]bson.M, error) {
	cur, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", col.Name(), err)
	}
	out := []bson.M{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
