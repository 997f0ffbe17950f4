package user

import (
	"context"
	"fmt"
	"time"

	"fitness-tracker/backend/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repo struct {
	col *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{col: db.Collection(store.ColUsers)}
}

// Upsert inserts a new member or only bumps last_loggedIn of an existing one.
func (r *Repo) Upsert(ctx context.Context, email string, profile bson.M, now time.Time) (store.WriteResult, error) {
	onInsert := store.Strip(profile, FieldEmail, FieldRole, FieldCreatedAt, FieldLastLoggedIn)
	onInsert[FieldRole] = RoleMember
	onInsert[FieldCreatedAt] = now

	update := bson.M{
		"$set":         bson.M{FieldLastLoggedIn: now},
		"$setOnInsert": onInsert,
	}
	res, err := r.col.UpdateOne(ctx, bson.M{FieldEmail: email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return store.WriteResult{}, fmt.Errorf("upsert user: %w", err)
	}
	return store.FromUpdate(res), nil
}

func (r *Repo) List(ctx context.Context) ([]bson.M, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	out := []bson.M{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) FindByEmail(ctx context.Context, email string) (bson.M, error) {
	var doc bson.M
	err := r.col.FindOne(ctx, bson.M{FieldEmail: email}).Decode(&doc)
	if store.IsNotFound(err) {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *Repo) SetRole(ctx context.Context, email, role string) (store.WriteResult, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{FieldEmail: email}, bson.M{"$set": bson.M{FieldRole: role}})
	if err != nil {
		return store.WriteResult{}, fmt.Errorf("set user role: %w", err)
	}
	return store.FromUpdate(res), nil
}

func (r *Repo) ListEmailsByRole(ctx context.Context, role string) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{FieldEmail: 1, "_id": 0})
	cur, err := r.col.Find(ctx, bson.M{FieldRole: role}, opts)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Email string `bson:"email"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Email != "" {
			out = append(out, row.Email)
		}
	}
	return out, nil
}
