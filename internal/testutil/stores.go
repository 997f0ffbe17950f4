// Package testutil holds in-memory collaborators for service and router tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"fitness-tracker/backend/internal/domain/community"
	"fitness-tracker/backend/internal/domain/trainer"
	"fitness-tracker/backend/internal/domain/user"
	"fitness-tracker/backend/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Users is an in-memory user.Store keyed by email.
type Users struct {
	mu   sync.Mutex
	Docs map[string]bson.M
	// Writes counts SetRole calls.
	Writes int
}

func NewUsers(docs ...bson.M) *Users {
	u := &Users{Docs: map[string]bson.M{}}
	for _, d := range docs {
		u.Docs[d["email"].(string)] = d
	}
	return u
}

func (u *Users) Upsert(_ context.Context, email string, profile bson.M, now time.Time) (store.WriteResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if doc, ok := u.Docs[email]; ok {
		doc[user.FieldLastLoggedIn] = now
		return store.WriteResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
	}
	doc := store.Strip(profile, user.FieldRole, user.FieldCreatedAt)
	id := primitive.NewObjectID()
	doc["_id"] = id
	doc[user.FieldEmail] = email
	doc[user.FieldRole] = user.RoleMember
	doc[user.FieldCreatedAt] = now
	doc[user.FieldLastLoggedIn] = now
	u.Docs[email] = doc
	return store.WriteResult{Acknowledged: true, UpsertedID: id}, nil
}

func (u *Users) List(context.Context) ([]bson.M, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := []bson.M{}
	for _, d := range u.Docs {
		out = append(out, d)
	}
	return out, nil
}

func (u *Users) FindByEmail(_ context.Context, email string) (bson.M, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	d, ok := u.Docs[email]
	if !ok {
		return nil, fmt.Errorf("%w: user not found", user.ErrNotFound)
	}
	return d, nil
}

func (u *Users) SetRole(_ context.Context, email, role string) (store.WriteResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Writes++
	d, ok := u.Docs[email]
	if !ok {
		return store.WriteResult{Acknowledged: true}, nil
	}
	res := store.WriteResult{Acknowledged: true, MatchedCount: 1}
	if d[user.FieldRole] != role {
		d[user.FieldRole] = role
		res.ModifiedCount = 1
	}
	return res, nil
}

func (u *Users) ListEmailsByRole(_ context.Context, role string) ([]string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := []string{}
	for email, d := range u.Docs {
		if d[user.FieldRole] == role {
			out = append(out, email)
		}
	}
	return out, nil
}

// Role returns the stored role of email, or "".
func (u *Users) Role(email string) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if d, ok := u.Docs[email]; ok {
		r, _ := d[user.FieldRole].(string)
		return r
	}
	return ""
}

// Trainers is an in-memory trainer.Store. Docs keep insertion order.
type Trainers struct {
	mu     sync.Mutex
	Docs   []bson.M
	Writes int
}

func NewTrainers(docs ...bson.M) *Trainers {
	t := &Trainers{}
	for _, d := range docs {
		if _, ok := d["_id"]; !ok {
			d["_id"] = primitive.NewObjectID()
		}
		t.Docs = append(t.Docs, d)
	}
	return t
}

// TrainerDoc builds a trainer document with a fresh id.
func TrainerDoc(email, status string, skills, slots []string) bson.M {
	return bson.M{
		"_id":       primitive.NewObjectID(),
		"email":     email,
		"status":    status,
		"skills":    skills,
		"timeSlots": slots,
	}
}

func (t *Trainers) List(_ context.Context, f trainer.Filter) ([]bson.M, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := []bson.M{}
	for _, d := range t.Docs {
		if len(f.Statuses) > 0 && !contains(f.Statuses, d["status"]) {
			continue
		}
		if f.Email != "" && d["email"] != f.Email {
			continue
		}
		out = append(out, d)
	}
	if f.NewestFirst {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (t *Trainers) Get(_ context.Context, id primitive.ObjectID) (bson.M, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, d := t.find(id); d != nil {
		return d, nil
	}
	return nil, fmt.Errorf("%w: trainer not found", trainer.ErrNotFound)
}

func (t *Trainers) GetApplication(ctx context.Context, id primitive.ObjectID) (*trainer.Application, error) {
	d, err := t.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toApplication(d)
}

func (t *Trainers) FindByEmailAndStatus(_ context.Context, email, status string) (*trainer.Application, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, d := range t.Docs {
		if d["email"] == email && d["status"] == status {
			return toApplication(d)
		}
	}
	return nil, fmt.Errorf("%w: trainer not found", trainer.ErrNotFound)
}

func (t *Trainers) Insert(_ context.Context, doc bson.M) (store.WriteResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := primitive.NewObjectID()
	doc["_id"] = id
	t.Docs = append(t.Docs, doc)
	return store.WriteResult{Acknowledged: true, InsertedID: id}, nil
}

func (t *Trainers) SetStatus(_ context.Context, id primitive.ObjectID, status string, extra bson.M) (store.WriteResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Writes++
	_, d := t.find(id)
	if d == nil {
		return store.WriteResult{Acknowledged: true}, nil
	}
	d["status"] = status
	for k, v := range extra {
		d[k] = v
	}
	return store.WriteResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (t *Trainers) UpdateAvailability(_ context.Context, email string, in trainer.AvailabilityInput) (store.WriteResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Writes++
	for _, d := range t.Docs {
		if d["email"] == email && d["status"] == trainer.StatusTrainer {
			d["availableDays"] = in.AvailableDays
			d["timeSlots"] = in.TimeSlots
			d["skills"] = in.Skills
			return store.WriteResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return store.WriteResult{Acknowledged: true}, nil
}

func (t *Trainers) SetTimeSlots(_ context.Context, id primitive.ObjectID, slots []string) (store.WriteResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Writes++
	_, d := t.find(id)
	if d == nil {
		return store.WriteResult{Acknowledged: true}, nil
	}
	d["timeSlots"] = slots
	return store.WriteResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (t *Trainers) Delete(_ context.Context, id primitive.ObjectID) (store.WriteResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Writes++
	i, d := t.find(id)
	if d == nil {
		return store.WriteResult{Acknowledged: true}, nil
	}
	t.Docs = append(t.Docs[:i], t.Docs[i+1:]...)
	return store.WriteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (t *Trainers) EmailsWithStatus(_ context.Context, status string) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	seen := map[string]bool{}
	out := []string{}
	for _, d := range t.Docs {
		email, _ := d["email"].(string)
		if d["status"] == status && email != "" && !seen[email] {
			seen[email] = true
			out = append(out, email)
		}
	}
	return out, nil
}

// Doc returns the stored document with the given id, or nil.
func (t *Trainers) Doc(id primitive.ObjectID) bson.M {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, d := t.find(id)
	return d
}

func (t *Trainers) find(id primitive.ObjectID) (int, bson.M) {
	for i, d := range t.Docs {
		if d["_id"] == id {
			return i, d
		}
	}
	return -1, nil
}

func toApplication(d bson.M) (*trainer.Application, error) {
	raw, err := bson.Marshal(d)
	if err != nil {
		return nil, err
	}
	var a trainer.Application
	if err := bson.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Community is an in-memory community.Store.
type Community struct {
	mu          sync.Mutex
	Subscribers []bson.M
	Reviews     []bson.M
	Forums      []bson.M
	LastPage    community.Page
}

func (c *Community) InsertSubscriber(_ context.Context, doc bson.M) (store.WriteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return appendDoc(&c.Subscribers, doc), nil
}

func (c *Community) ListSubscribers(context.Context) ([]bson.M, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]bson.M{}, c.Subscribers...), nil
}

func (c *Community) InsertReview(_ context.Context, doc bson.M) (store.WriteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return appendDoc(&c.Reviews, doc), nil
}

func (c *Community) ListReviews(context.Context) ([]bson.M, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]bson.M{}, c.Reviews...), nil
}

func (c *Community) InsertForumPost(_ context.Context, doc bson.M) (store.WriteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return appendDoc(&c.Forums, doc), nil
}

func (c *Community) ListForumPosts(_ context.Context, p community.Page) ([]bson.M, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastPage = p
	total := int64(len(c.Forums))
	start := int(p.Skip())
	if start > len(c.Forums) {
		start = len(c.Forums)
	}
	end := start + p.Limit
	if end > len(c.Forums) {
		end = len(c.Forums)
	}
	return append([]bson.M{}, c.Forums[start:end]...), total, nil
}

func appendDoc(dst *[]bson.M, doc bson.M) store.WriteResult {
	id := primitive.NewObjectID()
	doc["_id"] = id
	*dst = append(*dst, doc)
	return store.WriteResult{Acknowledged: true, InsertedID: id}
}

func contains(xs []string, v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	for _, x := range xs {
		if strings.EqualFold(x, s) {
			return true
		}
	}
	return false
}
