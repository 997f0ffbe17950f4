package community

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fitness-tracker/backend/internal/store"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
)

type Store interface {
	InsertSubscriber(ctx context.Context, doc bson.M) (store.WriteResult, error)
	ListSubscribers(ctx context.Context) ([]bson.M, error)
	InsertReview(ctx context.Context, doc bson.M) (store.WriteResult, error)
	ListReviews(ctx context.Context) ([]bson.M, error)
	InsertForumPost(ctx context.Context, doc bson.M) (store.WriteResult, error)
	ListForumPosts(ctx context.Context, p Page) ([]bson.M, int64, error)
}

type Service struct {
	repo     Store
	validate *validator.Validate
	now      func() time.Time
}

func NewService(repo Store) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Subscribe(ctx context.Context, in SubscribeInput) (store.WriteResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Struct(in); err != nil {
		return store.WriteResult{}, fmt.Errorf("%w: a valid email is required", ErrBadRequest)
	}
	doc := bson.M{
		"email":      in.Email,
		"created_at": s.now(),
		"status":     StatusSubscribed,
	}
	if in.Name != "" {
		doc["name"] = in.Name
	}
	return s.repo.InsertSubscriber(ctx, doc)
}

func (s *Service) Subscribers(ctx context.Context) ([]bson.M, error) {
	return s.repo.ListSubscribers(ctx)
}

func (s *Service) PostReview(ctx context.Context, body bson.M) (store.WriteResult, error) {
	return s.repo.InsertReview(ctx, s.stamp(body))
}

func (s *Service) Reviews(ctx context.Context) ([]bson.M, error) {
	return s.repo.ListReviews(ctx)
}

func (s *Service) PostForum(ctx context.Context, body bson.M) (store.WriteResult, error) {
	return s.repo.InsertForumPost(ctx, s.stamp(body))
}

func (s *Service) Forums(ctx context.Context, p Page) (*ForumPage, error) {
	p.Normalize()
	posts, total, err := s.repo.ListForumPosts(ctx, p)
	if err != nil {
		return nil, err
	}
	return &ForumPage{Posts: posts, Page: p.Page, Limit: p.Limit, Total: total}, nil
}

func (s *Service) stamp(body bson.M) bson.M {
	doc := store.Strip(body, "created_at")
	doc["created_at"] = s.now()
	return doc
}
