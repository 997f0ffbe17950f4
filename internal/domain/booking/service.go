package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fitness-tracker/backend/internal/domain/trainer"
	"fitness-tracker/backend/internal/store"

	"go.mongodb.org/mongo-driver/bson"
)

type Store interface {
	Insert(ctx context.Context, doc bson.M) (interface{}, error)
	ListByMember(ctx context.Context, email string) ([]bson.M, error)
	ListByTrainerKeys(ctx context.Context, keys []string) ([]bson.M, error)
}

// Trainers finds the approved trainer behind an email.
type Trainers interface {
	FindApproved(ctx context.Context, email string) (*trainer.Application, error)
}

type Service struct {
	repo     Store
	trainers Trainers
	now      func() time.Time
}

func NewService(repo Store, trainers Trainers) *Service {
	return &Service{repo: repo, trainers: trainers, now: func() time.Time { return time.Now().UTC() }}
}

// Create books for the caller. trainerId must be the trainer document id.
func (s *Service) Create(ctx context.Context, callerEmail string, body bson.M) (interface{}, error) {
	doc := store.Strip(body, "created_at")

	member, _ := doc["memberEmail"].(string)
	member = strings.TrimSpace(member)
	if member == "" {
		member = callerEmail
	}
	if !strings.EqualFold(member, callerEmail) {
		return nil, fmt.Errorf("%w: cannot book for another member", ErrForbidden)
	}

	tid := store.IDString(doc["trainerId"])
	if _, err := store.ParseID(tid); err != nil {
		return nil, fmt.Errorf("%w: trainerId must be a trainer id", ErrBadRequest)
	}

	doc["memberEmail"] = callerEmail
	doc["trainerId"] = tid
	doc["created_at"] = s.now()
	return s.repo.Insert(ctx, doc)
}

func (s *Service) ListForMember(ctx context.Context, email string) ([]bson.M, error) {
	return s.repo.ListByMember(ctx, email)
}

// ListForTrainer resolves the trainer by email and returns bookings keyed by
// the trainer id. Documents written with the email as trainerId still match.
func (s *Service) ListForTrainer(ctx context.Context, email string) ([]bson.M, error) {
	keys := []string{email}
	app, err := s.trainers.FindApproved(ctx, email)
	switch {
	case err == nil:
		keys = append([]string{app.ID.Hex()}, keys...)
	case trainer.IsErrNotFound(err):
	default:
		return nil, err
	}
	return s.repo.ListByTrainerKeys(ctx, keys)
}
