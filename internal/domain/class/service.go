package class

import (
	"context"
	"fmt"

	"fitness-tracker/backend/internal/store"

	"go.mongodb.org/mongo-driver/bson"
)

type Store interface {
	Search(ctx context.Context, search string) ([]bson.M, error)
	Insert(ctx context.Context, doc bson.M) (store.WriteResult, error)
	NamesBySkills(ctx context.Context, skills []string) ([]bson.M, error)
}

// Trainers resolves a trainer document id to its skills.
type Trainers interface {
	Skills(ctx context.Context, id string) ([]string, error)
}

type Service struct {
	repo     Store
	trainers Trainers
}

func NewService(repo Store, trainers Trainers) *Service {
	return &Service{repo: repo, trainers: trainers}
}

func (s *Service) Search(ctx context.Context, q string) ([]bson.M, error) {
	return s.repo.Search(ctx, NormalizeSearch(q))
}

func (s *Service) Create(ctx context.Context, body bson.M) (store.WriteResult, error) {
	doc := store.Strip(body)
	if len(doc) == 0 {
		return store.WriteResult{}, fmt.Errorf("%w: empty class document", ErrBadRequest)
	}
	return s.repo.Insert(ctx, doc)
}

// ForTrainer lists the class names matching the trainer's skills. The
// trainer lookup error is returned as is so callers can map its kind.
func (s *Service) ForTrainer(ctx context.Context, trainerID string) ([]bson.M, error) {
	skills, err := s.trainers.Skills(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	return s.repo.NamesBySkills(ctx, skills)
}
