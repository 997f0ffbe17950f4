package user

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
	Upsert(ctx context.Context, email string, profile bson.M, now time.Time) (store.WriteResult, error)
	List(ctx context.Context) ([]bson.M, error)
	FindByEmail(ctx context.Context, email string) (bson.M, error)
	SetRole(ctx context.Context, email, role string) (store.WriteResult, error)
	ListEmailsByRole(ctx context.Context, role string) ([]string, error)
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

// SignIn upserts the caller's user document keyed by email.
func (s *Service) SignIn(ctx context.Context, callerEmail string, body bson.M) (store.WriteResult, error) {
	email, _ := body[FieldEmail].(string)
	email = strings.TrimSpace(email)
	if email == "" {
		email = callerEmail
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		return store.WriteResult{}, fmt.Errorf("%w: a valid email is required", ErrBadRequest)
	}
	if !strings.EqualFold(email, callerEmail) {
		return store.WriteResult{}, fmt.Errorf("%w: email does not match the signed in account", ErrForbidden)
	}
	// the token email is canonical; the body may differ in case
	return s.repo.Upsert(ctx, callerEmail, body, s.now())
}

func (s *Service) List(ctx context.Context) ([]bson.M, error) {
	return s.repo.List(ctx)
}

// GetPrivileged returns the user only when their role is trainer or admin.
func (s *Service) GetPrivileged(ctx context.Context, email string) (bson.M, error) {
	doc, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	role, _ := doc[FieldRole].(string)
	if !IsPrivileged(role) {
		return nil, fmt.Errorf("%w: no trainer or admin with that email", ErrNotFound)
	}
	return doc, nil
}

// RoleOf returns the stored role, or "" when the user does not exist.
func (s *Service) RoleOf(ctx context.Context, email string) (string, error) {
	doc, err := s.repo.FindByEmail(ctx, email)
	if IsErrNotFound(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	role, _ := doc[FieldRole].(string)
	return role, nil
}

func (s *Service) SetRole(ctx context.Context, email, role string) (store.WriteResult, error) {
	return s.repo.SetRole(ctx, email, role)
}

func (s *Service) EmailsWithRole(ctx context.Context, role string) ([]string, error) {
	return s.repo.ListEmailsByRole(ctx, role)
}
