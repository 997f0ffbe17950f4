package trainer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fitness-tracker/backend/internal/domain/user"
	"fitness-tracker/backend/internal/store"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store interface {
	List(ctx context.Context, f Filter) ([]bson.M, error)
	Get(ctx context.Context, id primitive.ObjectID) (bson.M, error)
	GetApplication(ctx context.Context, id primitive.ObjectID) (*Application, error)
	FindByEmailAndStatus(ctx context.Context, email, status string) (*Application, error)
	Insert(ctx context.Context, doc bson.M) (store.WriteResult, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string, extra bson.M) (store.WriteResult, error)
	UpdateAvailability(ctx context.Context, email string, in AvailabilityInput) (store.WriteResult, error)
	SetTimeSlots(ctx context.Context, id primitive.ObjectID, slots []string) (store.WriteResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (store.WriteResult, error)
	EmailsWithStatus(ctx context.Context, status string) ([]string, error)
}

// Users is the part of the user service that mirrors application status.
type Users interface {
	RoleOf(ctx context.Context, email string) (string, error)
	SetRole(ctx context.Context, email, role string) (store.WriteResult, error)
	EmailsWithRole(ctx context.Context, role string) ([]string, error)
}

type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ClaimsSyncer pushes the role onto the identity provider's custom claims.
type ClaimsSyncer interface {
	SyncRole(ctx context.Context, email, role string) error
}

type Service struct {
	repo   Store
	users  Users
	tx     Transactor
	claims ClaimsSyncer
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewService(repo Store, users Users, tx Transactor, log logrus.FieldLogger) *Service {
	return &Service{
		repo:  repo,
		users: users,
		tx:    tx,
		log:   log.WithField("component", "trainer"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// SetClaimsSyncer enables role claim sync after approve/delete.
func (s *Service) SetClaimsSyncer(c ClaimsSyncer) {
	s.claims = c
}

func (s *Service) ListApproved(ctx context.Context) ([]bson.M, error) {
	return s.repo.List(ctx, Filter{Statuses: []string{StatusTrainer}, NewestFirst: true})
}

func (s *Service) ListPending(ctx context.Context) ([]bson.M, error) {
	return s.repo.List(ctx, Filter{Statuses: []string{StatusPending}})
}

// ListMine returns the caller's own open or rejected applications.
func (s *Service) ListMine(ctx context.Context, callerEmail string) ([]bson.M, error) {
	if callerEmail == "" {
		return nil, fmt.Errorf("%w: caller email missing from token", ErrForbidden)
	}
	return s.repo.List(ctx, Filter{
		Statuses:    []string{StatusPending, StatusRejected},
		Email:       callerEmail,
		NewestFirst: true,
	})
}

func (s *Service) Get(ctx context.Context, id string) (bson.M, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

// Skills returns the skill set of the trainer document with the given id.
func (s *Service) Skills(ctx context.Context, id string) ([]string, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	app, err := s.repo.GetApplication(ctx, oid)
	if err != nil {
		return nil, err
	}
	return app.Skills, nil
}

// FindApproved returns the approved trainer registered under email.
func (s *Service) FindApproved(ctx context.Context, email string) (*Application, error) {
	return s.repo.FindByEmailAndStatus(ctx, email, StatusTrainer)
}

// Create stores a new pending application for the caller. The stored email
// is always the verified token email so later role writes find the user.
func (s *Service) Create(ctx context.Context, callerEmail string, body bson.M) (store.WriteResult, error) {
	doc := store.Strip(body, "status", "feedback", "created_at")

	if callerEmail == "" {
		return store.WriteResult{}, fmt.Errorf("%w: email is required", ErrBadRequest)
	}
	email, _ := doc["email"].(string)
	email = strings.TrimSpace(email)
	if email != "" && !strings.EqualFold(email, callerEmail) {
		return store.WriteResult{}, fmt.Errorf("%w: cannot apply on behalf of another account", ErrForbidden)
	}

	doc["email"] = callerEmail
	doc["status"] = StatusPending
	doc["created_at"] = s.now()
	return s.repo.Insert(ctx, doc)
}

// Approve promotes an application and its user in one transaction.
func (s *Service) Approve(ctx context.Context, id string) (*ApproveResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	app, err := s.repo.GetApplication(ctx, oid)
	if err != nil {
		return nil, err
	}

	out := &ApproveResult{Message: "Trainer approved successfully"}
	var admin bool
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		tr, err := s.repo.SetStatus(ctx, oid, StatusTrainer, nil)
		if err != nil {
			return err
		}
		if tr.MatchedCount == 0 {
			return fmt.Errorf("%w: trainer not found", ErrNotFound)
		}
		out.TrainerResult = tr
		ur, isAdmin, err := s.setRoleUnlessAdmin(ctx, app.Email, user.RoleTrainer)
		if err != nil {
			return err
		}
		out.UserResult, admin = ur, isAdmin
		return nil
	})
	if err != nil {
		if !IsErrNotFound(err) {
			s.log.WithError(err).WithFields(logrus.Fields{"id": id, "email": app.Email}).Error("approve failed")
		}
		return nil, err
	}

	if !admin {
		s.syncClaims(ctx, app.Email, user.RoleTrainer)
	}
	return out, nil
}

// Reject marks the application rejected. The user's role is not touched.
func (s *Service) Reject(ctx context.Context, id string, in RejectInput) (store.WriteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return store.WriteResult{}, err
	}
	res, err := s.repo.SetStatus(ctx, oid, StatusRejected, bson.M{"feedback": in.Feedback})
	if err != nil {
		return store.WriteResult{}, err
	}
	if res.MatchedCount == 0 {
		return store.WriteResult{}, fmt.Errorf("%w: trainer not found", ErrNotFound)
	}
	return res, nil
}

// UpdateAvailability overwrites the caller's own schedule and skills.
func (s *Service) UpdateAvailability(ctx context.Context, callerEmail, email string, in AvailabilityInput) (store.WriteResult, error) {
	if !strings.EqualFold(callerEmail, email) {
		return store.WriteResult{}, fmt.Errorf("%w: cannot update another trainer", ErrForbidden)
	}
	in.Trim()
	res, err := s.repo.UpdateAvailability(ctx, callerEmail, in)
	if err != nil {
		return store.WriteResult{}, err
	}
	if res.MatchedCount == 0 {
		return store.WriteResult{}, fmt.Errorf("%w: trainer not found", ErrNotFound)
	}
	return res, nil
}

// DeleteSlot removes one exact occurrence of slot from the caller's timeSlots.
func (s *Service) DeleteSlot(ctx context.Context, callerEmail, email, slot string) (*SlotResult, error) {
	if !strings.EqualFold(callerEmail, email) {
		return nil, fmt.Errorf("%w: cannot modify another trainer's slots", ErrForbidden)
	}
	if slot == "" {
		return nil, fmt.Errorf("%w: slot is required", ErrBadRequest)
	}

	app, err := s.repo.FindByEmailAndStatus(ctx, callerEmail, StatusTrainer)
	if err != nil {
		return nil, err
	}

	remaining, ok := removeOne(app.TimeSlots, slot)
	if !ok {
		return nil, fmt.Errorf("%w: slot not found", ErrNotFound)
	}

	res, err := s.repo.SetTimeSlots(ctx, app.ID, remaining)
	if err != nil {
		return nil, err
	}
	return &SlotResult{Message: "Slot deleted successfully", TimeSlots: remaining, Result: res}, nil
}

// Delete removes the application and demotes its user in one transaction.
func (s *Service) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	app, err := s.repo.GetApplication(ctx, oid)
	if err != nil {
		return nil, err
	}

	out := &DeleteResult{Message: "Trainer deleted successfully"}
	var admin bool
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		tr, err := s.repo.Delete(ctx, oid)
		if err != nil {
			return err
		}
		if tr.DeletedCount == 0 {
			return fmt.Errorf("%w: trainer not found", ErrNotFound)
		}
		out.TrainerResult = tr
		ur, isAdmin, err := s.setRoleUnlessAdmin(ctx, app.Email, user.RoleMember)
		if err != nil {
			return err
		}
		out.UserResult, admin = ur, isAdmin
		return nil
	})
	if err != nil {
		if !IsErrNotFound(err) {
			s.log.WithError(err).WithFields(logrus.Fields{"id": id, "email": app.Email}).Error("delete failed")
		}
		return nil, err
	}

	if !admin {
		s.syncClaims(ctx, app.Email, user.RoleMember)
	}
	return out, nil
}

// Reconcile repairs drift between approved applications and user roles.
// Admins are never demoted or re-labelled.
func (s *Service) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	approved, err := s.repo.EmailsWithStatus(ctx, StatusTrainer)
	if err != nil {
		return nil, fmt.Errorf("list approved trainers: %w", err)
	}
	trainers, err := s.users.EmailsWithRole(ctx, user.RoleTrainer)
	if err != nil {
		return nil, fmt.Errorf("list trainer users: %w", err)
	}
	admins, err := s.users.EmailsWithRole(ctx, user.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("list admin users: %w", err)
	}

	approvedSet := toSet(approved)
	trainerSet := toSet(trainers)
	adminSet := toSet(admins)

	report := &ReconcileReport{Promoted: []string{}, Demoted: []string{}}
	for _, email := range approved {
		if trainerSet[email] || adminSet[email] {
			continue
		}
		res, err := s.users.SetRole(ctx, email, user.RoleTrainer)
		if err != nil {
			return report, err
		}
		if res.MatchedCount > 0 {
			report.Promoted = append(report.Promoted, email)
			s.syncClaims(ctx, email, user.RoleTrainer)
		}
	}
	for _, email := range trainers {
		if approvedSet[email] {
			continue
		}
		if _, err := s.users.SetRole(ctx, email, user.RoleMember); err != nil {
			return report, err
		}
		report.Demoted = append(report.Demoted, email)
		s.syncClaims(ctx, email, user.RoleMember)
	}

	s.log.WithFields(logrus.Fields{
		"promoted": len(report.Promoted),
		"demoted":  len(report.Demoted),
	}).Info("trainer roles reconciled")
	return report, nil
}

// setRoleUnlessAdmin leaves admins untouched and reports whether it did.
func (s *Service) setRoleUnlessAdmin(ctx context.Context, email, role string) (store.WriteResult, bool, error) {
	current, err := s.users.RoleOf(ctx, email)
	if err != nil {
		return store.WriteResult{}, false, err
	}
	if current == user.RoleAdmin {
		return store.WriteResult{}, true, nil
	}
	res, err := s.users.SetRole(ctx, email, role)
	return res, false, err
}

func (s *Service) syncClaims(ctx context.Context, email, role string) {
	if s.claims == nil {
		return
	}
	if err := s.claims.SyncRole(ctx, email, role); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"email": email, "role": role}).Warn("claim sync failed")
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid trainer id", ErrBadRequest)
	}
	return oid, nil
}

func removeOne(slots []string, slot string) ([]string, bool) {
	for i, v := range slots {
		if v == slot {
			out := make([]string, 0, len(slots)-1)
			out = append(out, slots[:i]...)
			return append(out, slots[i+1:]...), true
		}
	}
	return slots, false
}

func toSet(xs []string) map[string]bool {
	m := make(map[string]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}
