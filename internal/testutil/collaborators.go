package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"fitness-tracker/backend/internal/domain/payment"
	"fitness-tracker/backend/internal/store"

	"firebase.google.com/go/v4/auth"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tx runs fn inline and optionally fails after it, to exercise rollback paths.
type Tx struct {
	Calls int
	Err   error
}

func (t *Tx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return t.Err
}

// Claims records role syncs.
type Claims struct {
	mu    sync.Mutex
	Roles map[string]string
	Err   error
}

func (c *Claims) SyncRole(_ context.Context, email, role string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Roles == nil {
		c.Roles = map[string]string{}
	}
	c.Roles[email] = role
	return c.Err
}

// Verifier accepts the tokens registered with Add.
type Verifier struct {
	Tokens map[string]*auth.Token
}

func NewVerifier() *Verifier {
	return &Verifier{Tokens: map[string]*auth.Token{}}
}

// Add registers token as a login for email with optional extra claims.
func (v *Verifier) Add(token, email string, claims map[string]interface{}) *Verifier {
	all := map[string]interface{}{"email": email}
	for k, val := range claims {
		all[k] = val
	}
	v.Tokens[token] = &auth.Token{UID: "uid-" + email, Claims: all}
	return v
}

func (v *Verifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if t, ok := v.Tokens[idToken]; ok {
		return t, nil
	}
	return nil, errors.New("invalid token")
}

// Classes is an in-memory class.Store.
type Classes struct {
	Docs       []bson.M
	LastSearch string
	LastSkills []string
}

func (c *Classes) Search(_ context.Context, search string) ([]bson.M, error) {
	c.LastSearch = search
	return append([]bson.M{}, c.Docs...), nil
}

func (c *Classes) Insert(_ context.Context, doc bson.M) (store.WriteResult, error) {
	return appendDoc(&c.Docs, doc), nil
}

func (c *Classes) NamesBySkills(_ context.Context, skills []string) ([]bson.M, error) {
	c.LastSkills = skills
	out := []bson.M{}
	for _, d := range c.Docs {
		name, _ := d["skillName"].(string)
		if contains(skills, name) {
			out = append(out, bson.M{"className": d["className"]})
		}
	}
	return out, nil
}

// Bookings is an in-memory booking.Store.
type Bookings struct {
	Docs     []bson.M
	LastKeys []string
}

func (b *Bookings) Insert(_ context.Context, doc bson.M) (interface{}, error) {
	id := primitive.NewObjectID()
	doc["_id"] = id
	b.Docs = append(b.Docs, doc)
	return id, nil
}

func (b *Bookings) ListByMember(_ context.Context, email string) ([]bson.M, error) {
	out := []bson.M{}
	for _, d := range b.Docs {
		if d["memberEmail"] == email {
			out = append(out, d)
		}
	}
	return out, nil
}

func (b *Bookings) ListByTrainerKeys(_ context.Context, keys []string) ([]bson.M, error) {
	b.LastKeys = keys
	out := []bson.M{}
	for _, d := range b.Docs {
		if contains(keys, d["trainerId"]) {
			out = append(out, d)
		}
	}
	return out, nil
}

// Gateway is a payment.Gateway that records requests.
type Gateway struct {
	Requests []payment.IntentRequest
	Err      error
}

func (g *Gateway) CreatePaymentIntent(_ context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	g.Requests = append(g.Requests, req)
	if g.Err != nil {
		return nil, g.Err
	}
	return &payment.Intent{ID: "pi_test", ClientSecret: "pi_test_secret", Status: "requires_payment_method"}, nil
}

// Ledger is an in-memory payment.Ledger.
type Ledger struct {
	Records map[string]payment.Record
	Err     error
}

func NewLedger() *Ledger { return &Ledger{Records: map[string]payment.Record{}} }

func (l *Ledger) Record(_ context.Context, rec payment.Record) error {
	if l.Err != nil {
		return l.Err
	}
	l.Records[rec.PaymentIntentID] = rec
	return nil
}

func (l *Ledger) UpdateStatus(_ context.Context, intentID, status string, at time.Time) (bool, error) {
	rec, ok := l.Records[intentID]
	if !ok {
		return false, nil
	}
	rec.Status = status
	rec.UpdatedAt = at
	l.Records[intentID] = rec
	return true, nil
}
