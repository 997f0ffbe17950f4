package payment

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Payment record statuses. Anything after "created" comes from the webhook.
const (
	StatusCreated   = "created"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusCanceled  = "canceled"
)

// MaxAmount is the largest charge in major units. It keeps the minor-unit
// conversion well inside int64 and matches the gateway's eight-digit cap.
const MaxAmount = 999999.99

type CreateIntentInput struct {
	Amount interface{} `json:"amount"`
}

type IntentRequest struct {
	AmountMinor int64
	Currency    string
	Metadata    map[string]string
}

type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

type IntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// Record is one row of the payments ledger.
type Record struct {
	PaymentIntentID string    `bson:"paymentIntentId" json:"paymentIntentId"`
	Email           string    `bson:"email" json:"email"`
	Amount          int64     `bson:"amount" json:"amount"`
	Currency        string    `bson:"currency" json:"currency"`
	Status          string    `bson:"status" json:"status"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// ParseAmount accepts a JSON number or a numeric string in major units.
func ParseAmount(v interface{}) (float64, error) {
	var f float64
	switch a := v.(type) {
	case float64:
		f = a
	case json.Number:
		parsed, err := a.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: amount must be a number", ErrBadRequest)
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: amount must be a number", ErrBadRequest)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("%w: amount must be a number", ErrBadRequest)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, fmt.Errorf("%w: amount must be a positive number", ErrBadRequest)
	}
	if f > MaxAmount {
		return 0, fmt.Errorf("%w: amount exceeds the maximum", ErrBadRequest)
	}
	return f, nil
}

// ToMinorUnits converts major units to cents, rounding half away from zero.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
