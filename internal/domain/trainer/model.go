package trainer

import (
	"strings"

	"fitness-tracker/backend/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application statuses. An approved application carries status "trainer".
const (
	StatusPending  = "pending"
	StatusTrainer  = "trainer"
	StatusRejected = "rejected"
)

// Application is the subset of a trainer document the service reads.
// Everything else the applicant submitted stays in the raw document.
type Application struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email     string             `bson:"email" json:"email"`
	Status    string             `bson:"status" json:"status"`
	Skills    []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	TimeSlots []string           `bson:"timeSlots,omitempty" json:"timeSlots,omitempty"`
	Feedback  string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
}

type Filter struct {
	Statuses    []string
	Email       string
	NewestFirst bool
}

// AvailabilityInput replaces the schedule of an approved trainer.
// availableDays is kept opaque; the frontend sends select options.
type AvailabilityInput struct {
	AvailableDays interface{} `json:"availableDays"`
	TimeSlots     []string    `json:"timeSlots"`
	Skills        []string    `json:"skills"`
}

func (in *AvailabilityInput) Trim() {
	for i := range in.TimeSlots {
		in.TimeSlots[i] = strings.TrimSpace(in.TimeSlots[i])
	}
	for i := range in.Skills {
		in.Skills[i] = strings.TrimSpace(in.Skills[i])
	}
}

type RejectInput struct {
	Feedback string `json:"feedback"`
}

type DeleteSlotInput struct {
	Slot string `json:"slot"`
}

type ApproveResult struct {
	Message       string            `json:"message"`
	TrainerResult store.WriteResult `json:"trainerResult"`
	UserResult    store.WriteResult `json:"userResult"`
}

type DeleteResult struct {
	Message       string            `json:"message"`
	TrainerResult store.WriteResult `json:"trainerResult"`
	UserResult    store.WriteResult `json:"userResult"`
}

type SlotResult struct {
	Message   string            `json:"message"`
	TimeSlots []string          `json:"timeSlots"`
	Result    store.WriteResult `json:"result"`
}

type ReconcileReport struct {
	Promoted []string `json:"promoted"`
	Demoted  []string `json:"demoted"`
}
