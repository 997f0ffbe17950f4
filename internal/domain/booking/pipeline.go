package booking

import (
	"fitness-tracker/backend/internal/store"

	"go.mongodb.org/mongo-driver/bson"
)

// MemberBookingsPipeline matches a member's bookings and attaches the
// trainer document. Bookings keep trainerId as the hex string of the
// trainer's _id, so the join compares against $toString(_id).
func MemberBookingsPipeline(memberEmail string) bson.A {
	return bson.A{
		bson.M{"$match": bson.M{"memberEmail": memberEmail}},
		bson.M{"$lookup": bson.M{
			"from": store.ColTrainers,
			"let":  bson.M{"trainerId": bson.M{"$toString": "$trainerId"}},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{
					"$eq": bson.A{bson.M{"$toString": "$_id"}, "$$trainerId"},
				}}},
			},
			"as": "trainer",
		}},
		bson.M{"$unwind": bson.M{"path": "$trainer", "preserveNullAndEmptyArrays": true}},
		bson.M{"$sort": bson.M{"_id": -1}},
	}
}

// TrainerBookingsFilter matches bookings addressed to any of the trainer's
// keys (the hex id, plus the email used by older documents).
func TrainerBookingsFilter(keys []string) bson.M {
	if len(keys) == 1 {
		return bson.M{"trainerId": keys[0]}
	}
	return bson.M{"trainerId": bson.M{"$in": keys}}
}
