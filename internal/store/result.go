package store

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WriteResult is the JSON shape returned to clients for raw write routes.
type WriteResult struct {
	Acknowledged  bool        `json:"acknowledged"`
	InsertedID    interface{} `json:"insertedId,omitempty"`
	UpsertedID    interface{} `json:"upsertedId,omitempty"`
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	DeletedCount  int64       `json:"deletedCount"`
}

func FromInsert(res *mongo.InsertOneResult) WriteResult {
	if res == nil {
		return WriteResult{}
	}
	return WriteResult{Acknowledged: true, InsertedID: res.InsertedID}
}

func FromUpdate(res *mongo.UpdateResult) WriteResult {
	if res == nil {
		return WriteResult{}
	}
	return WriteResult{
		Acknowledged:  true,
		UpsertedID:    res.UpsertedID,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}
}

func FromDelete(res *mongo.DeleteResult) WriteResult {
	if res == nil {
		return WriteResult{}
	}
	return WriteResult{Acknowledged: true, DeletedCount: res.DeletedCount}
}

// ParseID converts a hex path parameter into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

// IDString renders a document _id the way bookings store trainer references.
func IDString(v interface{}) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return ""
	}
}

// Strip removes keys the server owns from a client supplied document.
func Strip(doc bson.M, keys ...string) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	delete(out, "_id")
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
