package class

import (
	"regexp"
	"strings"

	"fitness-tracker/backend/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/text/unicode/norm"
)

// MaxJoinedTrainers caps how many trainers are attached to each class.
const MaxJoinedTrainers = 5

var wsRe = regexp.MustCompile(`\s+`)

// NormalizeSearch folds compatibility characters (full-width letters and
// the like) and collapses whitespace so a pasted query still matches
// stored skill names.
func NormalizeSearch(q string) string {
	q = norm.NFKC.String(q)
	return strings.TrimSpace(wsRe.ReplaceAllString(q, " "))
}

// SearchPipeline matches classes by skillName substring and joins the
// approved trainers whose skills contain that skill, ignoring case.
func SearchPipeline(search string) bson.A {
	pipeline := bson.A{}
	if search != "" {
		pipeline = append(pipeline, bson.M{"$match": bson.M{
			"skillName": bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"},
		}})
	}

	pipeline = append(pipeline, bson.M{"$lookup": bson.M{
		"from": store.ColTrainers,
		"let":  bson.M{"skill": bson.M{"$toLower": "$skillName"}},
		"pipeline": bson.A{
			bson.M{"$match": bson.M{"$expr": bson.M{"$and": bson.A{
				bson.M{"$eq": bson.A{"$status", "trainer"}},
				bson.M{"$in": bson.A{"$$skill", bson.M{"$map": bson.M{
					"input": bson.M{"$ifNull": bson.A{"$skills", bson.A{}}},
					"as":    "s",
					"in":    bson.M{"$toLower": "$$s"},
				}}}},
			}}}},
			bson.M{"$limit": MaxJoinedTrainers},
			bson.M{"$project": bson.M{"fullName": 1, "photo": 1, "email": 1, "_id": 1}},
		},
		"as": "trainers",
	}})
	return pipeline
}

// TrainerClassesFilter selects classes teaching one of skills.
func TrainerClassesFilter(skills []string) bson.M {
	if skills == nil {
		skills = []string{}
	}
	return bson.M{"skillName": bson.M{"$in": skills}}
}
