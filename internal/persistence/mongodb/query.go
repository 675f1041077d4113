package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogQuery builds the filter document for a user's exercise log. Nil bounds
// are open; when both are present the range is inclusive on both ends.
func LogQuery(userID primitive.ObjectID, from, to *time.Time) bson.M {
	filter := bson.M{"user_id": userID}

	dateRange := bson.M{}
	if from != nil {
		dateRange["$gte"] = primitive.NewDateTimeFromTime(from.UTC())
	}
	if to != nil {
		dateRange["$lte"] = primitive.NewDateTimeFromTime(to.UTC())
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}
	return filter
}
