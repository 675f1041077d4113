package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that owns exercise records. Users are immutable after
// creation and are never deleted through the public interface.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
}

// Exercise is a single workout entry belonging to a user. The owning user is
// checked by lookup at write time, not by a store constraint.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id"`
	Description string             `bson:"description"`
	DurationMin int                `bson:"duration"`
	Date        time.Time          `bson:"date"`
}

// LogFilter narrows a log query. Nil bounds are open; Limit 0 means
// unbounded.
type LogFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int64
}
