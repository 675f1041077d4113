// Package mongodb provides document-store persistence for users and
// exercises.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"example.com/exerciselog/internal/domain"
	"example.com/exerciselog/internal/observability"
)

const (
	usersCollection     = "users"
	exercisesCollection = "exercises"
)

// Repository implements domain.UserRepository and domain.ExerciseRepository
// on top of a MongoDB database handle.
type Repository struct {
	users     *mongo.Collection
	exercises *mongo.Collection
}

// NewRepository constructs a Repository.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		users:     db.Collection(usersCollection),
		exercises: db.Collection(exercisesCollection),
	}
}

// EnsureIndexes creates the unique username index. Safe to call on every
// startup; index creation is idempotent.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

// InsertUser persists a new user and returns it with the store-generated
// identifier. Duplicate usernames fail on the unique index.
func (r *Repository) InsertUser(ctx context.Context, username string) (*domain.User, error) {
	result, err := r.users.InsertOne(ctx, bson.M{"username": username})
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert user: unexpected id type %T", result.InsertedID)
	}
	return &domain.User{ID: id, Username: username}, nil
}

// ListUsers returns all users projected to identifier and username.
func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	opts := options.Find().SetProjection(bson.M{"username": 1})
	cursor, err := r.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// GetUser fetches a user by identifier. A missing user yields (nil, nil).
func (r *Repository) GetUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// InsertExercise persists an exercise and returns it with the
// store-generated identifier.
func (r *Repository) InsertExercise(ctx context.Context, exercise domain.Exercise) (*domain.Exercise, error) {
	result, err := r.exercises.InsertOne(ctx, exercise)
	if err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert exercise: unexpected id type %T", result.InsertedID)
	}
	exercise.ID = id
	observability.RecordExercisePersisted(exercise.Date)
	return &exercise, nil
}

// FindLogs queries a user's exercises newest first, bounded by the optional
// date range and count cap.
func (r *Repository) FindLogs(ctx context.Context, userID primitive.ObjectID, filter domain.LogFilter) ([]domain.Exercise, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if filter.Limit > 0 {
		opts = opts.SetLimit(filter.Limit)
	}

	cursor, err := r.exercises.Find(ctx, LogQuery(userID, filter.From, filter.To), opts)
	if err != nil {
		return nil, fmt.Errorf("find logs: %w", err)
	}

	logs := make([]domain.Exercise, 0)
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("decode logs: %w", err)
	}
	return logs, nil
}
