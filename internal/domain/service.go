// Package domain defines the business logic for the exercise log service.
package domain

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrUserNotFound is returned when a referenced user cannot be located.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoLogEntries indicates a log query matched zero records.
	ErrNoLogEntries = errors.New("no matching records")
)

// UserRepository captures persistence operations for users.
type UserRepository interface {
	InsertUser(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id primitive.ObjectID) (*User, error)
}

// ExerciseRepository captures persistence operations for exercises.
type ExerciseRepository interface {
	InsertExercise(ctx context.Context, exercise Exercise) (*Exercise, error)
	FindLogs(ctx context.Context, userID primitive.ObjectID, filter LogFilter) ([]Exercise, error)
}

// Service orchestrates user and exercise workflows.
type Service struct {
	users     UserRepository
	exercises ExerciseRepository
}

// NewService constructs a Service.
func NewService(users UserRepository, exercises ExerciseRepository) *Service {
	return &Service{users: users, exercises: exercises}
}

// CreateUser persists a new user. Username uniqueness is enforced by the
// store's unique index, so a duplicate surfaces as a store error.
func (s *Service) CreateUser(ctx context.Context, username string) (*User, error) {
	return s.users.InsertUser(ctx, username)
}

// ListUsers returns every user. An empty slice is a valid result.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.users.ListUsers(ctx)
}

// CreateExerciseInput captures the payload from the API layer. A nil Date
// means "use the current time".
type CreateExerciseInput struct {
	Description string
	DurationMin int
	Date        *time.Time
}

// CreateExercise records an exercise for an existing user. The owning user
// must exist at write time.
func (s *Service) CreateExercise(ctx context.Context, userID primitive.ObjectID, input CreateExerciseInput) (*User, *Exercise, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	date := time.Now().UTC()
	if input.Date != nil {
		date = input.Date.UTC()
	}

	exercise, err := s.exercises.InsertExercise(ctx, Exercise{
		UserID:      userID,
		Description: input.Description,
		DurationMin: input.DurationMin,
		Date:        date,
	})
	if err != nil {
		return nil, nil, err
	}
	return user, exercise, nil
}

// ListLogs fetches a user's exercises, newest first, honouring the optional
// date bounds and count cap. Zero matches fail with ErrNoLogEntries.
func (s *Service) ListLogs(ctx context.Context, userID primitive.ObjectID, filter LogFilter) (*User, []Exercise, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	logs, err := s.exercises.FindLogs(ctx, userID, filter)
	if err != nil {
		return nil, nil, err
	}
	if len(logs) == 0 {
		return nil, nil, ErrNoLogEntries
	}
	return user, logs, nil
}
