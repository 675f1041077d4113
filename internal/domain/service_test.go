package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateExerciseRequiresExistingUser(t *testing.T) {
	service := NewService(&stubUsers{}, &stubExercises{})

	_, _, err := service.CreateExercise(context.Background(), primitive.NewObjectID(), CreateExerciseInput{
		Description: "run",
		DurationMin: 30,
	})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateExerciseDefaultsDate(t *testing.T) {
	user := User{ID: primitive.NewObjectID(), Username: "alice"}
	exercises := &stubExercises{}
	service := NewService(&stubUsers{user: &user}, exercises)

	before := time.Now().UTC()
	_, created, err := service.CreateExercise(context.Background(), user.ID, CreateExerciseInput{
		Description: "run",
		DurationMin: 30,
	})
	require.NoError(t, err)
	require.False(t, created.Date.Before(before))
	require.False(t, created.Date.After(time.Now().UTC()))
	require.Equal(t, time.UTC, created.Date.Location())
}

func TestCreateExerciseKeepsSuppliedDate(t *testing.T) {
	user := User{ID: primitive.NewObjectID(), Username: "alice"}
	service := NewService(&stubUsers{user: &user}, &stubExercises{})

	date := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	_, created, err := service.CreateExercise(context.Background(), user.ID, CreateExerciseInput{
		Description: "swim",
		DurationMin: 45,
		Date:        &date,
	})
	require.NoError(t, err)
	require.True(t, date.Equal(created.Date))
	require.Equal(t, user.ID, created.UserID)
}

func TestListLogsEmptyResult(t *testing.T) {
	user := User{ID: primitive.NewObjectID(), Username: "alice"}
	service := NewService(&stubUsers{user: &user}, &stubExercises{})

	_, _, err := service.ListLogs(context.Background(), user.ID, LogFilter{})
	require.ErrorIs(t, err, ErrNoLogEntries)
}

func TestListLogsUnknownUser(t *testing.T) {
	service := NewService(&stubUsers{}, &stubExercises{})

	_, _, err := service.ListLogs(context.Background(), primitive.NewObjectID(), LogFilter{})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestListLogsPassesFilterThrough(t *testing.T) {
	user := User{ID: primitive.NewObjectID(), Username: "alice"}
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	exercises := &stubExercises{logs: []Exercise{{UserID: user.ID, Description: "row", DurationMin: 20, Date: from}}}
	service := NewService(&stubUsers{user: &user}, exercises)

	filter := LogFilter{From: &from, Limit: 5}
	got, logs, err := service.ListLogs(context.Background(), user.ID, filter)
	require.NoError(t, err)
	require.Equal(t, user, *got)
	require.Len(t, logs, 1)
	require.Equal(t, filter, exercises.lastFilter)
}

type stubUsers struct {
	user *User
}

func (s *stubUsers) InsertUser(ctx context.Context, username string) (*User, error) {
	return &User{ID: primitive.NewObjectID(), Username: username}, nil
}

func (s *stubUsers) ListUsers(ctx context.Context) ([]User, error) {
	if s.user == nil {
		return []User{}, nil
	}
	return []User{*s.user}, nil
}

func (s *stubUsers) GetUser(ctx context.Context, id primitive.ObjectID) (*User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}

type stubExercises struct {
	logs       []Exercise
	lastFilter LogFilter
}

func (s *stubExercises) InsertExercise(ctx context.Context, exercise Exercise) (*Exercise, error) {
	exercise.ID = primitive.NewObjectID()
	return &exercise, nil
}

func (s *stubExercises) FindLogs(ctx context.Context, userID primitive.ObjectID, filter LogFilter) ([]Exercise, error) {
	s.lastFilter = filter
	return s.logs, nil
}
