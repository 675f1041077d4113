package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNonEmptyString(t *testing.T) {
	s, err := NonEmptyString("  alice  ")
	require.NoError(t, err)
	require.Equal(t, "alice", s)

	_, err = NonEmptyString(42.0)
	require.ErrorIs(t, err, ErrNotAString)

	_, err = NonEmptyString(nil)
	require.ErrorIs(t, err, ErrNotAString)

	_, err = NonEmptyString("   ")
	require.ErrorIs(t, err, ErrEmpty)

	_, err = NonEmptyString("")
	require.ErrorIs(t, err, ErrEmpty)
}

func TestObjectID(t *testing.T) {
	want := primitive.NewObjectID()
	got, err := ObjectID(want.Hex())
	require.NoError(t, err)
	require.Equal(t, want, got)

	cases := map[string]any{
		"too short":     "abc123",
		"too long":      "0123456789abcdef0123456789abcdef",
		"uppercase hex": "507F1F77BCF86CD799439011",
		"non-hex":       "507f1f77bcf86cd79943901z",
		"not a string":  12345.0,
		"empty":         "",
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ObjectID(value)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestDuration(t *testing.T) {
	minutes, err := Duration(30.0)
	require.NoError(t, err)
	require.Equal(t, 30, minutes)

	minutes, err = Duration(" 45 ")
	require.NoError(t, err)
	require.Equal(t, 45, minutes)

	for name, value := range map[string]any{
		"word":       "thirty",
		"fraction":   30.5,
		"zero":       0.0,
		"negative":   "-5",
		"nil":        nil,
		"bool":       true,
		"empty text": "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Duration(value)
			require.ErrorIs(t, err, ErrInvalidDuration)
		})
	}
}

func TestDateLayouts(t *testing.T) {
	for input, want := range map[string]time.Time{
		"2024-01-02":           time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		"2024-01-02T15:04:05":  time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC),
		"2024-01-02T15:04:05Z": time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC),
		"Jan 2 2024":           time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
	} {
		got, err := Date(input)
		require.NoError(t, err, input)
		require.True(t, want.Equal(got), "parsing %s", input)
	}

	_, err := Date("not-a-date")
	require.ErrorIs(t, err, ErrInvalidDate)

	_, err = Date("2024-13-45")
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestLogFilterLimit(t *testing.T) {
	filter, err := LogFilter("", "", "")
	require.NoError(t, err)
	require.Zero(t, filter.Limit, "absent limit must mean unbounded")

	filter, err = LogFilter("", "", "10")
	require.NoError(t, err)
	require.EqualValues(t, 10, filter.Limit)

	filter, err = LogFilter("", "", "50")
	require.NoError(t, err)
	require.EqualValues(t, 50, filter.Limit)

	_, err = LogFilter("", "", "51")
	require.ErrorIs(t, err, ErrLimitExceeded)

	_, err = LogFilter("", "", "ten")
	require.ErrorIs(t, err, ErrInvalidLimit)

	for _, raw := range []string{"0", "-3"} {
		filter, err = LogFilter("", "", raw)
		require.NoError(t, err)
		require.EqualValues(t, DefaultLimit, filter.Limit, "limit %s substitutes default", raw)
	}
}

func TestLogFilterDates(t *testing.T) {
	filter, err := LogFilter("2024-01-01", "2024-02-01", "")
	require.NoError(t, err)
	require.NotNil(t, filter.From)
	require.NotNil(t, filter.To)
	require.True(t, filter.From.Before(*filter.To))

	filter, err = LogFilter("2024-01-01", "", "")
	require.NoError(t, err)
	require.NotNil(t, filter.From)
	require.Nil(t, filter.To)

	// Present-but-empty values behave exactly like absent ones.
	filter, err = LogFilter("", "  ", "")
	require.NoError(t, err)
	require.Nil(t, filter.From)
	require.Nil(t, filter.To)

	_, err = LogFilter("bogus", "", "")
	require.ErrorIs(t, err, ErrInvalidDate)

	_, err = LogFilter("2024-02-01", "2024-01-01", "")
	require.ErrorIs(t, err, ErrFromAfterTo)

	// Equal bounds describe a single-day inclusive range, not an error.
	filter, err = LogFilter("2024-01-01", "2024-01-01", "")
	require.NoError(t, err)
	require.True(t, filter.From.Equal(*filter.To))
}
