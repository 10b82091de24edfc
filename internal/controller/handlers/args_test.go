package handlers

import (
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandArgs(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, commandArgs("/purchase  1 2 "))
	assert.Empty(t, commandArgs("/help"))
	assert.Nil(t, commandArgs(""))
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"0", "-1", "abc", ""} {
		_, err := parseID(bad)
		assert.ErrorIs(t, err, errUsage, bad)
	}
}

func TestParseDateTime(t *testing.T) {
	got, err := parseDateTime("12.12.2023", "09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 12, 12, 9, 30, 0, 0, time.UTC), got)

	_, err = parseDateTime("2023-12-12", "09:30")
	assert.ErrorIs(t, err, errUsage)
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("01.02.2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestParseWeekdays(t *testing.T) {
	got, err := parseWeekdays("1,3,5")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, got)

	_, err = parseWeekdays("1,7")
	assert.ErrorIs(t, err, errUsage)
}

func TestParseTimes(t *testing.T) {
	got, err := parseTimes("10:00,18:30")
	require.NoError(t, err)
	assert.Equal(t, []service.TimeOfDay{{Hour: 10}, {Hour: 18, Minute: 30}}, got)

	_, err = parseTimes("25:00")
	assert.ErrorIs(t, err, errUsage)
}

func TestParseCategory(t *testing.T) {
	got, err := parseCategory("Maths")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryMaths, got)

	_, err = parseCategory("cooking")
	assert.ErrorIs(t, err, errUsage)
}

func TestParseAbsence(t *testing.T) {
	yes, err := parseAbsence("YES")
	assert.NoError(t, err)
	assert.True(t, yes)

	no, err := parseAbsence("нет")
	assert.NoError(t, err)
	assert.False(t, no)

	_, err = parseAbsence("maybe")
	assert.ErrorIs(t, err, errUsage)
}
