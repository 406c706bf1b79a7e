package launchd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type calendarSetter struct {
	field CalendarField
	set   func(CalendarInterval, uint8) (CalendarInterval, error)
	get   func(CalendarInterval) (uint8, bool)
}

var calendarSetters = []calendarSetter{
	{MinuteField, CalendarInterval.WithMinute, CalendarInterval.Minute},
	{HourField, CalendarInterval.WithHour, CalendarInterval.Hour},
	{DayField, CalendarInterval.WithDay, CalendarInterval.Day},
	{WeekdayField, CalendarInterval.WithWeekday, CalendarInterval.Weekday},
	{MonthField, CalendarInterval.WithMonth, CalendarInterval.Month},
}

func TestCalendarFieldRanges(t *testing.T) {
	tests := []struct {
		field    CalendarField
		min, max uint8
	}{
		{MinuteField, 0, 59},
		{HourField, 0, 23},
		{DayField, 1, 31},
		{WeekdayField, 0, 7},
		{MonthField, 1, 12},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.min, tc.field.Min, tc.field.Name)
		assert.Equal(t, tc.max, tc.field.Max, tc.field.Name)
	}
}

func TestCalendarSettersAcceptEveryValueInRange(t *testing.T) {
	for _, s := range calendarSetters {
		t.Run(s.field.Name, func(t *testing.T) {
			for v := 0; v <= 255; v++ {
				ci, err := s.set(NewCalendarInterval(), uint8(v))
				inRange := v >= int(s.field.Min) && v <= int(s.field.Max)
				if inRange {
					require.NoError(t, err, "value %d", v)
					got, ok := s.get(ci)
					require.True(t, ok)
					require.Equal(t, uint8(v), got)
					continue
				}

				var rangeErr *OutOfRangeError
				require.True(t, errors.As(err, &rangeErr), "value %d should be rejected", v)
				assert.Equal(t, s.field.Name, rangeErr.Field)
				assert.Equal(t, s.field.Min, rangeErr.Min)
				assert.Equal(t, s.field.Max, rangeErr.Max)
				assert.Equal(t, uint64(v), rangeErr.Value)
			}
		})
	}
}

func TestCalendarZeroDayAndMonthRejected(t *testing.T) {
	_, err := NewCalendarInterval().WithDay(0)
	require.Error(t, err)
	_, err = NewCalendarInterval().WithMonth(0)
	require.Error(t, err)

	ci, err := NewCalendarInterval().WithWeekday(0)
	require.NoError(t, err)
	ci, err = ci.WithHour(0)
	require.NoError(t, err)
	ci, err = ci.WithMinute(0)
	require.NoError(t, err)
	assert.True(t, ci.IsInitialized())
}

func TestCalendarWeekdayZeroAndSevenStayDistinct(t *testing.T) {
	sunday0, err := NewCalendarInterval().WithWeekday(0)
	require.NoError(t, err)
	sunday7, err := NewCalendarInterval().WithWeekday(7)
	require.NoError(t, err)
	assert.NotEqual(t, sunday0, sunday7)

	got, _ := sunday7.Weekday()
	assert.Equal(t, uint8(7), got)
}

func TestCalendarSettersCommute(t *testing.T) {
	a, err := NewCalendarInterval().WithHour(9)
	require.NoError(t, err)
	a, err = a.WithMinute(30)
	require.NoError(t, err)

	b, err := NewCalendarInterval().WithMinute(30)
	require.NoError(t, err)
	b, err = b.WithHour(9)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCalendarSetterLastWriteWins(t *testing.T) {
	ci, err := NewCalendarInterval().WithMinute(5)
	require.NoError(t, err)
	ci, err = ci.WithMinute(45)
	require.NoError(t, err)

	got, ok := ci.Minute()
	require.True(t, ok)
	assert.Equal(t, uint8(45), got)
	_, ok = ci.Hour()
	assert.False(t, ok)
}

func TestCalendarFailedSetterLeavesValueUnchanged(t *testing.T) {
	base, err := NewCalendarInterval().WithDay(5)
	require.NoError(t, err)

	got, err := base.WithDay(32)
	require.Error(t, err)
	assert.Equal(t, base, got)
	day, _ := base.Day()
	assert.Equal(t, uint8(5), day)
}

func TestCalendarIsInitialized(t *testing.T) {
	assert.False(t, NewCalendarInterval().IsInitialized())
	for _, s := range calendarSetters {
		ci, err := s.set(NewCalendarInterval(), s.field.Min)
		require.NoError(t, err)
		assert.True(t, ci.IsInitialized(), s.field.Name)
	}
}

func TestCalendarIntervalString(t *testing.T) {
	ci, err := NewCalendarInterval().WithHour(14)
	require.NoError(t, err)
	ci, err = ci.WithMinute(30)
	require.NoError(t, err)
	assert.Equal(t, "{Minute:30 Hour:14}", ci.String())
	assert.Equal(t, "{}", NewCalendarInterval().String())
}
