package launchd

import (
	"fmt"
	"strings"
)

// CalendarField names one unit of a CalendarInterval and its inclusive bounds.
type CalendarField struct {
	Name string
	Min  uint8
	Max  uint8
}

var (
	MinuteField  = CalendarField{Name: "Minute", Min: 0, Max: 59}
	HourField    = CalendarField{Name: "Hour", Min: 0, Max: 23}
	DayField     = CalendarField{Name: "Day", Min: 1, Max: 31}
	WeekdayField = CalendarField{Name: "Weekday", Min: 0, Max: 7}
	MonthField   = CalendarField{Name: "Month", Min: 1, Max: 12}
)

// Validate returns value narrowed to uint8 when it lies within the field's range.
func (f CalendarField) Validate(value uint64) (uint8, error) {
	if value < uint64(f.Min) || value > uint64(f.Max) {
		return 0, &OutOfRangeError{Field: f.Name, Min: f.Min, Max: f.Max, Value: value}
	}
	return uint8(value), nil
}

type calendarValue struct {
	value uint8
	set   bool
}

func (v calendarValue) get() (uint8, bool) { return v.value, v.set }

func (v calendarValue) ptr() *uint64 {
	if !v.set {
		return nil
	}
	n := uint64(v.value)
	return &n
}

// CalendarInterval is one StartCalendarInterval entry. Unset units match every
// value of that unit; several intervals in a list are OR'ed together.
//
// Weekday 0 and 7 are both accepted and kept as given.
type CalendarInterval struct {
	minute  calendarValue
	hour    calendarValue
	day     calendarValue
	weekday calendarValue
	month   calendarValue
}

// NewCalendarInterval returns an interval with no units set.
func NewCalendarInterval() CalendarInterval {
	return CalendarInterval{}
}

func (c CalendarInterval) WithMinute(minute uint8) (CalendarInterval, error) {
	v, err := MinuteField.Validate(uint64(minute))
	if err != nil {
		return c, err
	}
	c.minute = calendarValue{value: v, set: true}
	return c, nil
}

func (c CalendarInterval) WithHour(hour uint8) (CalendarInterval, error) {
	v, err := HourField.Validate(uint64(hour))
	if err != nil {
		return c, err
	}
	c.hour = calendarValue{value: v, set: true}
	return c, nil
}

func (c CalendarInterval) WithDay(day uint8) (CalendarInterval, error) {
	v, err := DayField.Validate(uint64(day))
	if err != nil {
		return c, err
	}
	c.day = calendarValue{value: v, set: true}
	return c, nil
}

func (c CalendarInterval) WithWeekday(weekday uint8) (CalendarInterval, error) {
	v, err := WeekdayField.Validate(uint64(weekday))
	if err != nil {
		return c, err
	}
	c.weekday = calendarValue{value: v, set: true}
	return c, nil
}

func (c CalendarInterval) WithMonth(month uint8) (CalendarInterval, error) {
	v, err := MonthField.Validate(uint64(month))
	if err != nil {
		return c, err
	}
	c.month = calendarValue{value: v, set: true}
	return c, nil
}

func (c CalendarInterval) Minute() (uint8, bool)  { return c.minute.get() }
func (c CalendarInterval) Hour() (uint8, bool)    { return c.hour.get() }
func (c CalendarInterval) Day() (uint8, bool)     { return c.day.get() }
func (c CalendarInterval) Weekday() (uint8, bool) { return c.weekday.get() }
func (c CalendarInterval) Month() (uint8, bool)   { return c.month.get() }

// IsInitialized reports whether at least one unit is set. An interval with
// nothing set would match every minute and is never written to a job.
func (c CalendarInterval) IsInitialized() bool {
	return c.minute.set || c.hour.set || c.day.set || c.weekday.set || c.month.set
}

func (c CalendarInterval) String() string {
	var parts []string
	for _, u := range []struct {
		name string
		v    calendarValue
	}{
		{MinuteField.Name, c.minute},
		{HourField.Name, c.hour},
		{DayField.Name, c.day},
		{WeekdayField.Name, c.weekday},
		{MonthField.Name, c.month},
	} {
		if u.v.set {
			parts = append(parts, fmt.Sprintf("%s:%d", u.name, u.v.value))
		}
	}
	return "{" + strings.Join(parts, " ") + "}"
}

type calendarIntervalPlist struct {
	Minute  *uint64 `plist:"Minute,omitempty"`
	Hour    *uint64 `plist:"Hour,omitempty"`
	Day     *uint64 `plist:"Day,omitempty"`
	Weekday *uint64 `plist:"Weekday,omitempty"`
	Month   *uint64 `plist:"Month,omitempty"`
}

func (c CalendarInterval) MarshalPlist() (interface{}, error) {
	return calendarIntervalPlist{
		Minute:  c.minute.ptr(),
		Hour:    c.hour.ptr(),
		Day:     c.day.ptr(),
		Weekday: c.weekday.ptr(),
		Month:   c.month.ptr(),
	}, nil
}

func (c *CalendarInterval) UnmarshalPlist(unmarshal func(interface{}) error) error {
	var raw calendarIntervalPlist
	if err := unmarshal(&raw); err != nil {
		return err
	}

	var out CalendarInterval
	for _, u := range []struct {
		field CalendarField
		raw   *uint64
		dst   *calendarValue
	}{
		{MinuteField, raw.Minute, &out.minute},
		{HourField, raw.Hour, &out.hour},
		{DayField, raw.Day, &out.day},
		{WeekdayField, raw.Weekday, &out.weekday},
		{MonthField, raw.Month, &out.month},
	} {
		if u.raw == nil {
			continue
		}
		v, err := u.field.Validate(*u.raw)
		if err != nil {
			return err
		}
		*u.dst = calendarValue{value: v, set: true}
	}
	*c = out
	return nil
}
