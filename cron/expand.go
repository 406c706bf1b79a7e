package cron

import (
	"math"

	"github.com/linanwx/golaunchd/launchd"
)

type setter func(launchd.CalendarInterval, uint8) (launchd.CalendarInterval, error)

// CalendarIntervals converts a schedule into the StartCalendarInterval list
// that fires at the same times.
//
// Units are iterated month, weekday, day, hour, minute (outermost first) and
// the output keeps that order. Wildcard units are left unset and their loop
// runs a single pass. A schedule where every unit is a wildcard yields no
// intervals. Any unconvertible or out-of-range value aborts the expansion.
func CalendarIntervals(s Schedule) ([]launchd.CalendarInterval, error) {
	var out []launchd.CalendarInterval
	for _, month := range s.Months.ordinals() {
		for _, weekday := range s.DaysOfWeek.ordinals() {
			for _, day := range s.DaysOfMonth.ordinals() {
				for _, hour := range s.Hours.ordinals() {
					for _, minute := range s.Minutes.ordinals() {
						ci, err := s.interval(month, weekday, day, hour, minute)
						if err != nil {
							return nil, err
						}
						if ci.IsInitialized() {
							out = append(out, ci)
						}
						if s.Minutes.Wildcard {
							break
						}
					}
					if s.Hours.Wildcard {
						break
					}
				}
				if s.DaysOfMonth.Wildcard {
					break
				}
			}
			if s.DaysOfWeek.Wildcard {
				break
			}
		}
		if s.Months.Wildcard {
			break
		}
	}
	return out, nil
}

func (s Schedule) interval(month, weekday, day, hour, minute uint32) (launchd.CalendarInterval, error) {
	units := []struct {
		name  string
		field Field
		value uint32
		set   setter
	}{
		{launchd.MonthField.Name, s.Months, month, launchd.CalendarInterval.WithMonth},
		{launchd.WeekdayField.Name, s.DaysOfWeek, weekday, launchd.CalendarInterval.WithWeekday},
		{launchd.DayField.Name, s.DaysOfMonth, day, launchd.CalendarInterval.WithDay},
		{launchd.HourField.Name, s.Hours, hour, launchd.CalendarInterval.WithHour},
		{launchd.MinuteField.Name, s.Minutes, minute, launchd.CalendarInterval.WithMinute},
	}

	ci := launchd.NewCalendarInterval()
	for _, u := range units {
		if u.field.Wildcard {
			continue
		}
		if u.value > math.MaxUint8 {
			return launchd.CalendarInterval{}, &launchd.InvalidCronFieldError{Field: u.name, Value: u.value}
		}
		next, err := u.set(ci, uint8(u.value))
		if err != nil {
			return launchd.CalendarInterval{}, err
		}
		ci = next
	}
	return ci, nil
}

// Expand parses expr and returns its calendar intervals.
func Expand(expr string) ([]launchd.CalendarInterval, error) {
	s, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return CalendarIntervals(s)
}
