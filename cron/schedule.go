package cron

import (
	"errors"
	"fmt"
	"strings"
	"time"

	robfigcron "github.com/robfig/cron/v3"
)

// ErrUnsupportedSchedule is returned for expressions launchd cannot express
// as calendar intervals, such as "@every 5m" or a CRON_TZ prefix.
var ErrUnsupportedSchedule = errors.New("unsupported cron schedule")

// starBit marks a robfig field that was written as "*" or "?".
const starBit = 1 << 63

// Field is the set of values one cron unit matches.
type Field struct {
	Values   []uint32
	Wildcard bool
}

// Any returns a wildcard field.
func Any() Field {
	return Field{Wildcard: true}
}

// Only returns an explicit field matching exactly values.
func Only(values ...uint32) Field {
	return Field{Values: append([]uint32(nil), values...)}
}

// ordinals is what the expansion loops iterate. A wildcard with no values
// still yields one placeholder so the enclosing loops run.
func (f Field) ordinals() []uint32 {
	if f.Wildcard && len(f.Values) == 0 {
		return []uint32{0}
	}
	return f.Values
}

// Schedule is a parsed five-field cron expression.
type Schedule struct {
	Minutes     Field
	Hours       Field
	DaysOfMonth Field
	Months      Field
	DaysOfWeek  Field
}

// Parse parses a standard cron expression ("30 14 * * 1-5") or descriptor
// ("@daily").
func Parse(expr string) (Schedule, error) {
	expr = strings.TrimSpace(expr)
	parsed, err := robfigcron.ParseStandard(expr)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	spec, ok := parsed.(*robfigcron.SpecSchedule)
	if !ok {
		return Schedule{}, fmt.Errorf("%w: %q has no calendar form", ErrUnsupportedSchedule, expr)
	}
	if spec.Location != time.Local {
		return Schedule{}, fmt.Errorf("%w: %q sets a time zone", ErrUnsupportedSchedule, expr)
	}
	return Schedule{
		Minutes:     fieldFromBits(spec.Minute, 0, 59),
		Hours:       fieldFromBits(spec.Hour, 0, 23),
		DaysOfMonth: fieldFromBits(spec.Dom, 1, 31),
		Months:      fieldFromBits(spec.Month, 1, 12),
		DaysOfWeek:  fieldFromBits(spec.Dow, 0, 6),
	}, nil
}

func fieldFromBits(bits uint64, minimum, maximum uint32) Field {
	f := Field{Wildcard: bits&starBit != 0}
	for v := minimum; v <= maximum; v++ {
		if bits&(1<<v) != 0 {
			f.Values = append(f.Values, v)
		}
	}
	return f
}

// Next returns up to n activation times of expr strictly after from. It is a
// preview only; nothing is scheduled. A count of zero or less yields no times,
// though expr is still parsed.
func Next(expr string, from time.Time, n int) ([]time.Time, error) {
	parsed, err := robfigcron.ParseStandard(strings.TrimSpace(expr))
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	out := make([]time.Time, 0, max(n, 0))
	t := from
	for i := 0; i < n; i++ {
		t = parsed.Next(t)
		if t.IsZero() {
			break
		}
		out = append(out, t)
	}
	return out, nil
}
