package launchd

import (
	"math"
	"strconv"
)

// intRange is the span of a Go integer type backing a plist key. The codec
// narrows document integers without checking, so decoders compare the
// generic value against it first.
type intRange struct {
	typ string
	min int64
	max uint64
}

var (
	uint16Range = intRange{typ: "uint16", max: math.MaxUint16}
	uint32Range = intRange{typ: "uint32", max: math.MaxUint32}
	uint64Range = intRange{typ: "uint64", max: math.MaxUint64}
	int32Range  = intRange{typ: "int32", min: math.MinInt32, max: math.MaxInt32}
	int64Range  = intRange{typ: "int64", min: math.MinInt64, max: math.MaxInt64}
)

// check reports whether v fits r. Values that are not integers are left for
// the typed decode to reject.
func (r intRange) check(key string, v interface{}) error {
	switch n := v.(type) {
	case uint64:
		if n > r.max {
			return &IntegerRangeError{Key: key, Type: r.typ, Value: strconv.FormatUint(n, 10)}
		}
	case int64:
		if n < r.min || (n > 0 && uint64(n) > r.max) {
			return &IntegerRangeError{Key: key, Type: r.typ, Value: strconv.FormatInt(n, 10)}
		}
	}
	return nil
}

// checkIntegers validates every key of raw that has an entry in ranges.
func checkIntegers(raw map[string]interface{}, ranges map[string]intRange) error {
	for _, k := range sortedKeys(raw) {
		r, ok := ranges[k]
		if !ok {
			continue
		}
		if err := r.check(k, raw[k]); err != nil {
			return err
		}
	}
	return nil
}

var jobIntegers = map[string]intRange{
	"Umask":            uint16Range,
	"TimeOut":          uint32Range,
	"ExitTimeOut":      uint32Range,
	"ThrottleInterval": uint32Range,
	"StartInterval":    uint32Range,
	"Nice":             int32Range,
}

var socketOptionIntegers = map[string]intRange{
	"SockPathMode": int64Range,
}

var resourceLimitIntegers = func() map[string]intRange {
	ranges := make(map[string]intRange)
	for k := range resourceLimitKeys {
		ranges[k] = uint64Range
	}
	return ranges
}()
