package launchd

import (
	"errors"
	"fmt"
)

var (
	ErrMissingLabel   = errors.New("label is required")
	ErrMissingProgram = errors.New("program or program arguments are required")
)

// OutOfRangeError reports a calendar field value outside its inclusive range.
type OutOfRangeError struct {
	Field string
	Min   uint8
	Max   uint8
	Value uint64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s value %d should lie in inclusive range %d..=%d", e.Field, e.Value, e.Min, e.Max)
}

// IntegerRangeError reports a document integer that does not fit the type of
// its key.
type IntegerRangeError struct {
	Key   string
	Type  string
	Value string
}

func (e *IntegerRangeError) Error() string {
	return fmt.Sprintf("%s: integer %s does not fit %s", e.Key, e.Value, e.Type)
}

// InvalidCronFieldError reports a cron ordinal that does not fit a calendar field.
type InvalidCronFieldError struct {
	Field string
	Value uint32
}

func (e *InvalidCronFieldError) Error() string {
	return fmt.Sprintf("cron %s field generated an invalid value: %d", e.Field, e.Value)
}

// PathError reports a path that cannot be stored as plist text.
type PathError struct {
	Path string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %q is not valid UTF-8", e.Path)
}

// EnumError reports a string that matches no variant of a closed enumeration.
type EnumError struct {
	Type  string
	Value string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("deserialization of enum %s: unknown variant %q", e.Type, e.Value)
}

// UnknownKeyError reports a dictionary key the schema does not define.
type UnknownKeyError struct {
	Type string
	Key  string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("%s: unknown key %q", e.Type, e.Key)
}

// ReadError wraps a failure to decode a property list.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return "read plist: " + e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }

// WriteError wraps a failure to encode a property list.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return "write plist: " + e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }

// isDomainError reports whether err came from schema validation rather than
// a structural type mismatch inside the codec.
func isDomainError(err error) bool {
	var (
		rangeErr *OutOfRangeError
		intErr   *IntegerRangeError
		enumErr  *EnumError
		keyErr   *UnknownKeyError
		pathErr  *PathError
	)
	return errors.As(err, &rangeErr) ||
		errors.As(err, &intErr) ||
		errors.As(err, &enumErr) ||
		errors.As(err, &keyErr) ||
		errors.As(err, &pathErr)
}
