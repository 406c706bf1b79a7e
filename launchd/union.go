package launchd

import (
	"reflect"
	"slices"
	"sort"
	"strings"
)

// shape is one candidate decoding of a value that the schema allows to take
// several forms. accept runs after target decoded successfully.
type shape struct {
	target interface{}
	accept func()
}

// decodeFirst tries each shape in order and keeps the first one the codec can
// decode. A schema error from a shape that matched structurally stops the
// search.
func decodeFirst(unmarshal func(interface{}) error, shapes ...shape) error {
	var lastErr error
	for _, s := range shapes {
		err := unmarshal(s.target)
		if err == nil {
			s.accept()
			return nil
		}
		if isDomainError(err) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

// plistKeys returns the dictionary keys declared by the plist tags of t.
func plistKeys(t reflect.Type) map[string]struct{} {
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("plist"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		keys[name] = struct{}{}
	}
	return keys
}

// decodeStrict decodes the current dictionary generically and fails on the
// first key (in sorted order) that allowed does not contain. The generic
// values are returned for checks the typed decode cannot make.
func decodeStrict(typeName string, allowed map[string]struct{}, unmarshal func(interface{}) error) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := unmarshal(&raw); err != nil {
		return nil, err
	}
	for _, k := range sortedKeys(raw) {
		if _, ok := allowed[k]; !ok {
			return nil, &UnknownKeyError{Type: typeName, Key: k}
		}
	}
	return raw, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StringOrList is a value written either as a bare string or as an array of
// strings. It backs LimitLoadToSessionType and AssociatedBundleIdentifiers.
type StringOrList struct {
	Value  *string
	Values []string
}

// LoadSessionType selects the launchd session types a job is loaded into.
type LoadSessionType = StringOrList

const (
	SessionAqua        = "Aqua"
	SessionBackground  = "Background"
	SessionLoginWindow = "LoginWindow"
	SessionStandardIO  = "StandardIO"
	SessionSystem      = "System"
)

// StringValue returns a StringOrList holding one bare string.
func StringValue(s string) StringOrList {
	return StringOrList{Value: &s}
}

// StringList returns a StringOrList holding an array.
func StringList(items ...string) StringOrList {
	return StringOrList{Values: slices.Clone(items)}
}

// IsList reports whether the value is written as an array.
func (v StringOrList) IsList() bool { return v.Values != nil }

func (v StringOrList) MarshalPlist() (interface{}, error) {
	if v.Values != nil {
		return v.Values, nil
	}
	if v.Value != nil {
		return *v.Value, nil
	}
	return []string{}, nil
}

func (v *StringOrList) UnmarshalPlist(unmarshal func(interface{}) error) error {
	var (
		s    string
		list []string
	)
	return decodeFirst(unmarshal,
		shape{&s, func() { *v = StringOrList{Value: &s} }},
		shape{&list, func() { *v = StringOrList{Values: list} }},
	)
}

// Bonjour is the Bonjour value of a socket: a flag, one service name, or a
// list of service names.
type Bonjour struct {
	Enabled *bool
	Name    *string
	Names   []string
}

func BonjourEnabled(enabled bool) Bonjour { return Bonjour{Enabled: &enabled} }
func BonjourName(name string) Bonjour { return Bonjour{Name: &name} }
func BonjourNames(names ...string) Bonjour { return Bonjour{Names: slices.Clone(names)} }

func (b Bonjour) MarshalPlist() (interface{}, error) {
	switch {
	case b.Enabled != nil:
		return *b.Enabled, nil
	case b.Name != nil:
		return *b.Name, nil
	case b.Names != nil:
		return b.Names, nil
	}
	return false, nil
}

func (b *Bonjour) UnmarshalPlist(unmarshal func(interface{}) error) error {
	var (
		enabled bool
		name    string
		names   []string
	)
	return decodeFirst(unmarshal,
		shape{&enabled, func() { *b = Bonjour{Enabled: &enabled} }},
		shape{&name, func() { *b = Bonjour{Name: &name} }},
		shape{&names, func() { *b = Bonjour{Names: names} }},
	)
}
