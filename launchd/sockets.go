package launchd

import (
	"maps"
	"reflect"
	"slices"
	"unicode/utf8"
)

// Socket maps socket names to their options. It is one Sockets dictionary.
type Socket map[string]SocketOptions

// NewSocket returns a Socket with a single named entry.
func NewSocket(name string, options SocketOptions) Socket {
	return Socket{name: options}
}

// Sockets is the Sockets value of a job: one dictionary, or an array of them.
type Sockets struct {
	Dictionary Socket
	Array      []Socket
}

// NewSockets returns Sockets written as a single dictionary.
func NewSockets(socket Socket) Sockets {
	return Sockets{Dictionary: maps.Clone(socket)}
}

// NewSocketArray returns Sockets written as an array of dictionaries.
func NewSocketArray(sockets ...Socket) Sockets {
	out := make([]Socket, 0, len(sockets))
	for _, s := range sockets {
		out = append(out, maps.Clone(s))
	}
	return Sockets{Array: out}
}

// IsArray reports whether the sockets are written as an array.
func (s Sockets) IsArray() bool { return s.Array != nil }

// withoutEmpty drops array entries that hold no socket. An empty dictionary
// stays as it is; callers test for it with isEmpty.
func (s Sockets) withoutEmpty() Sockets {
	if s.Array == nil {
		return s
	}
	return Sockets{Array: slices.DeleteFunc(slices.Clone(s.Array), func(sock Socket) bool {
		return len(sock) == 0
	})}
}

func (s Sockets) isEmpty() bool {
	return len(s.Dictionary) == 0 && len(s.Array) == 0
}

// merge combines existing sockets with added ones, keeping insertion order.
// Two dictionaries become a two-element array; they are never merged key by key.
func (s Sockets) merge(added Sockets) Sockets {
	switch {
	case s.IsArray() && added.IsArray():
		return Sockets{Array: slices.Concat(s.Array, added.Array)}
	case s.IsArray():
		return Sockets{Array: slices.Concat(s.Array, []Socket{added.Dictionary})}
	case added.IsArray():
		return Sockets{Array: slices.Concat([]Socket{s.Dictionary}, added.Array)}
	default:
		return Sockets{Array: []Socket{s.Dictionary, added.Dictionary}}
	}
}

func (s Sockets) MarshalPlist() (interface{}, error) {
	if s.Array != nil {
		return s.Array, nil
	}
	if s.Dictionary != nil {
		return s.Dictionary, nil
	}
	return Socket{}, nil
}

func (s *Sockets) UnmarshalPlist(unmarshal func(interface{}) error) error {
	var (
		array []Socket
		dict  Socket
	)
	return decodeFirst(unmarshal,
		shape{&array, func() { *s = Sockets{Array: array} }},
		shape{&dict, func() { *s = Sockets{Dictionary: dict} }},
	)
}

type SocketType string

const (
	SocketTypeDgram     SocketType = "dgram"
	SocketTypeStream    SocketType = "stream"
	SocketTypeSeqpacket SocketType = "seqpacket"
)

func ParseSocketType(s string) (SocketType, error) {
	switch s {
	case "dgram":
		return SocketTypeDgram, nil
	case "stream":
		return SocketTypeStream, nil
	case "seqpacket":
		return SocketTypeSeqpacket, nil
	}
	return "", &EnumError{Type: "SocketType", Value: s}
}

func (t SocketType) MarshalPlist() (interface{}, error) {
	if _, err := ParseSocketType(string(t)); err != nil {
		return nil, err
	}
	return string(t), nil
}

func (t *SocketType) UnmarshalPlist(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseSocketType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type SocketFamily string

const (
	SocketFamilyIPv4 SocketFamily = "IPv4"
	SocketFamilyIPv6 SocketFamily = "IPv6"
	SocketFamilyUnix SocketFamily = "Unix"
)

func ParseSocketFamily(s string) (SocketFamily, error) {
	switch s {
	case "IPv4":
		return SocketFamilyIPv4, nil
	case "IPv6":
		return SocketFamilyIPv6, nil
	case "Unix":
		return SocketFamilyUnix, nil
	}
	return "", &EnumError{Type: "SocketFamily", Value: s}
}

func (f SocketFamily) MarshalPlist() (interface{}, error) {
	if _, err := ParseSocketFamily(string(f)); err != nil {
		return nil, err
	}
	return string(f), nil
}

func (f *SocketFamily) UnmarshalPlist(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseSocketFamily(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

type SocketProtocol string

const SocketProtocolTCP SocketProtocol = "TCP"

func ParseSocketProtocol(s string) (SocketProtocol, error) {
	if s == "TCP" {
		return SocketProtocolTCP, nil
	}
	return "", &EnumError{Type: "SocketProtocol", Value: s}
}

func (p SocketProtocol) MarshalPlist() (interface{}, error) {
	if _, err := ParseSocketProtocol(string(p)); err != nil {
		return nil, err
	}
	return string(p), nil
}

func (p *SocketProtocol) UnmarshalPlist(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseSocketProtocol(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// SocketOptions describes one socket launchd creates on behalf of the job.
// Unknown keys are rejected when decoding.
type SocketOptions struct {
	SockType            *SocketType     `plist:"SockType,omitempty"`
	SockPassive         *bool           `plist:"SockPassive,omitempty"`
	SockNodeName        *string         `plist:"SockNodeName,omitempty"`
	SockServiceName     *string         `plist:"SockServiceName,omitempty"`
	SockFamily          *SocketFamily   `plist:"SockFamily,omitempty"`
	SockProtocol        *SocketProtocol `plist:"SockProtocol,omitempty"`
	SockPathName        *string         `plist:"SockPathName,omitempty"`
	SecureSocketWithKey *string         `plist:"SecureSocketWithKey,omitempty"`
	SockPathMode        *int64          `plist:"SockPathMode,omitempty"`
	Bonjour             *Bonjour        `plist:"Bonjour,omitempty"`
	MulticastGroup      *string         `plist:"MulticastGroup,omitempty"`
}

type socketOptionsPlist SocketOptions

var socketOptionKeys = plistKeys(reflect.TypeOf(socketOptionsPlist{}))

func NewSocketOptions() SocketOptions {
	return SocketOptions{}
}

func (o SocketOptions) WithType(value SocketType) SocketOptions {
	o.SockType = &value
	return o
}

func (o SocketOptions) WithPassive(value bool) SocketOptions {
	o.SockPassive = &value
	return o
}

// Passive marks the socket as listening.
func (o SocketOptions) Passive() SocketOptions {
	return o.WithPassive(true)
}

func (o SocketOptions) WithNodeName(value string) SocketOptions {
	o.SockNodeName = &value
	return o
}

func (o SocketOptions) WithServiceName(value string) SocketOptions {
	o.SockServiceName = &value
	return o
}

func (o SocketOptions) WithFamily(value SocketFamily) SocketOptions {
	o.SockFamily = &value
	return o
}

func (o SocketOptions) WithProtocol(value SocketProtocol) SocketOptions {
	o.SockProtocol = &value
	return o
}

// WithPathName sets SockPathName. The path must be valid UTF-8.
func (o SocketOptions) WithPathName(path string) (SocketOptions, error) {
	if !utf8.ValidString(path) {
		return o, &PathError{Path: path}
	}
	o.SockPathName = &path
	return o, nil
}

func (o SocketOptions) WithSecureSocketKey(value string) SocketOptions {
	o.SecureSocketWithKey = &value
	return o
}

func (o SocketOptions) WithPathMode(value int64) SocketOptions {
	o.SockPathMode = &value
	return o
}

func (o SocketOptions) WithBonjour(value Bonjour) SocketOptions {
	o.Bonjour = &value
	return o
}

func (o SocketOptions) WithMulticastGroup(value string) SocketOptions {
	o.MulticastGroup = &value
	return o
}

func (o SocketOptions) MarshalPlist() (interface{}, error) {
	return socketOptionsPlist(o), nil
}

func (o *SocketOptions) UnmarshalPlist(unmarshal func(interface{}) error) error {
	generic, err := decodeStrict("SocketOptions", socketOptionKeys, unmarshal)
	if err != nil {
		return err
	}
	if err := checkIntegers(generic, socketOptionIntegers); err != nil {
		return err
	}
	var raw socketOptionsPlist
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*o = SocketOptions(raw)
	return nil
}
