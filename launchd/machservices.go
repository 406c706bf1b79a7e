package launchd

// MachServiceEntry is the value of one MachServices key: a flag or options.
type MachServiceEntry struct {
	Enabled *bool
	Options *MachServiceOptions
}

func MachServiceEnabled(enabled bool) MachServiceEntry {
	return MachServiceEntry{Enabled: &enabled}
}

func MachServiceWith(options MachServiceOptions) MachServiceEntry {
	return MachServiceEntry{Options: &options}
}

func (e MachServiceEntry) MarshalPlist() (interface{}, error) {
	if e.Enabled != nil {
		return *e.Enabled, nil
	}
	if e.Options != nil {
		return *e.Options, nil
	}
	return true, nil
}

func (e *MachServiceEntry) UnmarshalPlist(unmarshal func(interface{}) error) error {
	var (
		enabled bool
		options MachServiceOptions
	)
	return decodeFirst(unmarshal,
		shape{&enabled, func() { *e = MachServiceEntry{Enabled: &enabled} }},
		shape{&options, func() { *e = MachServiceEntry{Options: &options} }},
	)
}

// MachServiceFlag names a MachServiceOptions flag that Enable switches on.
type MachServiceFlag int

const (
	MachServiceResetAtClose MachServiceFlag = iota
	MachServiceHideUntilCheckIn
)

type MachServiceOptions struct {
	ResetAtClose     *bool `plist:"ResetAtClose,omitempty"`
	HideUntilCheckIn *bool `plist:"HideUntilCheckIn,omitempty"`
}

func NewMachServiceOptions() MachServiceOptions {
	return MachServiceOptions{}
}

func (o MachServiceOptions) WithResetAtClose(value bool) MachServiceOptions {
	o.ResetAtClose = &value
	return o
}

func (o MachServiceOptions) WithHideUntilCheckIn(value bool) MachServiceOptions {
	o.HideUntilCheckIn = &value
	return o
}

// Enable sets each named flag to true.
func (o MachServiceOptions) Enable(flags ...MachServiceFlag) MachServiceOptions {
	for _, f := range flags {
		switch f {
		case MachServiceResetAtClose:
			o = o.WithResetAtClose(true)
		case MachServiceHideUntilCheckIn:
			o = o.WithHideUntilCheckIn(true)
		}
	}
	return o
}
