package launchd

import "maps"

// KeepAlive is either a plain flag or a set of conditions under which launchd
// keeps the job running.
type KeepAlive struct {
	Enabled *bool
	Options *KeepAliveOptions
}

// KeepAliveEnabled returns a KeepAlive written as a bare boolean.
func KeepAliveEnabled(enabled bool) KeepAlive {
	return KeepAlive{Enabled: &enabled}
}

// KeepAliveWhen returns a KeepAlive written as a conditions dictionary.
func KeepAliveWhen(options KeepAliveOptions) KeepAlive {
	return KeepAlive{Options: &options}
}

func (k KeepAlive) MarshalPlist() (interface{}, error) {
	if k.Enabled != nil {
		return *k.Enabled, nil
	}
	if k.Options != nil {
		return *k.Options, nil
	}
	return false, nil
}

func (k *KeepAlive) UnmarshalPlist(unmarshal func(interface{}) error) error {
	var (
		enabled bool
		options KeepAliveOptions
	)
	return decodeFirst(unmarshal,
		shape{&enabled, func() { *k = KeepAlive{Enabled: &enabled} }},
		shape{&options, func() { *k = KeepAlive{Options: &options} }},
	)
}

// KeepAliveOptions is the dictionary form of KeepAlive.
type KeepAliveOptions struct {
	SuccessfulExit     *bool           `plist:"SuccessfulExit,omitempty"`
	NetworkState       *bool           `plist:"NetworkState,omitempty"`
	PathState          map[string]bool `plist:"PathState,omitempty"`
	OtherJobEnabled    map[string]bool `plist:"OtherJobEnabled,omitempty"`
	Crashed            *bool           `plist:"Crashed,omitempty"`
	AfterInitialDemand map[string]bool `plist:"AfterInitialDemand,omitempty"`
}

func NewKeepAliveOptions() KeepAliveOptions {
	return KeepAliveOptions{}
}

func (o KeepAliveOptions) WithSuccessfulExit(value bool) KeepAliveOptions {
	o.SuccessfulExit = &value
	return o
}

func (o KeepAliveOptions) WithNetworkState(value bool) KeepAliveOptions {
	o.NetworkState = &value
	return o
}

func (o KeepAliveOptions) WithPathState(value map[string]bool) KeepAliveOptions {
	o.PathState = maps.Clone(value)
	return o
}

func (o KeepAliveOptions) WithOtherJobEnabled(value map[string]bool) KeepAliveOptions {
	o.OtherJobEnabled = maps.Clone(value)
	return o
}

func (o KeepAliveOptions) WithCrashed(value bool) KeepAliveOptions {
	o.Crashed = &value
	return o
}

func (o KeepAliveOptions) WithAfterInitialDemand(value map[string]bool) KeepAliveOptions {
	o.AfterInitialDemand = maps.Clone(value)
	return o
}
