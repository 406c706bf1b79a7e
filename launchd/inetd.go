package launchd

import (
	"sort"
)

// InetdCompatibility is the inetdCompatibility dictionary. Wait is the only
// key launchd defines for it.
type InetdCompatibility struct {
	Wait *bool `plist:"Wait,omitempty"`
}

type inetdPlist InetdCompatibility

func (c InetdCompatibility) MarshalPlist() (interface{}, error) {
	return inetdPlist(c), nil
}

func (c *InetdCompatibility) UnmarshalPlist(unmarshal func(interface{}) error) error {
	var raw map[string]bool
	if err := unmarshal(&raw); err != nil {
		return err
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k != "Wait" {
			return &EnumError{Type: "InetdCompatibility", Value: k}
		}
	}
	var out InetdCompatibility
	if wait, ok := raw["Wait"]; ok {
		out.Wait = &wait
	}
	*c = out
	return nil
}
