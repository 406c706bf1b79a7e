package launchd

// ProcessType is the scheduling class launchd applies to a job.
type ProcessType string

const (
	ProcessTypeBackground  ProcessType = "Background"
	ProcessTypeStandard    ProcessType = "Standard"
	ProcessTypeAdaptive    ProcessType = "Adaptive"
	ProcessTypeInteractive ProcessType = "Interactive"
)

// ParseProcessType maps the exact schema spelling to a ProcessType.
func ParseProcessType(s string) (ProcessType, error) {
	switch s {
	case "Background":
		return ProcessTypeBackground, nil
	case "Standard":
		return ProcessTypeStandard, nil
	case "Adaptive":
		return ProcessTypeAdaptive, nil
	case "Interactive":
		return ProcessTypeInteractive, nil
	}
	return "", &EnumError{Type: "ProcessType", Value: s}
}

func (p ProcessType) MarshalPlist() (interface{}, error) {
	if _, err := ParseProcessType(string(p)); err != nil {
		return nil, err
	}
	return string(p), nil
}

func (p *ProcessType) UnmarshalPlist(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseProcessType(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
