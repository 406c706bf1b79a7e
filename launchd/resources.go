package launchd

import "reflect"

// ResourceLimits is the value of SoftResourceLimits and HardResourceLimits.
type ResourceLimits struct {
	Core              *uint64 `plist:"Core,omitempty"`
	CPU               *uint64 `plist:"CPU,omitempty"`
	Data              *uint64 `plist:"Data,omitempty"`
	FileSize          *uint64 `plist:"FileSize,omitempty"`
	MemoryLock        *uint64 `plist:"MemoryLock,omitempty"`
	NumberOfFiles     *uint64 `plist:"NumberOfFiles,omitempty"`
	NumberOfProcesses *uint64 `plist:"NumberOfProcesses,omitempty"`
	ResidentSetSize   *uint64 `plist:"ResidentSetSize,omitempty"`
	Stack             *uint64 `plist:"Stack,omitempty"`
}

type resourceLimitsPlist ResourceLimits

var resourceLimitKeys = plistKeys(reflect.TypeOf(resourceLimitsPlist{}))

func NewResourceLimits() ResourceLimits {
	return ResourceLimits{}
}

func (r ResourceLimits) WithCore(value uint64) ResourceLimits {
	r.Core = &value
	return r
}

func (r ResourceLimits) WithCPU(value uint64) ResourceLimits {
	r.CPU = &value
	return r
}

func (r ResourceLimits) WithData(value uint64) ResourceLimits {
	r.Data = &value
	return r
}

func (r ResourceLimits) WithFileSize(value uint64) ResourceLimits {
	r.FileSize = &value
	return r
}

func (r ResourceLimits) WithMemoryLock(value uint64) ResourceLimits {
	r.MemoryLock = &value
	return r
}

func (r ResourceLimits) WithNumberOfFiles(value uint64) ResourceLimits {
	r.NumberOfFiles = &value
	return r
}

func (r ResourceLimits) WithNumberOfProcesses(value uint64) ResourceLimits {
	r.NumberOfProcesses = &value
	return r
}

func (r ResourceLimits) WithResidentSetSize(value uint64) ResourceLimits {
	r.ResidentSetSize = &value
	return r
}

func (r ResourceLimits) WithStack(value uint64) ResourceLimits {
	r.Stack = &value
	return r
}

func (r ResourceLimits) MarshalPlist() (interface{}, error) {
	return resourceLimitsPlist(r), nil
}

// UnmarshalPlist rejects negative and oversized limits. Unknown keys are
// ignored, as launchd ignores them.
func (r *ResourceLimits) UnmarshalPlist(unmarshal func(interface{}) error) error {
	var generic map[string]interface{}
	if err := unmarshal(&generic); err != nil {
		return err
	}
	if err := checkIntegers(generic, resourceLimitIntegers); err != nil {
		return err
	}
	var raw resourceLimitsPlist
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*r = ResourceLimits(raw)
	return nil
}
