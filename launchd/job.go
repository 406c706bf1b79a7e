package launchd

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"
)

// LaunchEvents is a dictionary of event streams, each a dictionary of named
// event descriptors. Descriptor values are whatever the plist holds.
type LaunchEvents map[string]map[string]map[string]interface{}

// Job is the content of a launchd.plist file. Every field except Label is
// optional; nil means the key is absent from the document.
//
// The plist tag of each field is its schema key. Keys that do not follow the
// field name are ServiceIPC, CPU (in ResourceLimits), LowPriorityIO,
// LowPriorityBackgroundIO and inetdCompatibility.
type Job struct {
	Label                       string                      `plist:"Label"`
	Disabled                    *bool                       `plist:"Disabled,omitempty"`
	UserName                    *string                     `plist:"UserName,omitempty"`
	GroupName                   *string                     `plist:"GroupName,omitempty"`
	InetdCompatibility          *InetdCompatibility         `plist:"inetdCompatibility,omitempty"`
	LimitLoadToHosts            []string                    `plist:"LimitLoadToHosts,omitempty"`
	LimitLoadFromHosts          []string                    `plist:"LimitLoadFromHosts,omitempty"`
	LimitLoadToSessionType      *LoadSessionType            `plist:"LimitLoadToSessionType,omitempty"`
	LimitLoadToHardware         map[string][]string         `plist:"LimitLoadToHardware,omitempty"`
	LimitLoadFromHardware       map[string][]string         `plist:"LimitLoadFromHardware,omitempty"`
	Program                     *string                     `plist:"Program,omitempty"`
	BundleProgram               *string                     `plist:"BundleProgram,omitempty"`
	ProgramArguments            []string                    `plist:"ProgramArguments,omitempty"`
	EnableGlobbing              *bool                       `plist:"EnableGlobbing,omitempty"`
	EnableTransactions          *bool                       `plist:"EnableTransactions,omitempty"`
	EnablePressuredExit         *bool                       `plist:"EnablePressuredExit,omitempty"`
	OnDemand                    *bool                       `plist:"OnDemand,omitempty"`
	ServiceIPC                  *bool                       `plist:"ServiceIPC,omitempty"`
	KeepAlive                   *KeepAlive                  `plist:"KeepAlive,omitempty"`
	RunAtLoad                   *bool                       `plist:"RunAtLoad,omitempty"`
	RootDirectory               *string                     `plist:"RootDirectory,omitempty"`
	WorkingDirectory            *string                     `plist:"WorkingDirectory,omitempty"`
	EnvironmentVariables        map[string]string           `plist:"EnvironmentVariables,omitempty"`
	Umask                       *uint16                     `plist:"Umask,omitempty"`
	TimeOut                     *uint32                     `plist:"TimeOut,omitempty"`
	ExitTimeOut                 *uint32                     `plist:"ExitTimeOut,omitempty"`
	ThrottleInterval            *uint32                     `plist:"ThrottleInterval,omitempty"`
	InitGroups                  *bool                       `plist:"InitGroups,omitempty"`
	WatchPaths                  []string                    `plist:"WatchPaths,omitempty"`
	QueueDirectories            []string                    `plist:"QueueDirectories,omitempty"`
	StartOnMount                *bool                       `plist:"StartOnMount,omitempty"`
	StartInterval               *uint32                     `plist:"StartInterval,omitempty"`
	StartCalendarInterval       CalendarIntervals           `plist:"StartCalendarInterval,omitempty"`
	StandardInPath              *string                     `plist:"StandardInPath,omitempty"`
	StandardOutPath             *string                     `plist:"StandardOutPath,omitempty"`
	StandardErrorPath           *string                     `plist:"StandardErrorPath,omitempty"`
	Debug                       *bool                       `plist:"Debug,omitempty"`
	WaitForDebugger             *bool                       `plist:"WaitForDebugger,omitempty"`
	SoftResourceLimits          *ResourceLimits             `plist:"SoftResourceLimits,omitempty"`
	HardResourceLimits          *ResourceLimits             `plist:"HardResourceLimits,omitempty"`
	Nice                        *int32                      `plist:"Nice,omitempty"`
	ProcessType                 *ProcessType                `plist:"ProcessType,omitempty"`
	AbandonProcessGroup         *bool                       `plist:"AbandonProcessGroup,omitempty"`
	LowPriorityIO               *bool                       `plist:"LowPriorityIO,omitempty"`
	LowPriorityBackgroundIO     *bool                       `plist:"LowPriorityBackgroundIO,omitempty"`
	MaterializeDatalessFiles    *bool                       `plist:"MaterializeDatalessFiles,omitempty"`
	LaunchOnlyOnce              *bool                       `plist:"LaunchOnlyOnce,omitempty"`
	MachServices                map[string]MachServiceEntry `plist:"MachServices,omitempty"`
	Sockets                     *Sockets                    `plist:"Sockets,omitempty"`
	LaunchEvents                LaunchEvents                `plist:"LaunchEvents,omitempty"`
	HopefullyExitsLast          *bool                       `plist:"HopefullyExitsLast,omitempty"`
	HopefullyExitsFirst         *bool                       `plist:"HopefullyExitsFirst,omitempty"`
	SessionCreate               *bool                       `plist:"SessionCreate,omitempty"`
	LegacyTimers                *bool                       `plist:"LegacyTimers,omitempty"`
	AssociatedBundleIdentifiers *StringOrList               `plist:"AssociatedBundleIdentifiers,omitempty"`
}

// jobPlist has Job's layout without its codec hooks.
type jobPlist Job

var jobKeys = plistKeys(reflect.TypeOf(jobPlist{}))

// New returns a Job with the two keys every job needs.
func New(label, program string) Job {
	return Job{Label: label, Program: &program}
}

// SchemaKeys returns the top-level keys a Job accepts.
func SchemaKeys() []string {
	t := reflect.TypeOf(jobPlist{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("plist"), ",")
		keys = append(keys, name)
	}
	return keys
}

// Validate applies launchd's load-time requirements: a label and something
// to execute.
func (j Job) Validate() error {
	var errs []error
	if strings.TrimSpace(j.Label) == "" {
		errs = append(errs, ErrMissingLabel)
	}
	if j.Program == nil && len(j.ProgramArguments) == 0 && j.BundleProgram == nil {
		errs = append(errs, ErrMissingProgram)
	}
	return errors.Join(errs...)
}

func (j Job) paths() []*string {
	return []*string{
		j.Program,
		j.RootDirectory,
		j.WorkingDirectory,
		j.StandardInPath,
		j.StandardOutPath,
		j.StandardErrorPath,
	}
}

func (j Job) MarshalPlist() (interface{}, error) {
	for _, p := range j.paths() {
		if p != nil && !utf8.ValidString(*p) {
			return nil, &PathError{Path: *p}
		}
	}
	return jobPlist(j), nil
}

func (j *Job) UnmarshalPlist(unmarshal func(interface{}) error) error {
	generic, err := decodeStrict("Job", jobKeys, unmarshal)
	if err != nil {
		return err
	}
	if err := checkIntegers(generic, jobIntegers); err != nil {
		return err
	}
	var raw jobPlist
	if err := unmarshal(&raw); err != nil {
		return err
	}
	if raw.Label == "" {
		return fmt.Errorf("decode job: %w", ErrMissingLabel)
	}
	*j = Job(raw)
	return nil
}

// CalendarIntervals is the StartCalendarInterval value. launchd accepts a
// single dictionary or an array; it is always written as an array.
type CalendarIntervals []CalendarInterval

func (c CalendarIntervals) MarshalPlist() (interface{}, error) {
	return []CalendarInterval(c), nil
}

func (c *CalendarIntervals) UnmarshalPlist(unmarshal func(interface{}) error) error {
	var (
		list   []CalendarInterval
		single CalendarInterval
	)
	return decodeFirst(unmarshal,
		shape{&list, func() { *c = list }},
		shape{&single, func() { *c = CalendarIntervals{single} }},
	)
}
