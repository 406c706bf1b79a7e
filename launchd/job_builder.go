package launchd

import (
	"maps"
	"slices"
)

// Flag names a boolean key of Job. Its value is the schema key.
type Flag string

const (
	Disabled                 Flag = "Disabled"
	EnableGlobbing           Flag = "EnableGlobbing"
	EnableTransactions       Flag = "EnableTransactions"
	EnablePressuredExit      Flag = "EnablePressuredExit"
	OnDemand                 Flag = "OnDemand"
	ServiceIPC               Flag = "ServiceIPC"
	RunAtLoad                Flag = "RunAtLoad"
	InitGroups               Flag = "InitGroups"
	StartOnMount             Flag = "StartOnMount"
	Debug                    Flag = "Debug"
	WaitForDebugger          Flag = "WaitForDebugger"
	AbandonProcessGroup      Flag = "AbandonProcessGroup"
	LowPriorityIO            Flag = "LowPriorityIO"
	LowPriorityBackgroundIO  Flag = "LowPriorityBackgroundIO"
	MaterializeDatalessFiles Flag = "MaterializeDatalessFiles"
	LaunchOnlyOnce           Flag = "LaunchOnlyOnce"
	HopefullyExitsLast       Flag = "HopefullyExitsLast"
	HopefullyExitsFirst      Flag = "HopefullyExitsFirst"
	SessionCreate            Flag = "SessionCreate"
	LegacyTimers             Flag = "LegacyTimers"
)

// Flags lists every boolean key in schema order.
var Flags = []Flag{
	Disabled, EnableGlobbing, EnableTransactions, EnablePressuredExit, OnDemand,
	ServiceIPC, RunAtLoad, InitGroups, StartOnMount, Debug, WaitForDebugger,
	AbandonProcessGroup, LowPriorityIO, LowPriorityBackgroundIO,
	MaterializeDatalessFiles, LaunchOnlyOnce, HopefullyExitsLast,
	HopefullyExitsFirst, SessionCreate, LegacyTimers,
}

// ParseFlag returns the Flag whose schema key is s.
func ParseFlag(s string) (Flag, error) {
	for _, f := range Flags {
		if string(f) == s {
			return f, nil
		}
	}
	return "", &EnumError{Type: "Flag", Value: s}
}

func (j *Job) flagField(f Flag) **bool {
	switch f {
	case Disabled:
		return &j.Disabled
	case EnableGlobbing:
		return &j.EnableGlobbing
	case EnableTransactions:
		return &j.EnableTransactions
	case EnablePressuredExit:
		return &j.EnablePressuredExit
	case OnDemand:
		return &j.OnDemand
	case ServiceIPC:
		return &j.ServiceIPC
	case RunAtLoad:
		return &j.RunAtLoad
	case InitGroups:
		return &j.InitGroups
	case StartOnMount:
		return &j.StartOnMount
	case Debug:
		return &j.Debug
	case WaitForDebugger:
		return &j.WaitForDebugger
	case AbandonProcessGroup:
		return &j.AbandonProcessGroup
	case LowPriorityIO:
		return &j.LowPriorityIO
	case LowPriorityBackgroundIO:
		return &j.LowPriorityBackgroundIO
	case MaterializeDatalessFiles:
		return &j.MaterializeDatalessFiles
	case LaunchOnlyOnce:
		return &j.LaunchOnlyOnce
	case HopefullyExitsLast:
		return &j.HopefullyExitsLast
	case HopefullyExitsFirst:
		return &j.HopefullyExitsFirst
	case SessionCreate:
		return &j.SessionCreate
	case LegacyTimers:
		return &j.LegacyTimers
	}
	return nil
}

// WithFlag sets a boolean key. Unknown flags leave the job unchanged.
func (j Job) WithFlag(f Flag, value bool) Job {
	if field := j.flagField(f); field != nil {
		*field = &value
	}
	return j
}

// Enable sets each named boolean key to true.
func (j Job) Enable(flags ...Flag) Job {
	for _, f := range flags {
		j = j.WithFlag(f, true)
	}
	return j
}

func (j Job) WithLabel(label string) Job {
	j.Label = label
	return j
}

func (j Job) WithDisabled(value bool) Job {
	j.Disabled = &value
	return j
}

func (j Job) WithUserName(value string) Job {
	j.UserName = &value
	return j
}

func (j Job) WithGroupName(value string) Job {
	j.GroupName = &value
	return j
}

func (j Job) WithProgram(value string) Job {
	j.Program = &value
	return j
}

func (j Job) WithBundleProgram(value string) Job {
	j.BundleProgram = &value
	return j
}

func (j Job) WithEnableGlobbing(value bool) Job {
	j.EnableGlobbing = &value
	return j
}

func (j Job) WithEnableTransactions(value bool) Job {
	j.EnableTransactions = &value
	return j
}

func (j Job) WithEnablePressuredExit(value bool) Job {
	j.EnablePressuredExit = &value
	return j
}

func (j Job) WithRunAtLoad(value bool) Job {
	j.RunAtLoad = &value
	return j
}

func (j Job) WithRootDirectory(value string) Job {
	j.RootDirectory = &value
	return j
}

func (j Job) WithWorkingDirectory(value string) Job {
	j.WorkingDirectory = &value
	return j
}

func (j Job) WithUmask(value uint16) Job {
	j.Umask = &value
	return j
}

func (j Job) WithTimeOut(value uint32) Job {
	j.TimeOut = &value
	return j
}

func (j Job) WithExitTimeOut(value uint32) Job {
	j.ExitTimeOut = &value
	return j
}

func (j Job) WithThrottleInterval(value uint32) Job {
	j.ThrottleInterval = &value
	return j
}

func (j Job) WithInitGroups(value bool) Job {
	j.InitGroups = &value
	return j
}

func (j Job) WithStartOnMount(value bool) Job {
	j.StartOnMount = &value
	return j
}

func (j Job) WithStartInterval(value uint32) Job {
	j.StartInterval = &value
	return j
}

func (j Job) WithStandardInPath(value string) Job {
	j.StandardInPath = &value
	return j
}

func (j Job) WithStandardOutPath(value string) Job {
	j.StandardOutPath = &value
	return j
}

func (j Job) WithStandardErrorPath(value string) Job {
	j.StandardErrorPath = &value
	return j
}

func (j Job) WithDebug(value bool) Job {
	j.Debug = &value
	return j
}

func (j Job) WithWaitForDebugger(value bool) Job {
	j.WaitForDebugger = &value
	return j
}

func (j Job) WithNice(value int32) Job {
	j.Nice = &value
	return j
}

func (j Job) WithProcessType(value ProcessType) Job {
	j.ProcessType = &value
	return j
}

func (j Job) WithAbandonProcessGroup(value bool) Job {
	j.AbandonProcessGroup = &value
	return j
}

func (j Job) WithLowPriorityIO(value bool) Job {
	j.LowPriorityIO = &value
	return j
}

func (j Job) WithLowPriorityBackgroundIO(value bool) Job {
	j.LowPriorityBackgroundIO = &value
	return j
}

func (j Job) WithHopefullyExitsLast(value bool) Job {
	j.HopefullyExitsLast = &value
	return j
}

func (j Job) WithHopefullyExitsFirst(value bool) Job {
	j.HopefullyExitsFirst = &value
	return j
}

func (j Job) WithLegacyTimers(value bool) Job {
	j.LegacyTimers = &value
	return j
}

func (j Job) WithMaterializeDatalessFiles(value bool) Job {
	j.MaterializeDatalessFiles = &value
	return j
}

func (j Job) WithLaunchOnlyOnce(value bool) Job {
	j.LaunchOnlyOnce = &value
	return j
}

func (j Job) WithSessionCreate(value bool) Job {
	j.SessionCreate = &value
	return j
}

func (j Job) WithOnDemand(value bool) Job {
	j.OnDemand = &value
	return j
}

func (j Job) WithServiceIPC(value bool) Job {
	j.ServiceIPC = &value
	return j
}

func (j Job) WithKeepAlive(value KeepAlive) Job {
	j.KeepAlive = &value
	return j
}

func (j Job) WithSoftResourceLimits(value ResourceLimits) Job {
	j.SoftResourceLimits = &value
	return j
}

func (j Job) WithHardResourceLimits(value ResourceLimits) Job {
	j.HardResourceLimits = &value
	return j
}

func (j Job) WithLimitLoadToSessionType(value LoadSessionType) Job {
	j.LimitLoadToSessionType = &value
	return j
}

func (j Job) WithAssociatedBundleIdentifiers(value StringOrList) Job {
	j.AssociatedBundleIdentifiers = &value
	return j
}

func (j Job) WithLimitLoadToHosts(values ...string) Job {
	j.LimitLoadToHosts = slices.Clone(values)
	return j
}

func (j Job) WithLimitLoadFromHosts(values ...string) Job {
	j.LimitLoadFromHosts = slices.Clone(values)
	return j
}

func (j Job) WithProgramArguments(values ...string) Job {
	j.ProgramArguments = slices.Clone(values)
	return j
}

func (j Job) WithWatchPaths(values ...string) Job {
	j.WatchPaths = slices.Clone(values)
	return j
}

func (j Job) WithQueueDirectories(values ...string) Job {
	j.QueueDirectories = slices.Clone(values)
	return j
}

func (j Job) WithLimitLoadToHardware(value map[string][]string) Job {
	j.LimitLoadToHardware = maps.Clone(value)
	return j
}

func (j Job) WithLimitLoadFromHardware(value map[string][]string) Job {
	j.LimitLoadFromHardware = maps.Clone(value)
	return j
}

func (j Job) WithEnvironmentVariables(value map[string]string) Job {
	j.EnvironmentVariables = maps.Clone(value)
	return j
}

func (j Job) WithMachServices(value map[string]MachServiceEntry) Job {
	j.MachServices = maps.Clone(value)
	return j
}

func (j Job) WithLaunchEvents(value LaunchEvents) Job {
	j.LaunchEvents = maps.Clone(value)
	return j
}

// WithInetdCompatibility sets inetdCompatibility with its only key, Wait.
func (j Job) WithInetdCompatibility(wait bool) Job {
	j.InetdCompatibility = &InetdCompatibility{Wait: &wait}
	return j
}

// WithStartCalendarIntervals replaces the calendar schedule. Intervals with no
// unit set are dropped.
func (j Job) WithStartCalendarIntervals(intervals ...CalendarInterval) Job {
	kept := make(CalendarIntervals, 0, len(intervals))
	for _, ci := range intervals {
		if ci.IsInitialized() {
			kept = append(kept, ci)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	j.StartCalendarInterval = kept
	return j
}

// WithSocket adds sockets to the job. The first call stores the value as
// given; later calls turn the value into an array and append in call order.
// A value holding no socket leaves the job unchanged.
func (j Job) WithSocket(sockets Sockets) Job {
	sockets = sockets.withoutEmpty()
	if sockets.isEmpty() {
		return j
	}
	if j.Sockets == nil {
		added := sockets
		if added.IsArray() {
			added = NewSocketArray(added.Array...)
		} else {
			added = NewSockets(added.Dictionary)
		}
		j.Sockets = &added
		return j
	}
	merged := j.Sockets.merge(sockets)
	j.Sockets = &merged
	return j
}
