package launchd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"
)

func wrapPlist(body string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>local.test</string>
	<key>Program</key>
	<string>/bin/true</string>
` + body + `
</dict>
</plist>
`)
}

func fullJob(t *testing.T) Job {
	t.Helper()
	morning, err := NewCalendarInterval().WithHour(7)
	require.NoError(t, err)
	morning, err = morning.WithMinute(45)
	require.NoError(t, err)
	firstOfMonth, err := NewCalendarInterval().WithDay(1)
	require.NoError(t, err)
	sockPath, err := NewSocketOptions().WithPathName("/var/run/local.test.sock")
	require.NoError(t, err)

	return New("local.test", "/usr/local/bin/worker").
		WithUserName("nobody").
		WithGroupName("staff").
		WithProgramArguments("worker", "--verbose").
		WithWorkingDirectory("/var/tmp").
		WithEnvironmentVariables(map[string]string{"HOME": "/var/empty"}).
		WithUmask(18).
		WithThrottleInterval(30).
		WithStartInterval(600).
		WithStartCalendarIntervals(morning, firstOfMonth).
		WithStandardOutPath("/tmp/worker.out").
		WithStandardErrorPath("/tmp/worker.err").
		WithNice(-5).
		WithProcessType(ProcessTypeAdaptive).
		WithLimitLoadToSessionType(StringList(SessionAqua, SessionBackground)).
		WithAssociatedBundleIdentifiers(StringValue("com.example.app")).
		WithWatchPaths("/etc/hosts").
		WithLimitLoadToHardware(map[string][]string{"hw.model": {"MacBookPro18,1"}}).
		WithKeepAlive(KeepAliveWhen(NewKeepAliveOptions().
			WithSuccessfulExit(false).
			WithOtherJobEnabled(map[string]bool{"local.other": true}))).
		WithSoftResourceLimits(NewResourceLimits().WithNumberOfFiles(1024).WithCPU(60)).
		WithHardResourceLimits(NewResourceLimits().WithCore(0)).
		WithMachServices(map[string]MachServiceEntry{
			"local.test.xpc":   MachServiceEnabled(true),
			"local.test.admin": MachServiceWith(NewMachServiceOptions().Enable(MachServiceResetAtClose)),
		}).
		WithInetdCompatibility(true).
		WithSocket(NewSockets(NewSocket("Listeners", NewSocketOptions().
			WithType(SocketTypeStream).
			WithFamily(SocketFamilyIPv4).
			WithProtocol(SocketProtocolTCP).
			WithServiceName("8080").
			WithBonjour(BonjourEnabled(true)).
			Passive()))).
		WithSocket(NewSockets(NewSocket("Local", sockPath.WithPathMode(384)))).
		Enable(RunAtLoad, LowPriorityIO, Disabled)
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{XML, Binary} {
		t.Run(format.String(), func(t *testing.T) {
			job := fullJob(t)
			data, err := job.Bytes(format)
			require.NoError(t, err)

			got, gotFormat, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, format, gotFormat)
			assert.Equal(t, job, got)
		})
	}
}

func TestWriteXMLKeys(t *testing.T) {
	data, err := fullJob(t).Bytes(XML)
	require.NoError(t, err)
	doc := string(data)

	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`))
	for _, key := range []string{
		"<key>inetdCompatibility</key>",
		"<key>LowPriorityIO</key>",
		"<key>StartCalendarInterval</key>",
		"<key>CPU</key>",
		"<key>SockPathMode</key>",
	} {
		assert.Contains(t, doc, key)
	}
	assert.NotContains(t, doc, "<key>OnDemand</key>")
	assert.Contains(t, doc, "\t<key>Label</key>")
}

func TestWriteMinimalJob(t *testing.T) {
	data, err := New("local.min", "/bin/true").Bytes(XML)
	require.NoError(t, err)

	got, err := ReadBytes(data)
	require.NoError(t, err)
	assert.Equal(t, New("local.min", "/bin/true"), got)
	assert.NotContains(t, string(data), "Disabled")
}

func TestWriteSingleCalendarIntervalAsArray(t *testing.T) {
	ci, err := NewCalendarInterval().WithWeekday(7)
	require.NoError(t, err)
	data, err := New("a", "/bin/true").WithStartCalendarIntervals(ci).Bytes(XML)
	require.NoError(t, err)

	assert.Regexp(t, `<key>StartCalendarInterval</key>\s*<array>\s*<dict>\s*<key>Weekday</key>\s*<integer>7</integer>`, string(data))
}

func TestReadFixtureAgent(t *testing.T) {
	job, err := ReadFile(filepath.Join("testdata", "agent.plist"))
	require.NoError(t, err)

	assert.Equal(t, "com.example.sync", job.Label)
	assert.Nil(t, job.Program)
	assert.Equal(t, []string{"/usr/local/bin/sync", "--quiet"}, job.ProgramArguments)
	assert.True(t, *job.RunAtLoad)
	assert.Equal(t, int32(-5), *job.Nice)
	assert.Equal(t, ProcessTypeBackground, *job.ProcessType)
	assert.Equal(t, "/usr/bin:/bin", job.EnvironmentVariables["PATH"])
	require.NoError(t, job.Validate())

	require.NotNil(t, job.KeepAlive)
	assert.Nil(t, job.KeepAlive.Enabled)
	require.NotNil(t, job.KeepAlive.Options)
	assert.False(t, *job.KeepAlive.Options.SuccessfulExit)
	assert.Equal(t, map[string]bool{"/tmp/sync.lock": true}, job.KeepAlive.Options.PathState)

	require.Len(t, job.StartCalendarInterval, 1)
	hour, ok := job.StartCalendarInterval[0].Hour()
	require.True(t, ok)
	assert.Equal(t, uint8(3), hour)
	minute, _ := job.StartCalendarInterval[0].Minute()
	assert.Equal(t, uint8(15), minute)
	_, ok = job.StartCalendarInterval[0].Day()
	assert.False(t, ok)

	require.NotNil(t, job.LimitLoadToSessionType)
	assert.False(t, job.LimitLoadToSessionType.IsList())
	assert.Equal(t, SessionAqua, *job.LimitLoadToSessionType.Value)

	require.NotNil(t, job.InetdCompatibility)
	assert.False(t, *job.InetdCompatibility.Wait)
}

func TestReadFixtureServices(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "services.plist"))
	require.NoError(t, err)
	defer f.Close()

	job, err := Read(f)
	require.NoError(t, err)

	xpc := job.MachServices["com.example.helper.xpc"]
	require.NotNil(t, xpc.Enabled)
	assert.True(t, *xpc.Enabled)
	admin := job.MachServices["com.example.helper.admin"]
	assert.Nil(t, admin.Enabled)
	require.NotNil(t, admin.Options)
	assert.True(t, *admin.Options.HideUntilCheckIn)
	assert.Nil(t, admin.Options.ResetAtClose)

	require.NotNil(t, job.Sockets)
	assert.False(t, job.Sockets.IsArray())
	listeners := job.Sockets.Dictionary["Listeners"]
	assert.Equal(t, SocketTypeStream, *listeners.SockType)
	assert.Equal(t, SocketFamilyIPv4, *listeners.SockFamily)
	assert.Equal(t, "8080", *listeners.SockServiceName)
	require.NotNil(t, listeners.Bonjour)
	assert.Equal(t, []string{"http", "https"}, listeners.Bonjour.Names)

	matching := job.LaunchEvents["com.apple.iokit.matching"]["com.example.device-attach"]
	assert.Equal(t, uint64(4660), matching["idProduct"])
	assert.Equal(t, "IOUSBDevice", matching["IOProviderClass"])
	assert.Equal(t, true, matching["IOMatchLaunchStream"])

	require.NotNil(t, job.AssociatedBundleIdentifiers)
	assert.Equal(t, []string{"com.example.app"}, job.AssociatedBundleIdentifiers.Values)
}

func TestReadFixtureServicesRoundTrip(t *testing.T) {
	job, err := ReadFile(filepath.Join("testdata", "services.plist"))
	require.NoError(t, err)

	data, err := job.Bytes(XML)
	require.NoError(t, err)
	again, err := ReadBytes(data)
	require.NoError(t, err)
	assert.Equal(t, job, again)
}

func TestReadUnionShapes(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, job Job)
	}{
		{
			name: "keepalive flag",
			body: "<key>KeepAlive</key><true/>",
			check: func(t *testing.T, job Job) {
				assert.Equal(t, KeepAliveEnabled(true), *job.KeepAlive)
			},
		},
		{
			name: "sockets array",
			body: `<key>Sockets</key><array>
				<dict><key>A</key><dict><key>SockPassive</key><true/></dict></dict>
				<dict><key>B</key><dict><key>SockProtocol</key><string>TCP</string></dict></dict>
			</array>`,
			check: func(t *testing.T, job Job) {
				require.True(t, job.Sockets.IsArray())
				require.Len(t, job.Sockets.Array, 2)
				assert.True(t, *job.Sockets.Array[0]["A"].SockPassive)
				assert.Equal(t, SocketProtocolTCP, *job.Sockets.Array[1]["B"].SockProtocol)
			},
		},
		{
			name: "bonjour name",
			body: `<key>Sockets</key><dict><key>A</key><dict><key>Bonjour</key><string>ssh</string></dict></dict>`,
			check: func(t *testing.T, job Job) {
				assert.Equal(t, BonjourName("ssh"), *job.Sockets.Dictionary["A"].Bonjour)
			},
		},
		{
			name: "session list",
			body: `<key>LimitLoadToSessionType</key><array><string>Aqua</string><string>LoginWindow</string></array>`,
			check: func(t *testing.T, job Job) {
				assert.Equal(t, StringList(SessionAqua, SessionLoginWindow), *job.LimitLoadToSessionType)
			},
		},
		{
			name: "calendar interval array",
			body: `<key>StartCalendarInterval</key><array>
				<dict><key>Weekday</key><integer>0</integer></dict>
				<dict><key>Month</key><integer>12</integer><key>Day</key><integer>25</integer></dict>
			</array>`,
			check: func(t *testing.T, job Job) {
				require.Len(t, job.StartCalendarInterval, 2)
				wd, ok := job.StartCalendarInterval[0].Weekday()
				require.True(t, ok)
				assert.Equal(t, uint8(0), wd)
				assert.Equal(t, "{Day:25 Month:12}", job.StartCalendarInterval[1].String())
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			job, err := ReadBytes(wrapPlist(tc.body))
			require.NoError(t, err)
			tc.check(t, job)
		})
	}
}

func integerRangeCheck(key, typ, value string) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		var intErr *IntegerRangeError
		require.True(t, errors.As(err, &intErr), err.Error())
		assert.Equal(t, key, intErr.Key)
		assert.Equal(t, typ, intErr.Type)
		assert.Equal(t, value, intErr.Value)
	}
}

func TestReadRejects(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, err error)
	}{
		{
			name: "unknown top-level key",
			body: "<key>Bogus</key><true/>",
			check: func(t *testing.T, err error) {
				var keyErr *UnknownKeyError
				require.True(t, errors.As(err, &keyErr))
				assert.Equal(t, "Bogus", keyErr.Key)
				assert.Equal(t, "Job", keyErr.Type)
			},
		},
		{
			name: "unknown socket option",
			body: `<key>Sockets</key><dict><key>A</key><dict><key>SockColor</key><string>red</string></dict></dict>`,
			check: func(t *testing.T, err error) {
				var keyErr *UnknownKeyError
				require.True(t, errors.As(err, &keyErr))
				assert.Equal(t, "SocketOptions", keyErr.Type)
				assert.Equal(t, "SockColor", keyErr.Key)
			},
		},
		{
			name: "unknown process type",
			body: "<key>ProcessType</key><string>Bogus</string>",
			check: func(t *testing.T, err error) {
				var enumErr *EnumError
				require.True(t, errors.As(err, &enumErr))
				assert.Equal(t, "ProcessType", enumErr.Type)
				assert.Equal(t, "Bogus", enumErr.Value)
			},
		},
		{
			name: "lowercase socket family",
			body: `<key>Sockets</key><dict><key>A</key><dict><key>SockFamily</key><string>ipv4</string></dict></dict>`,
			check: func(t *testing.T, err error) {
				var enumErr *EnumError
				require.True(t, errors.As(err, &enumErr))
				assert.Equal(t, "SocketFamily", enumErr.Type)
			},
		},
		{
			name: "inetd key other than Wait",
			body: "<key>inetdCompatibility</key><dict><key>Wait</key><true/><key>Nowait</key><true/></dict>",
			check: func(t *testing.T, err error) {
				var enumErr *EnumError
				require.True(t, errors.As(err, &enumErr))
				assert.Equal(t, "InetdCompatibility", enumErr.Type)
				assert.Equal(t, "Nowait", enumErr.Value)
			},
		},
		{
			name: "calendar value out of range",
			body: "<key>StartCalendarInterval</key><dict><key>Month</key><integer>13</integer></dict>",
			check: func(t *testing.T, err error) {
				var rangeErr *OutOfRangeError
				require.True(t, errors.As(err, &rangeErr))
				assert.Equal(t, "Month", rangeErr.Field)
				assert.Equal(t, uint64(13), rangeErr.Value)
			},
		},
		{
			name:  "umask wider than uint16",
			body:  "<key>Umask</key><integer>70000</integer>",
			check: integerRangeCheck("Umask", "uint16", "70000"),
		},
		{
			name:  "negative start interval",
			body:  "<key>StartInterval</key><integer>-1</integer>",
			check: integerRangeCheck("StartInterval", "uint32", "-1"),
		},
		{
			name:  "timeout wider than uint32",
			body:  "<key>TimeOut</key><integer>4294967296</integer>",
			check: integerRangeCheck("TimeOut", "uint32", "4294967296"),
		},
		{
			name:  "nice above int32",
			body:  "<key>Nice</key><integer>3000000000</integer>",
			check: integerRangeCheck("Nice", "int32", "3000000000"),
		},
		{
			name:  "nice below int32",
			body:  "<key>Nice</key><integer>-3000000000</integer>",
			check: integerRangeCheck("Nice", "int32", "-3000000000"),
		},
		{
			name:  "negative resource limit",
			body:  "<key>SoftResourceLimits</key><dict><key>NumberOfFiles</key><integer>-1</integer></dict>",
			check: integerRangeCheck("NumberOfFiles", "uint64", "-1"),
		},
		{
			name:  "socket path mode above int64",
			body:  `<key>Sockets</key><dict><key>A</key><dict><key>SockPathMode</key><integer>9223372036854775808</integer></dict></dict>`,
			check: integerRangeCheck("SockPathMode", "int64", "9223372036854775808"),
		},
		{
			name: "plural calendar key",
			body: "<key>StartCalendarIntervals</key><array><dict><key>Hour</key><integer>9</integer></dict></array>",
			check: func(t *testing.T, err error) {
				var keyErr *UnknownKeyError
				require.True(t, errors.As(err, &keyErr))
				assert.Equal(t, "StartCalendarIntervals", keyErr.Key)
			},
		},
		{
			name: "calendar zero day in array",
			body: "<key>StartCalendarInterval</key><array><dict><key>Day</key><integer>0</integer></dict></array>",
			check: func(t *testing.T, err error) {
				var rangeErr *OutOfRangeError
				require.True(t, errors.As(err, &rangeErr))
				assert.Equal(t, "Day", rangeErr.Field)
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadBytes(wrapPlist(tc.body))
			require.Error(t, err)
			var readErr *ReadError
			require.True(t, errors.As(err, &readErr))
			tc.check(t, err)
		})
	}
}

func TestReadIntegerBounds(t *testing.T) {
	job, err := ReadBytes(wrapPlist(`<key>Umask</key><integer>65535</integer>
<key>StartInterval</key><integer>4294967295</integer>
<key>Nice</key><integer>-2147483648</integer>
<key>HardResourceLimits</key><dict><key>Stack</key><integer>18446744073709551615</integer></dict>`))
	require.NoError(t, err)
	assert.Equal(t, uint16(65535), *job.Umask)
	assert.Equal(t, uint32(4294967295), *job.StartInterval)
	assert.Equal(t, int32(-2147483648), *job.Nice)
	assert.Equal(t, uint64(18446744073709551615), *job.HardResourceLimits.Stack)
}

func TestReadBinaryIntegerOutOfRange(t *testing.T) {
	data, err := plist.Marshal(map[string]interface{}{
		"Label":   "local.test",
		"Program": "/bin/true",
		"Umask":   70000,
	}, plist.BinaryFormat)
	require.NoError(t, err)

	_, err = ReadBytes(data)
	var readErr *ReadError
	require.True(t, errors.As(err, &readErr), "%v", err)
	var intErr *IntegerRangeError
	require.True(t, errors.As(err, &intErr), "%v", err)
	assert.Equal(t, "Umask", intErr.Key)
}

func TestReadDuplicateKeyKeepsLast(t *testing.T) {
	job, err := ReadBytes(wrapPlist("<key>UserName</key><string>a</string><key>UserName</key><string>b</string>"))
	require.NoError(t, err)
	assert.Equal(t, "b", *job.UserName)
}

func TestReadMissingLabel(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0"><dict><key>Program</key><string>/bin/true</string></dict></plist>`)
	_, err := ReadBytes(data)
	assert.ErrorIs(t, err, ErrMissingLabel)
}

func TestReadMalformed(t *testing.T) {
	_, err := ReadBytes([]byte("<plist><dict><key>Label</key>"))
	var readErr *ReadError
	require.True(t, errors.As(err, &readErr))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.plist"))
	require.True(t, errors.As(err, &readErr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteRejectsInvalidPath(t *testing.T) {
	job := New("local.test", "/usr/bin/\xff")
	var buf bytes.Buffer
	err := job.Write(&buf, XML)

	var writeErr *WriteError
	require.True(t, errors.As(err, &writeErr))
	var pathErr *PathError
	require.True(t, errors.As(err, &pathErr))
	assert.Equal(t, "/usr/bin/\xff", pathErr.Path)
}

func TestWriteRejectsInvalidEnumValue(t *testing.T) {
	_, err := New("a", "/bin/true").WithProcessType(ProcessType("Turbo")).Bytes(XML)
	var enumErr *EnumError
	require.True(t, errors.As(err, &enumErr))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents", "local.test.plist")
	job := fullJob(t)
	require.NoError(t, job.WriteFile(path, Binary))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("bplist00")))

	got, format, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, Binary, format)
	assert.Equal(t, job, got)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"xml": XML, "": XML, "Binary": Binary, "bin": Binary} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("json")
	assert.Error(t, err)

	_, err = New("a", "/bin/true").Bytes(OpenStep)
	var writeErr *WriteError
	assert.True(t, errors.As(err, &writeErr))
}
