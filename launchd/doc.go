// Package launchd models launchd.plist job descriptions and reads and writes
// them as XML or binary property lists.
//
// A job is built from value types; every setter returns a new value:
//
//	ci, err := launchd.NewCalendarInterval().WithHour(12)
//	if err != nil {
//		return err
//	}
//	ci, err = ci.WithMinute(10)
//	if err != nil {
//		return err
//	}
//	job := launchd.New("local.example.backup", "/usr/local/bin/backup").
//		WithUserName("henk").
//		WithProgramArguments("backup", "--quiet").
//		WithStartCalendarIntervals(ci).
//		Enable(launchd.Disabled)
//	return job.Write(os.Stdout, launchd.XML)
//
// Decoding is strict: a top-level key the schema does not define is an
// *UnknownKeyError, and a string outside a closed enumeration is an
// *EnumError. Values that may take several shapes (KeepAlive, Sockets,
// Bonjour, MachServices entries, LimitLoadToSessionType) are decoded by
// trying each shape in a fixed order and keeping the first that fits.
// Integers are checked against the width of their field, so Umask 70000 or a
// negative StartInterval is an *IntegerRangeError rather than a wrapped value.
//
// The calendar key is StartCalendarInterval, as launchd spells it. Documents
// that use the plural StartCalendarIntervals fail with an *UnknownKeyError;
// rename the key to read them.
package launchd
