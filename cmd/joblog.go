package cmd

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/linanwx/golaunchd/launchd"
	"github.com/linanwx/golaunchd/logger"
)

// logJob records a decoded job at debug level. Environment values and socket
// keys are logged under their own names so the logger can redact credentials.
func logJob(path string, job launchd.Job) {
	logger.Debug("read job", "path", path, "label", job.Label)

	for _, name := range slices.Sorted(maps.Keys(job.EnvironmentVariables)) {
		logger.Debug("job environment", "label", job.Label,
			slog.Group("env", name, job.EnvironmentVariables[name]))
	}

	if job.Sockets == nil {
		return
	}
	groups := job.Sockets.Array
	if !job.Sockets.IsArray() {
		groups = []launchd.Socket{job.Sockets.Dictionary}
	}
	for i, group := range groups {
		for _, name := range slices.Sorted(maps.Keys(group)) {
			opts := group[name]
			args := []any{"label", job.Label, "group", i, "socket", name}
			if opts.SockPathName != nil {
				args = append(args, "path", *opts.SockPathName)
			}
			if opts.SockServiceName != nil {
				args = append(args, "service", *opts.SockServiceName)
			}
			if opts.SecureSocketWithKey != nil {
				args = append(args, "secureSocketWithKey", *opts.SecureSocketWithKey)
			}
			logger.Debug("job socket", args...)
		}
	}
}
