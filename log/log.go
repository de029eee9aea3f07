// Package log wraps github.com/op/go-logging with the setup the
// teacher's krd daemon performs at startup: a colored stderr backend,
// optionally tee'd to syslog. client.Client takes the *logging.Logger
// it logs through at construction rather than reaching for a package
// global. SetupLogging installs go-logging's process-wide backend, so
// each call replaces the backend set up by the previous one.
package log

import (
	"os"

	"github.com/op/go-logging"
)

var stderrFormat = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{shortfunc} ▶ %{level:.4s}%{color:reset} %{message}`,
)

// SetupLogging returns a logger for module, at the given level,
// optionally tee'd to the local syslog daemon. syslog failures are
// logged to the stderr backend and otherwise ignored — a client
// should never fail to construct merely because syslog is
// unreachable.
func SetupLogging(module string, level logging.Level, useSyslog bool) *logging.Logger {
	log := logging.MustGetLogger(module)

	stderrBackend := logging.NewLogBackend(os.Stderr, "", 0)
	stderrFormatted := logging.NewBackendFormatter(stderrBackend, stderrFormat)
	stderrLeveled := logging.AddModuleLevel(stderrFormatted)
	stderrLeveled.SetLevel(level, "")

	backends := []logging.Backend{stderrLeveled}

	if useSyslog {
		syslogBackend, err := logging.NewSyslogBackend(module)
		if err != nil {
			log.SetBackend(stderrLeveled)
			log.Error("could not open syslog backend:", err.Error())
		} else {
			syslogLeveled := logging.AddModuleLevel(syslogBackend)
			syslogLeveled.SetLevel(level, "")
			backends = append(backends, syslogLeveled)
		}
	}

	logging.SetBackend(backends...)
	return log
}
