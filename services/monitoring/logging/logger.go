package logging

import (
	"log/syslog"
	"os"

	"github.com/sirupsen/logrus"
	logrusSyslog "github.com/sirupsen/logrus/hooks/syslog"
)

type Logger struct {
	*logrus.Logger
}

// Options configures the run logger. Zero values produce an info-level JSON
// logger on stderr, keeping stdout free for the operator-facing report.
type Options struct {
	Level         string
	RunID         string
	SyslogAddress string
	SyslogAppName string
}

func NewLogger() *Logger {
	return NewLoggerWithOptions(Options{})
}

func NewLoggerWithOptions(opts Options) *Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if opts.RunID != "" {
		log.Hooks.Add(&runIDHook{runID: opts.RunID})
	}

	if opts.SyslogAddress != "" {
		hook, err := logrusSyslog.NewSyslogHook("udp", opts.SyslogAddress, syslog.LOG_INFO, opts.SyslogAppName)
		if err != nil {
			log.Error("Unable to connect to remote syslog")
		} else {
			log.Hooks.Add(hook)
		}
	}

	return &Logger{
		log,
	}
}

// runIDHook stamps the per-invocation correlation id onto every entry, so
// lines from one run can be grepped out of an aggregated stream.
type runIDHook struct {
	runID string
}

func (h *runIDHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *runIDHook) Fire(entry *logrus.Entry) error {
	entry.Data["run_id"] = h.runID
	return nil
}
