// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

// Standard field names used across the service.
const (
	FieldUserID    = "user_id"
	FieldAccountID = "account_id"
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency"
	FieldClientIP  = "client_ip"
	FieldComponent = "component"
)

// Log is the shared logger. It is usable before Init with logrus defaults.
var Log = logrus.New()

// Init sets level ("debug", "info", "warn", "error") and format ("json" or "text").
func Init(level, format string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.Warnf("invalid log level '%s', using 'info'", level)
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if format == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// SetOutput redirects the shared logger, mainly for tests.
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}

// Component returns an entry tagged with the component name.
func Component(name string) *logrus.Entry {
	return Log.WithField(FieldComponent, name)
}

// GormLogger writes gorm's SQL log through logrus at the given level
// ("silent", "error", "warn", "info").
func GormLogger(level string) gormlogger.Interface {
	return gormlogger.New(Log, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormLevel(level),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func gormLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
