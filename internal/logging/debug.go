package logging

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// DebugEnv forces debug logging when set to any non-empty value
const DebugEnv = "PLANNER_DEBUG"

// DebugEnabled returns true if debug mode is enabled via PLANNER_DEBUG
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// Debugf logs a formatted message at debug level
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Debugln logs its arguments at debug level
func Debugln(args ...interface{}) {
	log.Debugln(args...)
}
