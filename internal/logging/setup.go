package logging

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"task-planner/internal/config"
)

// Setup configures the process-wide logrus logger for an environment.
// local logs text at debug level, dev at info, prod JSON at warn.
// The returned closer releases the log file, if one was opened.
func Setup(cfg config.LoggingConfig) (io.Closer, error) {
	return configure(log.StandardLogger(), cfg)
}

func configure(logger *log.Logger, cfg config.LoggingConfig) (io.Closer, error) {
	var closer io.Closer = nopCloser{}
	var out io.Writer = os.Stderr

	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = file
		closer = file
	}
	logger.SetOutput(out)

	switch cfg.Env {
	case config.EnvLocal:
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		logger.SetLevel(log.DebugLevel)
	case config.EnvDev:
		logger.SetFormatter(&log.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
		logger.SetLevel(log.InfoLevel)
	default:
		logger.SetFormatter(&log.JSONFormatter{})
		logger.SetLevel(log.WarnLevel)
	}

	if DebugEnabled() {
		logger.SetLevel(log.DebugLevel)
	}

	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
