package log

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

func WithField(key string, value interface{}) *logrus.Entry {
	return logger.WithField(key, value)
}

func Logger() *logrus.Logger {
	return logger
}

// Configure applies the log level and the output format, "json" or "text"
func Configure(level, format string) error {
	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return err
		}
		logger.SetLevel(lvl)
	}
	switch strings.ToLower(format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %v", format)
	}
	return nil
}
