package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init configures the global logrus logger from LOG_LEVEL and GO_ENV.
// Production output is JSON; everything else gets the readable text format.
func Init() {
	logrus.SetOutput(os.Stdout)

	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		logrus.Warnf("Invalid log level '%s', defaulting to 'info'", levelStr)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if strings.ToLower(os.Getenv("GO_ENV")) == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
}
