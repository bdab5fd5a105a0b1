package config

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.StandardLogger()

// InitLogger builds the process logger and stores it in Log. An unknown
// level falls back to info; format "text" selects the text formatter,
// anything else JSON.
func InitLogger(level, format string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if strings.EqualFold(format, "text") {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	Log = logger
	return logger
}
