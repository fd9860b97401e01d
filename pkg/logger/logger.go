package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
}

func Get() *logrus.Logger {
	return log
}

// Error logs a failure tagged with the module and function it happened in.
func Error(module, funcName string, err error, fields logrus.Fields) {
	entry := log.WithFields(logrus.Fields{
		"module":   module,
		"funcName": funcName,
	})
	if fields != nil {
		entry = entry.WithFields(fields)
	}
	entry.Error(err.Error())
}

func Info(module string, msg string, fields logrus.Fields) {
	entry := log.WithField("module", module)
	if fields != nil {
		entry = entry.WithFields(fields)
	}
	entry.Info(msg)
}
