package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the process logger: JSON in prod, text elsewhere.
func New(goEnv string, level string) *logrus.Logger {
	return NewWithWriter(os.Stdout, goEnv, level)
}

func NewWithWriter(w io.Writer, goEnv string, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)

	if goEnv == "prod" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}
