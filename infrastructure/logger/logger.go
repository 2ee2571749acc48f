package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

var logger = log.New()

func init() {
	logger.Out = os.Stdout
	logger.Formatter = &log.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	}

	level, err := log.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	// LOG_TO_FILE=true switches to a dated file under ./logs, which suits
	// bare-metal deployments; container deployments stay on stdout.
	if os.Getenv("LOG_TO_FILE") == "true" {
		cwd, err := os.Getwd()
		if err != nil {
			logger.WithField("error", err).Warn("Failed to get working directory, keeping stdout")
			return
		}
		logsDir := filepath.Join(cwd, "logs")
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			logger.WithField("error", err).Warn("Failed to create logs directory, keeping stdout")
			return
		}
		filePath := filepath.Join(logsDir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			logger.WithField("error", err).Warn("Failed to open log file, keeping stdout")
			return
		}
		logger.Out = f
	}
}

// GetLogger returns an entry annotated with the calling function and location.
func GetLogger() *log.Entry {
	function, file, line, _ := runtime.Caller(1)
	functionObject := runtime.FuncForPC(function)

	return logger.WithFields(log.Fields{
		"function": functionObject.Name(),
		"file":     file,
		"line":     line,
	})
}
