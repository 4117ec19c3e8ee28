// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tfctl/yd/internal/config"
)

const tracePrefix = "TRACE: "

var traceEnabled bool

// InitLogger sets up Apex with a custom handler and a log level from the
// YD_LOG env variable. Output goes to stderr, or to a rotating file when
// YD_LOG_FILE is set.
func InitLogger() {
	envLevel := strings.ToLower(os.Getenv("YD_LOG"))
	if envLevel == "" {
		envLevel = "error"
	}
	traceEnabled = envLevel == "trace"

	log.SetHandler(&CustomHandler{Writer: writer(os.Getenv("YD_LOG_FILE"))})
	log.SetLevel(parseLevel(envLevel))
}

func parseLevel(envLevel string) log.Level {
	switch envLevel {
	case "trace":
		return log.DebugLevel // Show debug and above for trace
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.ErrorLevel
	}
}

// writer picks the log destination. Stdout is reserved for diff output.
func writer(path string) io.Writer {
	if strings.TrimSpace(path) == "" {
		return os.Stderr
	}

	maxSize, _ := config.GetInt("log.max_size", 10)
	maxBackups, _ := config.GetInt("log.max_backups", 3)
	maxAge, _ := config.GetInt("log.max_age", 28)

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
	}
}

// letters abbreviates apex levels in the log line.
var letters = map[log.Level]string{
	log.DebugLevel: "D",
	log.InfoLevel:  "I",
	log.WarnLevel:  "W",
	log.ErrorLevel: "E",
	log.FatalLevel: "F",
}

// CustomHandler writes one line per entry: time, level letter, message, then
// any fields as key=value. The error field is folded into the message.
type CustomHandler struct {
	Writer io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	w := h.Writer
	if w == nil {
		w = os.Stderr
	}

	level, ok := letters[e.Level]
	if !ok {
		level = "?"
	}
	message, traced := strings.CutPrefix(e.Message, tracePrefix)
	if traced {
		level = "T"
	}

	var sb strings.Builder
	sb.WriteString(time.Now().Format("2006-01-02 15:04:05"))
	sb.WriteString(" " + level + " " + message)
	if err, ok := e.Fields["error"]; ok {
		fmt.Fprintf(&sb, ": %v", err)
	}
	for _, name := range e.Fields.Names() {
		if name != "error" {
			fmt.Fprintf(&sb, " %s=%v", name, e.Fields.Get(name))
		}
	}
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	return err
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug(tracePrefix + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Debug logs at Debug level.
func Debug(msg string) {
	log.Debug(msg)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warn(fmt.Sprintf(format, args...))
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
