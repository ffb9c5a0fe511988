// Package log provides a simple wrapper around logrus
// with a familiar API (Printf, Infof, Errorf, etc.)
package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"

	logcontext "github.com/va6996/mathdesk/context"
)

// Logger is the global logger instance
var Logger = logrus.New()

// CustomFormatter implements logrus.Formatter for the desired output format
type CustomFormatter struct {
	TimestampFormat string
}

// Format formats a log entry as [<time>] [LEVEL] [file:line] <message>
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	// Timestamp
	timestamp := entry.Time.Format(f.TimestampFormat)
	fmt.Fprintf(b, "[%s] ", timestamp)

	// Level
	level := strings.ToUpper(entry.Level.String())
	fmt.Fprintf(b, "[%s] ", level)

	// File and line
	// We walk the stack to find the caller, skipping logrus internals and our log wrapper
	pcs := make([]uintptr, 32)
	// Skip runtime.Callers and Format
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	file := ""
	line := 0

	for {
		frame, more := frames.Next()

		// Skip logrus internals
		if strings.Contains(frame.File, "github.com/sirupsen/logrus") {
			if !more {
				break
			}
			continue
		}

		// Skip this log package
		if strings.HasSuffix(frame.File, "log/log.go") {
			if !more {
				break
			}
			continue
		}

		// Skip runtime functions
		if strings.Contains(frame.File, "runtime/") {
			if !more {
				break
			}
			continue
		}

		file = frame.File
		line = frame.Line
		break
	}

	if file != "" {
		// Extract just filename
		parts := strings.Split(file, "/")
		filename := parts[len(parts)-1]
		fmt.Fprintf(b, "[%s:%d] ", filename, line)
	}

	// Message
	b.WriteString(entry.Message)

	// Add fields if any (request_id and thread_id render specially)
	if len(entry.Data) > 0 {
		if requestID, ok := entry.Data["request_id"].(string); ok && requestID != "" {
			fmt.Fprintf(b, " [req:%s]", requestID)
		}
		if threadID, ok := entry.Data["thread_id"].(string); ok && threadID != "" {
			fmt.Fprintf(b, " [thread:%s]", threadID)
		}

		for key, value := range entry.Data {
			if key != "request_id" && key != "thread_id" {
				fmt.Fprintf(b, " %s=%v", key, value)
			}
		}
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// requestIDFromContext safely extracts request ID from context
func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	return logcontext.RequestIDFromContext(ctx)
}

// threadIDFromContext safely extracts the conversation thread ID
func threadIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	return logcontext.ThreadIDFromContext(ctx)
}

// Helper to add tracking fields to the log entry
func withTrackingFields(ctx context.Context) *logrus.Entry {
	return Logger.WithFields(logrus.Fields{
		"request_id": requestIDFromContext(ctx),
		"thread_id":  threadIDFromContext(ctx),
	})
}

// Infof logs formatted message at info level
func Infof(ctx context.Context, format string, args ...interface{}) {
	withTrackingFields(ctx).Infof(format, args...)
}

// Info logs a message at info level
func Info(ctx context.Context, args ...interface{}) {
	withTrackingFields(ctx).Info(args...)
}

// Debugf logs formatted message at debug level
func Debugf(ctx context.Context, format string, args ...interface{}) {
	withTrackingFields(ctx).Debugf(format, args...)
}

// Debug logs a message at debug level
func Debug(ctx context.Context, args ...interface{}) {
	withTrackingFields(ctx).Debug(args...)
}

// Warnf logs formatted message at warning level
func Warnf(ctx context.Context, format string, args ...interface{}) {
	withTrackingFields(ctx).Warnf(format, args...)
}

// Warn logs a message at warning level
func Warn(ctx context.Context, args ...interface{}) {
	withTrackingFields(ctx).Warn(args...)
}

// Errorf logs formatted message at error level
func Errorf(ctx context.Context, format string, args ...interface{}) {
	withTrackingFields(ctx).Errorf(format, args...)
}

// Error logs a message at error level
func Error(ctx context.Context, args ...interface{}) {
	withTrackingFields(ctx).Error(args...)
}

// Fatalf logs formatted message at fatal level and exits
func Fatalf(ctx context.Context, format string, args ...interface{}) {
	withTrackingFields(ctx).Fatalf(format, args...)
}

// Fatal logs a message at fatal level and exits
func Fatal(ctx context.Context, args ...interface{}) {
	withTrackingFields(ctx).Fatal(args...)
}

// SetOutput sets the global log output
func SetOutput(out io.Writer) {
	Logger.SetOutput(out)
}

// Init initializes the logger. The level comes from configuration;
// unrecognized values fall back to info.
func Init(level string) {
	Logger.SetFormatter(&CustomFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})
	// Caller reporting handled manually in Format
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Logger.SetLevel(parsed)
}

// WithFields creates a logger with predefined fields
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Logger.WithFields(fields)
}
