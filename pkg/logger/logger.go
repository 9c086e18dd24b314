package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Create handler based on environment
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.Int("size", c.Writer.Size()),
	)
}

// Seat engine logging methods

// LogHoldGranted logs a granted seat hold
func (l *Logger) LogHoldGranted(ctx context.Context, showtimeID, userID string, seats int, holdUntil time.Time) {
	l.Logger.InfoContext(ctx,
		"Hold Granted",
		slog.String("showtime_id", showtimeID),
		slog.String("user_id", userID),
		slog.Int("seats", seats),
		slog.Time("hold_until", holdUntil),
	)
}

// LogSeatsConfirmed logs a confirmed booking
func (l *Logger) LogSeatsConfirmed(ctx context.Context, orderID, userID string, seats int) {
	l.Logger.InfoContext(ctx,
		"Seats Confirmed",
		slog.String("order_id", orderID),
		slog.String("user_id", userID),
		slog.Int("seats", seats),
	)
}

// LogSeatsReleased logs released holds or bookings
func (l *Logger) LogSeatsReleased(ctx context.Context, reason string, released int) {
	l.Logger.InfoContext(ctx,
		"Seats Released",
		slog.String("reason", reason),
		slog.Int("released", released),
	)
}

// LogSweepPass logs one expiration sweep pass
func (l *Logger) LogSweepPass(ctx context.Context, released int, duration time.Duration) {
	l.Logger.InfoContext(ctx,
		"Expiration Sweep",
		slog.Int("released", released),
		slog.Duration("duration", duration),
	)
}

// LogPublishFailure logs a failed (best-effort) notification publish
func (l *Logger) LogPublishFailure(ctx context.Context, seatScheduleID string, err error) {
	l.Logger.WarnContext(ctx,
		"Notification Publish Failed",
		slog.String("seat_schedule_id", seatScheduleID),
		slog.String("error", err.Error()),
	)
}

// Helper methods for common patterns

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// DebugWithContext logs a debug message with context
func (l *Logger) DebugWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.DebugContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
