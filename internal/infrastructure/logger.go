package infrastructure

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"trafficpulse/internal/config"
)

// contextKey is a type for context keys
type contextKey string

// RunIDContextKey is the key for storing the run ID in context. Every CLI
// invocation gets one run ID; it is attached to every log record so output
// from a single batch run can be grouped.
const RunIDContextKey contextKey = "run_id"

// NewLogger creates a slog logger according to the logging configuration.
// Format "json" emits structured records; anything else falls back to text.
func NewLogger(cfg config.Logging) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Level),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(&runIDHandler{Handler: handler})
}

// SetupRun initializes the default logger and returns a context carrying a
// fresh run ID. Intended for main().
func SetupRun(cfg config.Logging) (context.Context, *slog.Logger) {
	logger := NewLogger(cfg)
	slog.SetDefault(logger)

	runID := uuid.New().String()
	ctx := WithRunID(context.Background(), runID)
	logger.InfoContext(ctx, "run started", slog.String("run_id", runID))
	return ctx, logger
}

// runIDHandler wraps a slog.Handler to automatically inject run_id from context
type runIDHandler struct {
	slog.Handler
}

// Handle adds run_id to the record if present in context
func (h *runIDHandler) Handle(ctx context.Context, r slog.Record) error {
	if runID := GetRunID(ctx); runID != "" {
		r.AddAttrs(slog.String("run_id", runID))
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs returns a new Handler with additional attributes
func (h *runIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &runIDHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup returns a new Handler with the given group name
func (h *runIDHandler) WithGroup(name string) slog.Handler {
	return &runIDHandler{Handler: h.Handler.WithGroup(name)}
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// WithRunID adds a run ID to the context
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDContextKey, runID)
}

// GetRunID retrieves the run ID from context
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDContextKey).(string); ok {
		return runID
	}
	return ""
}
