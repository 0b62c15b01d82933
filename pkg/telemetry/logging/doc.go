// Package logging provides structured logging for mathgen.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Context-aware logging with request IDs, languages and file names
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logger.Info("expression generated",
//	    "language", "python",
//	    "duration_ms", 3,
//	)
//
//	// Context-aware logging
//	ctx = logging.WithRequestID(ctx, "req-123")
//	logger.InfoContext(ctx, "parsing") // includes request_id
//
// # Console Format
//
// The console format is the text format with the level colored for
// terminals. Colors are disabled automatically when the output is not a
// terminal or NO_COLOR is set.
package logging
