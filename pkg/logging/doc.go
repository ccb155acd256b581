// Package logging provides structured logging utilities for the crop advisor
// components.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults:
// JSON records on stderr, module and version attributes on every record, and
// source locations when running at debug level.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Potentially problematic situations
//   - ERROR: Failures requiring attention
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("cropd", version)
//	    slog.Info("model loaded", "classes", 22)
//	}
//
// Explicit level (e.g. from a CLI flag):
//
//	logging.SetDefaultStructuredLoggerWithLevel("cropctl", version, "debug")
//
// # Environment Configuration
//
//	LOG_LEVEL=debug cropd
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "prediction served",
//	    "module": "cropd",
//	    "version": "v1.0.0",
//	    "variant": "single"
//	}
package logging
