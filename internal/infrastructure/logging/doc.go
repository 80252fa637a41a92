// Package logging provides structured logging for Homestead.
//
// It wraps the standard log/slog package so every component logs the same
// way: JSON in production, text for local development, with service and
// version attached to every record.
//
// Logging is configured via the logging section of config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr, discard
//
// Usage:
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("house created", "house_id", id)
//	logger.Error("failed to delete room", "error", err)
package logging
