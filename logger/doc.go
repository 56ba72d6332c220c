// Package logger provides structured logging for restkit clients
// using zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, and component-scoped loggers with structured fields.
// Libraries default to NewNop, so logging is opt-in for callers.
//
// # Configuration
//
//	logger:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("restclient")
//	log.Info("request completed", logger.Fields("status", 200))
package logger
