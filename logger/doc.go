// Package logger provides structured logging for the credential engine
// using zerolog.
//
// It supports JSON and console formats, log level configuration, and
// component-scoped loggers with structured fields. The default output is
// stderr so that stdout stays free for the line-delimited RPC stream.
//
// # Usage
//
//	log := logger.WithComponent("oauth")
//	log.Info("token refreshed", map[string]any{"credential_id": id})
package logger
