// Package log provides secure logging built on top of the standard slog
// package.
//
// This package extends slog to provide:
//   - Automatic sanitization of credentials in log output
//   - Configurable log levels with verbose mode support
//   - Text or JSON output with the same sanitization
//
// # Security Features
//
// SecureHandler wraps any slog.Handler and, before a record is written:
//   - masks values under credential-like keys (password, authorization, token)
//   - replaces URL userinfo and "password=" pairs in connection strings
//   - truncates long string values such as corpus sentences
//
// The CoreNLP basic-auth password and a PostgreSQL DSN are the secrets a
// corpusscope configuration can carry. The DSN is logged by the
// "database opened" debug record, so credentials are masked even in
// verbose mode.
//
// Sentences can be several hundred characters long. The "corenlp parse"
// record truncates them so a verbose log stays readable.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Info("parsing sentence", "backend", "corenlp", "url", cfg.CoreNLPURL)
//	slog.SetDefault(logger)
package log
