// Package logger builds slog loggers for the folio server and CLI.
//
// Loggers are created with New and functional options, or with NewFromConfig
// from environment-driven Config. Development environments get text output
// at debug level; production gets JSON at info level. Context extractors
// (see WithContextExtractors and requestid.LoggerExtractor) add request-scoped
// attributes at log time.
//
// The attribute helpers (Error, Route, SortKey, Check, Viewport and friends)
// keep key names consistent across packages. Error and RequestID return an
// empty Attr for zero input, which slog drops, so callers can write
//
//	log.Info("built", logger.Error(err))
//
// without a nil check.
package logger
