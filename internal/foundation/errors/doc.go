// Package errors provides the classified error primitives used across hugorg.
//
// Every failure that crosses a package boundary is expected to be a
// ClassifiedError, so the CLI can pick an exit code and a log level
// without string matching.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, docs, render, filesystem, etc.)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - RetryStrategy: Whether repeating the operation can help
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLIErrorAdapter: Exit codes and user-facing formatting
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryRender, "render failed").
//		WithContext("path", srcPath).
//		Build()
package errors
