// Package logging provides slog construction with console and JSON handlers
// plus small attribute helpers shared across the repository.
package logging
