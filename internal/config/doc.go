// Package config loads, normalizes, and validates rascan's TOML configuration.
package config
