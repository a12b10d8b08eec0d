// Package config loads, normalizes, and validates conform's configuration.
//
// Values come from three layers, lowest precedence first: built-in defaults,
// an optional TOML file (--config flag, ~/.config/conform/config.toml, or
// ./conform.toml), and CONFORM_* environment variables. The result is an
// immutable snapshot constructed once at startup and passed into every
// component; nothing mutates configuration after Load returns.
package config
