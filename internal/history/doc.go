// Package history keeps a SQLite journal of encode runs. Recording is
// best-effort: a journal failure never fails an encode.
package history
