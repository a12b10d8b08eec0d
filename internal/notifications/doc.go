// Package notifications delivers optional ntfy push notifications for encode
// outcomes. Without a configured topic every call is a silent noop.
package notifications
