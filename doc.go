// Package usersettings provides a cached, observable view of a user's
// application settings on top of a pluggable persistence store.
//
// A Cache wraps a Store scoped to one user and exposes the user's display
// settings (base and accent theme) and language as cached values that can be
// read synchronously and watched for updates. Store implementations for
// PostgreSQL, SQLite, Redis and process memory live in the store subpackage;
// any type satisfying the Store interface can be plugged in instead.
package usersettings
